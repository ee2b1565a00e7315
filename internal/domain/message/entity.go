package message

import "time"

// Message represents the messages table. Messages are immutable after save and
// ordered by creation time within a conversation.
type Message struct {
	ID             int64 `gorm:"primaryKey"`
	ConversationID int64 `gorm:"index"`
	AuthorID       int64
	Body           string
	CreatedAt      time.Time
}

func (Message) TableName() string {
	return "messages"
}
