package conversation

import "time"

// Conversation represents the conversations table. The participant set is
// fixed at creation; nothing in this service adds or removes members later.
type Conversation struct {
	ID        int64 `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships
	Participants []Participant
}

// Participant represents the participants table. User rows live in the auth
// service, so only the id is stored here.
type Participant struct {
	ConversationID int64 `gorm:"primaryKey;autoIncrement:false"`
	UserID         int64 `gorm:"primaryKey;autoIncrement:false"`
	JoinedAt       time.Time
}

// ParticipantIDs returns the member user ids, never nil.
func (c Conversation) ParticipantIDs() []int64 {
	ids := make([]int64, 0, len(c.Participants))
	for _, p := range c.Participants {
		ids = append(ids, p.UserID)
	}
	return ids
}

func (Conversation) TableName() string {
	return "conversations"
}

func (Participant) TableName() string {
	return "participants"
}
