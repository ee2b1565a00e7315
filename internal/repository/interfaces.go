package repository

import (
	"context"

	"pairchat/internal/domain/conversation"
	"pairchat/internal/domain/message"
)

type ConversationRepository interface {
	Create(ctx context.Context, c *conversation.Conversation) error
	GetByID(ctx context.Context, id int64) (conversation.Conversation, error)

	// ListForUser returns the conversations whose participant set contains
	// userID, participants preloaded, most recently updated first.
	ListForUser(ctx context.Context, userID int64) ([]conversation.Conversation, error)

	// GetPairConversation returns the conversation whose participant set is
	// exactly the unordered pair {userID, friendID}.
	GetPairConversation(ctx context.Context, userID, friendID int64) (conversation.Conversation, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error

	// ListByConversation returns messages of a conversation ordered by
	// ascending creation time, skipping skip rows and taking at most take.
	ListByConversation(ctx context.Context, conversationID int64, skip, take int) ([]message.Message, error)
}
