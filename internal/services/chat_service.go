package services

import (
	"context"
	"time"

	"pairchat/internal/domain/conversation"
	"pairchat/internal/domain/message"
	"pairchat/internal/identity"
	"pairchat/internal/repository"
)

// ChatPageSize is the fixed page size for conversation history.
const ChatPageSize = 20

// ConversationSummary is the projection returned when listing conversations.
type ConversationSummary struct {
	ID             int64
	ParticipantIDs []int64
}

type NewMessageInput struct {
	ConversationID int64
	Message        string
}

// ChatPage wraps one page of conversation history.
type ChatPage struct {
	Status         bool
	ConversationID int64
	Data           []message.Message
}

// ChatService is a stateless coordinator over the two repositories and the
// remote identity source. One instance serves all requests; it holds only
// read-only dependency references.
type ChatService struct {
	convRepo repository.ConversationRepository
	msgRepo  repository.MessageRepository
	resolver identity.Resolver
}

func NewChatService(convRepo repository.ConversationRepository, msgRepo repository.MessageRepository, resolver identity.Resolver) *ChatService {
	return &ChatService{convRepo: convRepo, msgRepo: msgRepo, resolver: resolver}
}

func (s *ChatService) ListConversations(ctx context.Context, userID int64) ([]ConversationSummary, error) {
	conversations, err := s.convRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for _, c := range conversations {
		summaries = append(summaries, ConversationSummary{
			ID:             c.ID,
			ParticipantIDs: c.ParticipantIDs(),
		})
	}
	return summaries, nil
}

// CreateConversation finds or creates the 1:1 conversation for the pair.
// The pair lookup is symmetric, so (a, b) and (b, a) resolve to the same
// conversation and a second call never creates a duplicate.
func (s *ChatService) CreateConversation(ctx context.Context, userID, friendID int64) (conversation.Conversation, error) {
	user, err := s.resolver.ResolveUser(ctx, userID)
	if err != nil {
		return conversation.Conversation{}, err
	}
	friend, err := s.resolver.ResolveUser(ctx, friendID)
	if err != nil {
		return conversation.Conversation{}, err
	}

	existing, err := s.convRepo.GetPairConversation(ctx, user.ID, friend.ID)
	if err == nil {
		return existing, nil
	}
	if !isNotFound(err) {
		return conversation.Conversation{}, err
	}

	now := time.Now()
	conv := conversation.Conversation{
		CreatedAt: now,
		UpdatedAt: now,
		Participants: []conversation.Participant{
			{UserID: user.ID, JoinedAt: now},
			{UserID: friend.ID, JoinedAt: now},
		},
	}
	if err := s.convRepo.Create(ctx, &conv); err != nil {
		return conversation.Conversation{}, err
	}
	return conv, nil
}

// CreateMessage posts a message into an existing conversation. Membership is
// not checked here; access control is the gateway's responsibility.
func (s *ChatService) CreateMessage(ctx context.Context, userID int64, input NewMessageInput) (message.Message, error) {
	author, err := s.resolver.ResolveUser(ctx, userID)
	if err != nil {
		return message.Message{}, err
	}

	if _, err := s.convRepo.GetByID(ctx, input.ConversationID); err != nil {
		return message.Message{}, err
	}

	msg := message.Message{
		ConversationID: input.ConversationID,
		AuthorID:       author.ID,
		Body:           input.Message,
		CreatedAt:      time.Now(),
	}
	if err := s.msgRepo.Create(ctx, &msg); err != nil {
		return message.Message{}, err
	}
	return msg, nil
}

// GetChat returns one page of a conversation's history, oldest first. A page
// is returned even when empty; the conversation itself is not checked.
func (s *ChatService) GetChat(ctx context.Context, userID, conversationID int64, skip int) (ChatPage, error) {
	if _, err := s.resolver.ResolveUser(ctx, userID); err != nil {
		return ChatPage{}, err
	}

	if skip < 0 {
		skip = 0
	}
	messages, err := s.msgRepo.ListByConversation(ctx, conversationID, skip, ChatPageSize)
	if err != nil {
		return ChatPage{}, err
	}
	if messages == nil {
		messages = []message.Message{}
	}

	return ChatPage{
		Status:         true,
		ConversationID: conversationID,
		Data:           messages,
	}, nil
}
