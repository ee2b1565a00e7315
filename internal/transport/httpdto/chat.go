package httpdto

import (
	"time"

	"pairchat/internal/domain/conversation"
	"pairchat/internal/domain/message"
	"pairchat/internal/services"
)

type CreateConversationRequest struct {
	FriendID int64 `json:"friend_id" binding:"required"`
}

type NewMessageRequest struct {
	ConversationID int64  `json:"conversation_id" binding:"required"`
	Message        string `json:"message" binding:"required"`
}

type ConversationResponse struct {
	ID             int64   `json:"id"`
	ParticipantIDs []int64 `json:"participant_ids"`
}

type MessageResponse struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	AuthorID       int64     `json:"author_id"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}

// ChatPageResponse keeps the history envelope the clients already consume.
type ChatPageResponse struct {
	Status         bool              `json:"status"`
	ConversationID int64             `json:"conversationId"`
	Data           []MessageResponse `json:"data"`
}

func FromConversation(c conversation.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:             c.ID,
		ParticipantIDs: c.ParticipantIDs(),
	}
}

func FromConversationSummary(s services.ConversationSummary) ConversationResponse {
	return ConversationResponse{
		ID:             s.ID,
		ParticipantIDs: s.ParticipantIDs,
	}
}

func FromConversationSummarySlice(items []services.ConversationSummary) []ConversationResponse {
	out := make([]ConversationResponse, 0, len(items))
	for _, s := range items {
		out = append(out, FromConversationSummary(s))
	}
	return out
}

func FromMessage(m message.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		AuthorID:       m.AuthorID,
		Message:        m.Body,
		CreatedAt:      m.CreatedAt,
	}
}

func FromChatPage(p services.ChatPage) ChatPageResponse {
	data := make([]MessageResponse, 0, len(p.Data))
	for _, m := range p.Data {
		data = append(data, FromMessage(m))
	}
	return ChatPageResponse{
		Status:         p.Status,
		ConversationID: p.ConversationID,
		Data:           data,
	}
}
