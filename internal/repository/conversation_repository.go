package repository

import (
	"context"
	"errors"

	"pairchat/internal/domain/conversation"
	chat_errors "pairchat/pkg/errors"

	"gorm.io/gorm"
)

type PostgresConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &PostgresConversationRepository{db: db}
}

func (r *PostgresConversationRepository) Create(ctx context.Context, c *conversation.Conversation) error {
	// Participants are saved through the association in the same insert.
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *PostgresConversationRepository) GetByID(ctx context.Context, id int64) (conversation.Conversation, error) {
	var c conversation.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return conversation.Conversation{}, chat_errors.ErrNotFound
		}
		return conversation.Conversation{}, err
	}
	return c, nil
}

func (r *PostgresConversationRepository) ListForUser(ctx context.Context, userID int64) ([]conversation.Conversation, error) {
	var conversations []conversation.Conversation

	subQuery := r.db.Model(&conversation.Participant{}).
		Select("conversation_id").
		Where("user_id = ?", userID)

	err := r.db.WithContext(ctx).
		Preload("Participants").
		Where("id IN (?)", subQuery).
		Order("updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *PostgresConversationRepository) GetPairConversation(ctx context.Context, userID, friendID int64) (conversation.Conversation, error) {
	var c conversation.Conversation

	// Conversations where both users are participants
	bothPresent := r.db.Model(&conversation.Participant{}).
		Select("conversation_id").
		Where("user_id IN (?, ?)", userID, friendID).
		Group("conversation_id").
		Having("COUNT(DISTINCT user_id) = 2")

	// ... and nobody else is
	exactlyTwo := r.db.Model(&conversation.Participant{}).
		Select("conversation_id").
		Group("conversation_id").
		Having("COUNT(*) = 2")

	err := r.db.WithContext(ctx).
		Preload("Participants").
		Where("id IN (?) AND id IN (?)", bothPresent, exactlyTwo).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return conversation.Conversation{}, chat_errors.ErrNotFound
		}
		return conversation.Conversation{}, err
	}
	return c, nil
}
