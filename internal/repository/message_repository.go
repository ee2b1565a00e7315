package repository

import (
	"context"

	"pairchat/internal/domain/message"

	"gorm.io/gorm"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PostgresMessageRepository) ListByConversation(ctx context.Context, conversationID int64, skip, take int) ([]message.Message, error) {
	var messages []message.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Offset(skip).
		Limit(take).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
