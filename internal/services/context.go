package services

import (
	"context"
	"errors"

	chat_errors "pairchat/pkg/errors"
)

type contextKey string

const userIDKey contextKey = "auth_user_id"

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func isNotFound(err error) bool {
	return errors.Is(err, chat_errors.ErrNotFound)
}
