package identity

import (
	"context"
	"encoding/json"
	"time"

	"pairchat/internal/domain/user"
	chat_errors "pairchat/pkg/errors"
	"pairchat/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const getUserCmd = "get-user"

// Resolver looks up a user record in the remote auth service.
type Resolver interface {
	// ResolveUser returns the user for id, chat_errors.ErrUserNotFound when the
	// auth service answers but knows no such user, and
	// chat_errors.ErrIdentityUnavailable when the round trip itself fails.
	ResolveUser(ctx context.Context, id int64) (user.User, error)
}

type Config struct {
	RequestChannel string
	ReplyPrefix    string
	Timeout        time.Duration
}

// RedisResolver performs request/reply over Redis pub/sub: each call publishes
// a command frame carrying a one-off reply channel and waits for exactly one
// response on it. No retry, no caching.
type RedisResolver struct {
	client *redis.Client
	cfg    Config
	log    *logger.Logger
}

func NewRedisResolver(client *redis.Client, cfg Config, log *logger.Logger) *RedisResolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	return &RedisResolver{client: client, cfg: cfg, log: log}
}

type request struct {
	Cmd     string         `json:"cmd"`
	Payload requestPayload `json:"payload"`
	ReplyTo string         `json:"reply_to"`
}

type requestPayload struct {
	ID int64 `json:"id"`
}

type response struct {
	User  *user.User `json:"user,omitempty"`
	Error string     `json:"error,omitempty"`
}

func (r *RedisResolver) ResolveUser(ctx context.Context, id int64) (user.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	replyTo := r.cfg.ReplyPrefix + uuid.NewString()

	// Subscribe before publishing so the reply cannot be lost.
	sub := r.client.Subscribe(ctx, replyTo)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		r.warnf("auth subscribe failed: %v", err)
		return user.User{}, chat_errors.ErrIdentityUnavailable
	}

	payload, err := json.Marshal(request{
		Cmd:     getUserCmd,
		Payload: requestPayload{ID: id},
		ReplyTo: replyTo,
	})
	if err != nil {
		return user.User{}, chat_errors.ErrIdentityUnavailable
	}

	if err := r.client.Publish(ctx, r.cfg.RequestChannel, payload).Err(); err != nil {
		r.warnf("auth publish failed: %v", err)
		return user.User{}, chat_errors.ErrIdentityUnavailable
	}

	msg, err := sub.ReceiveMessage(ctx)
	if err != nil {
		r.warnf("auth reply timed out for user %d: %v", id, err)
		return user.User{}, chat_errors.ErrIdentityUnavailable
	}

	return decodeResponse([]byte(msg.Payload))
}

func decodeResponse(data []byte) (user.User, error) {
	var resp response
	if err := json.Unmarshal(data, &resp); err != nil {
		return user.User{}, chat_errors.ErrIdentityUnavailable
	}
	if resp.Error != "" || resp.User == nil {
		return user.User{}, chat_errors.ErrUserNotFound
	}
	return *resp.User, nil
}

func (r *RedisResolver) warnf(template string, args ...interface{}) {
	log := r.log
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	if log != nil {
		log.Warnf(template, args...)
	}
}
