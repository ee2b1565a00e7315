package chat_errors

import "errors"

// Common errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// Identity resolution outcomes. A missing user and an unreachable auth
	// service are distinct failure modes and must stay distinguishable.
	ErrUserNotFound        = errors.New("user not found")
	ErrIdentityUnavailable = errors.New("identity service unavailable")
)
