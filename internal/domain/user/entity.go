package user

// User is owned by the remote auth service. The chat service only ever holds a
// transient copy fetched per request and never persists it.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}
