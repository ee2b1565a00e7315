package identity

import (
	"encoding/json"
	"testing"

	chat_errors "pairchat/pkg/errors"

	"github.com/stretchr/testify/require"
)

func TestRequestFrame(t *testing.T) {
	req := require.New(t)

	data, err := json.Marshal(request{
		Cmd:     getUserCmd,
		Payload: requestPayload{ID: 7},
		ReplyTo: "auth:replies:abc",
	})
	req.NoError(err)

	// The auth service keys its handlers on these exact field names.
	req.JSONEq(`{"cmd":"get-user","payload":{"id":7},"reply_to":"auth:replies:abc"}`, string(data))
}

func TestDecodeResponse(t *testing.T) {
	t.Run("user payload resolves", func(t *testing.T) {
		req := require.New(t)

		u, err := decodeResponse([]byte(`{"user":{"id":7,"username":"ana"}}`))

		req.NoError(err)
		req.Equal(int64(7), u.ID)
		req.Equal("ana", u.Username)
	})

	t.Run("remote error means the user does not resolve", func(t *testing.T) {
		req := require.New(t)

		_, err := decodeResponse([]byte(`{"error":"no such user"}`))

		req.ErrorIs(err, chat_errors.ErrUserNotFound)
	})

	t.Run("empty reply means the user does not resolve", func(t *testing.T) {
		req := require.New(t)

		_, err := decodeResponse([]byte(`{}`))

		req.ErrorIs(err, chat_errors.ErrUserNotFound)
	})

	t.Run("garbage reply reads as an unavailable identity source", func(t *testing.T) {
		req := require.New(t)

		_, err := decodeResponse([]byte(`not-json`))

		req.ErrorIs(err, chat_errors.ErrIdentityUnavailable)
	})
}
