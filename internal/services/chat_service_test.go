package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"pairchat/internal/domain/conversation"
	"pairchat/internal/domain/message"
	"pairchat/internal/domain/user"
	chat_errors "pairchat/pkg/errors"

	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	users map[int64]user.User
	err   error
	calls int
}

func (f *fakeResolver) ResolveUser(_ context.Context, id int64) (user.User, error) {
	f.calls++
	if f.err != nil {
		return user.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return user.User{}, chat_errors.ErrUserNotFound
	}
	return u, nil
}

type fakeConversationRepo struct {
	conversations []conversation.Conversation
	nextID        int64
	createCalls   int
	queryCalls    int
}

func (f *fakeConversationRepo) Create(_ context.Context, c *conversation.Conversation) error {
	f.createCalls++
	f.nextID++
	c.ID = f.nextID
	for i := range c.Participants {
		c.Participants[i].ConversationID = c.ID
	}
	f.conversations = append(f.conversations, *c)
	return nil
}

func (f *fakeConversationRepo) GetByID(_ context.Context, id int64) (conversation.Conversation, error) {
	f.queryCalls++
	for _, c := range f.conversations {
		if c.ID == id {
			return c, nil
		}
	}
	return conversation.Conversation{}, chat_errors.ErrNotFound
}

func (f *fakeConversationRepo) ListForUser(_ context.Context, userID int64) ([]conversation.Conversation, error) {
	f.queryCalls++
	var out []conversation.Conversation
	for _, c := range f.conversations {
		for _, p := range c.Participants {
			if p.UserID == userID {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeConversationRepo) GetPairConversation(_ context.Context, userID, friendID int64) (conversation.Conversation, error) {
	f.queryCalls++
	for _, c := range f.conversations {
		if len(c.Participants) != 2 {
			continue
		}
		a, b := c.Participants[0].UserID, c.Participants[1].UserID
		if (a == userID && b == friendID) || (a == friendID && b == userID) {
			return c, nil
		}
	}
	return conversation.Conversation{}, chat_errors.ErrNotFound
}

type fakeMessageRepo struct {
	messages   []message.Message
	nextID     int64
	saveCalls  int
	queryCalls int
}

func (f *fakeMessageRepo) Create(_ context.Context, m *message.Message) error {
	f.saveCalls++
	f.nextID++
	m.ID = f.nextID
	f.messages = append(f.messages, *m)
	return nil
}

func (f *fakeMessageRepo) ListByConversation(_ context.Context, conversationID int64, skip, take int) ([]message.Message, error) {
	f.queryCalls++
	var out []message.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if len(out) > take {
		out = out[:take]
	}
	return out, nil
}

func knownUsers(ids ...int64) *fakeResolver {
	users := make(map[int64]user.User, len(ids))
	for _, id := range ids {
		users[id] = user.User{ID: id}
	}
	return &fakeResolver{users: users}
}

func TestChatService_CreateConversation(t *testing.T) {
	t.Run("creates a conversation when none exists for the pair", func(t *testing.T) {
		req := require.New(t)
		convRepo := &fakeConversationRepo{}
		svc := NewChatService(convRepo, &fakeMessageRepo{}, knownUsers(1, 2))

		conv, err := svc.CreateConversation(context.Background(), 1, 2)

		req.NoError(err)
		req.NotZero(conv.ID)
		req.ElementsMatch([]int64{1, 2}, conv.ParticipantIDs())
		req.Equal(1, convRepo.createCalls)
	})

	t.Run("second call returns the conversation created by the first", func(t *testing.T) {
		req := require.New(t)
		convRepo := &fakeConversationRepo{}
		svc := NewChatService(convRepo, &fakeMessageRepo{}, knownUsers(1, 2))

		first, err := svc.CreateConversation(context.Background(), 1, 2)
		req.NoError(err)
		second, err := svc.CreateConversation(context.Background(), 1, 2)
		req.NoError(err)

		req.Equal(first.ID, second.ID)
		req.Equal(1, convRepo.createCalls)
	})

	t.Run("pair lookup is symmetric", func(t *testing.T) {
		req := require.New(t)
		convRepo := &fakeConversationRepo{}
		svc := NewChatService(convRepo, &fakeMessageRepo{}, knownUsers(1, 2))

		first, err := svc.CreateConversation(context.Background(), 1, 2)
		req.NoError(err)
		reversed, err := svc.CreateConversation(context.Background(), 2, 1)
		req.NoError(err)

		req.Equal(first.ID, reversed.ID)
		req.Equal(1, convRepo.createCalls)
	})

	t.Run("unresolvable friend fails without touching the repository", func(t *testing.T) {
		req := require.New(t)
		convRepo := &fakeConversationRepo{}
		svc := NewChatService(convRepo, &fakeMessageRepo{}, knownUsers(1))

		_, err := svc.CreateConversation(context.Background(), 1, 99)

		req.ErrorIs(err, chat_errors.ErrUserNotFound)
		req.Zero(convRepo.createCalls)
		req.Zero(convRepo.queryCalls)
	})

	t.Run("identity outage is distinguishable from a missing user", func(t *testing.T) {
		req := require.New(t)
		convRepo := &fakeConversationRepo{}
		svc := NewChatService(convRepo, &fakeMessageRepo{}, &fakeResolver{err: chat_errors.ErrIdentityUnavailable})

		_, err := svc.CreateConversation(context.Background(), 1, 2)

		req.ErrorIs(err, chat_errors.ErrIdentityUnavailable)
		req.NotErrorIs(err, chat_errors.ErrUserNotFound)
		req.Zero(convRepo.createCalls)
		req.Zero(convRepo.queryCalls)
	})
}

func TestChatService_ListConversations(t *testing.T) {
	now := time.Now()
	convRepo := &fakeConversationRepo{
		nextID: 2,
		conversations: []conversation.Conversation{
			{ID: 1, Participants: []conversation.Participant{
				{ConversationID: 1, UserID: 1, JoinedAt: now},
				{ConversationID: 1, UserID: 2, JoinedAt: now},
			}},
			{ID: 2, Participants: []conversation.Participant{
				{ConversationID: 2, UserID: 2, JoinedAt: now},
				{ConversationID: 2, UserID: 3, JoinedAt: now},
			}},
		},
	}
	svc := NewChatService(convRepo, &fakeMessageRepo{}, knownUsers(1, 2, 3))

	t.Run("returns only conversations containing the user", func(t *testing.T) {
		req := require.New(t)

		summaries, err := svc.ListConversations(context.Background(), 1)

		req.NoError(err)
		req.Len(summaries, 1)
		req.Equal(int64(1), summaries[0].ID)
		req.ElementsMatch([]int64{1, 2}, summaries[0].ParticipantIDs)
	})

	t.Run("returns an empty sequence for a user in no conversations", func(t *testing.T) {
		req := require.New(t)

		summaries, err := svc.ListConversations(context.Background(), 42)

		req.NoError(err)
		req.NotNil(summaries)
		req.Empty(summaries)
	})
}

func TestChatService_CreateMessage(t *testing.T) {
	t.Run("persists the message linking author and conversation", func(t *testing.T) {
		req := require.New(t)
		convRepo := &fakeConversationRepo{}
		msgRepo := &fakeMessageRepo{}
		svc := NewChatService(convRepo, msgRepo, knownUsers(1, 2))

		conv, err := svc.CreateConversation(context.Background(), 1, 2)
		req.NoError(err)

		msg, err := svc.CreateMessage(context.Background(), 1, NewMessageInput{
			ConversationID: conv.ID,
			Message:        "hi",
		})

		req.NoError(err)
		req.NotZero(msg.ID)
		req.Equal(conv.ID, msg.ConversationID)
		req.Equal(int64(1), msg.AuthorID)
		req.Equal("hi", msg.Body)
		req.False(msg.CreatedAt.IsZero())
	})

	t.Run("missing conversation fails without a save", func(t *testing.T) {
		req := require.New(t)
		msgRepo := &fakeMessageRepo{}
		svc := NewChatService(&fakeConversationRepo{}, msgRepo, knownUsers(1))

		_, err := svc.CreateMessage(context.Background(), 1, NewMessageInput{
			ConversationID: 999,
			Message:        "hi",
		})

		req.ErrorIs(err, chat_errors.ErrNotFound)
		req.Zero(msgRepo.saveCalls)
	})

	t.Run("unresolvable author fails without touching either repository", func(t *testing.T) {
		req := require.New(t)
		convRepo := &fakeConversationRepo{}
		msgRepo := &fakeMessageRepo{}
		svc := NewChatService(convRepo, msgRepo, knownUsers())

		_, err := svc.CreateMessage(context.Background(), 7, NewMessageInput{
			ConversationID: 1,
			Message:        "hi",
		})

		req.ErrorIs(err, chat_errors.ErrUserNotFound)
		req.Zero(convRepo.queryCalls)
		req.Zero(msgRepo.saveCalls)
	})
}

func TestChatService_GetChat(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	msgRepo := &fakeMessageRepo{}
	for i := 0; i < 25; i++ {
		msgRepo.messages = append(msgRepo.messages, message.Message{
			ID:             int64(i + 1),
			ConversationID: 1,
			AuthorID:       1,
			Body:           "m",
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		})
	}
	msgRepo.nextID = 25
	svc := NewChatService(&fakeConversationRepo{}, msgRepo, knownUsers(1))

	t.Run("first page holds the oldest twenty messages ascending", func(t *testing.T) {
		req := require.New(t)

		page, err := svc.GetChat(context.Background(), 1, 1, 0)

		req.NoError(err)
		req.True(page.Status)
		req.Equal(int64(1), page.ConversationID)
		req.Len(page.Data, ChatPageSize)
		req.Equal(int64(1), page.Data[0].ID)
		req.Equal(int64(20), page.Data[len(page.Data)-1].ID)
	})

	t.Run("second page continues with no overlap", func(t *testing.T) {
		req := require.New(t)

		page, err := svc.GetChat(context.Background(), 1, 1, 20)

		req.NoError(err)
		req.Len(page.Data, 5)
		req.Equal(int64(21), page.Data[0].ID)
		req.Equal(int64(25), page.Data[len(page.Data)-1].ID)
	})

	t.Run("an empty page still carries the envelope", func(t *testing.T) {
		req := require.New(t)

		page, err := svc.GetChat(context.Background(), 1, 555, 0)

		req.NoError(err)
		req.True(page.Status)
		req.Equal(int64(555), page.ConversationID)
		req.NotNil(page.Data)
		req.Empty(page.Data)
	})

	t.Run("unresolvable user fails without querying messages", func(t *testing.T) {
		req := require.New(t)
		fresh := &fakeMessageRepo{}
		svc := NewChatService(&fakeConversationRepo{}, fresh, knownUsers())

		_, err := svc.GetChat(context.Background(), 9, 1, 0)

		req.ErrorIs(err, chat_errors.ErrUserNotFound)
		req.Zero(fresh.queryCalls)
	})
}
