package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"chatterbox/server/internal/apperr"
)

func TestSendMessage(t *testing.T) {
	req := require.New(t)
	env := newTestEnv()
	alice := env.register(t, "alice", "alice@x.com")

	ch, err := env.channels.Create(context.Background(), "general", "", alice.ID)
	req.NoError(err)

	msg, err := env.messages.Send(context.Background(), ch.ID, alice.ID, "  hello world  ")
	req.NoError(err)
	req.Equal("hello world", msg.Content) // trimmed
	req.Equal("alice", msg.Sender.Username)
	req.Equal(ch.ID, msg.ChannelID)
	req.False(msg.CreatedAt.IsZero())
}

func TestSendMessage_NonMemberRejected(t *testing.T) {
	req := require.New(t)
	env := newTestEnv()
	alice := env.register(t, "alice", "alice@x.com")
	bob := env.register(t, "bob", "bob@x.com")

	ch, err := env.channels.Create(context.Background(), "general", "", alice.ID)
	req.NoError(err)

	_, err = env.messages.Send(context.Background(), ch.ID, bob.ID, "hi")
	req.Error(err)
	req.Equal("NOT_A_MEMBER", apperr.From(err).Code)
	req.Equal(403, apperr.From(err).Status)
	req.Contains(apperr.From(err).Message, "send")
}

func TestSendMessage_Validation(t *testing.T) {
	req := require.New(t)
	env := newTestEnv()
	alice := env.register(t, "alice", "alice@x.com")

	ch, err := env.channels.Create(context.Background(), "general", "", alice.ID)
	req.NoError(err)

	_, err = env.messages.Send(context.Background(), ch.ID, alice.ID, "   ")
	req.Equal("VALIDATION_ERROR", apperr.From(err).Code)

	_, err = env.messages.Send(context.Background(), ch.ID, alice.ID, strings.Repeat("x", 2001))
	req.Equal("VALIDATION_ERROR", apperr.From(err).Code)

	// Exactly at the limit is fine
	_, err = env.messages.Send(context.Background(), ch.ID, alice.ID, strings.Repeat("x", 2000))
	req.NoError(err)
}

func TestSendMessage_LengthCountsCharacters(t *testing.T) {
	req := require.New(t)
	env := newTestEnv()
	alice := env.register(t, "alice", "alice@x.com")

	ch, err := env.channels.Create(context.Background(), "general", "", alice.ID)
	req.NoError(err)

	// 2000 two-byte runes are within the limit even though len() says 4000
	_, err = env.messages.Send(context.Background(), ch.ID, alice.ID, strings.Repeat("é", 2000))
	req.NoError(err)

	_, err = env.messages.Send(context.Background(), ch.ID, alice.ID, strings.Repeat("é", 2001))
	req.Equal("VALIDATION_ERROR", apperr.From(err).Code)
}

func TestSendMessage_InvalidIDBeforeContent(t *testing.T) {
	req := require.New(t)
	env := newTestEnv()
	alice := env.register(t, "alice", "alice@x.com")

	// A malformed id reports as such even when the content is also invalid
	_, err := env.messages.Send(context.Background(), "nope", alice.ID, "   ")
	req.Error(err)
	req.Equal("INVALID_ID", apperr.From(err).Code)
	req.Equal("Invalid channel ID", apperr.From(err).Message)
}

func TestGetChannelMessages_NonMemberRejected(t *testing.T) {
	req := require.New(t)
	env := newTestEnv()
	alice := env.register(t, "alice", "alice@x.com")
	bob := env.register(t, "bob", "bob@x.com")

	ch, err := env.channels.Create(context.Background(), "general", "", alice.ID)
	req.NoError(err)

	// The channel itself is publicly discoverable...
	_, err = env.channels.Get(context.Background(), ch.ID)
	req.NoError(err)

	// ...but its content is not
	_, err = env.messages.ListForChannel(context.Background(), ch.ID, bob.ID)
	req.Error(err)
	req.Equal("NOT_A_MEMBER", apperr.From(err).Code)
	req.Contains(apperr.From(err).Message, "view")
}

func TestGetChannelMessages_ChronologicalOrder(t *testing.T) {
	req := require.New(t)
	env := newTestEnv()
	alice := env.register(t, "alice", "alice@x.com")
	bob := env.register(t, "bob", "bob@x.com")

	ch, err := env.channels.Create(context.Background(), "general", "", alice.ID)
	req.NoError(err)
	_, err = env.channels.Join(context.Background(), ch.ID, bob.ID)
	req.NoError(err)

	for i := 0; i < 5; i++ {
		sender := alice.ID
		if i%2 == 1 {
			sender = bob.ID
		}
		_, err := env.messages.Send(context.Background(), ch.ID, sender, fmt.Sprintf("message %d", i))
		req.NoError(err)
	}

	messages, err := env.messages.ListForChannel(context.Background(), ch.ID, alice.ID)
	req.NoError(err)
	req.Len(messages, 5)

	for i, msg := range messages {
		req.Equal(fmt.Sprintf("message %d", i), msg.Content)
		if i > 0 {
			req.False(messages[i].CreatedAt.Before(messages[i-1].CreatedAt),
				"messages must be non-decreasing in createdAt")
		}
	}

	// Senders resolved
	req.Equal("alice", messages[0].Sender.Username)
	req.Equal("bob", messages[1].Sender.Username)
}

func TestGetChannelMessages_ChannelErrors(t *testing.T) {
	req := require.New(t)
	env := newTestEnv()
	alice := env.register(t, "alice", "alice@x.com")

	_, err := env.messages.ListForChannel(context.Background(), "nope", alice.ID)
	req.Equal("INVALID_ID", apperr.From(err).Code)

	_, err = env.messages.ListForChannel(context.Background(), "6f1e1d1c-0b0a-4f4e-8d8c-7b7a6f6e5d5c", alice.ID)
	req.Equal("NOT_FOUND", apperr.From(err).Code)
}
