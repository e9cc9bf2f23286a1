package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"chatterbox/server/internal/models"
	"chatterbox/server/internal/store"
	"chatterbox/server/internal/utils"
)

type testEnv struct {
	store    *store.MemoryStore
	users    *UserService
	channels *ChannelService
	messages *MessageService
}

func newTestEnv() *testEnv {
	st := store.NewMemoryStore()
	channels := NewChannelService(st)
	return &testEnv{
		store:    st,
		users:    NewUserService(st, utils.NewTokenManager("test-secret")),
		channels: channels,
		messages: NewMessageService(st, channels),
	}
}

func (e *testEnv) register(t *testing.T, username, email string) models.UserProfile {
	t.Helper()
	result, err := e.users.Register(context.Background(), username, email, "secret1")
	require.NoError(t, err)
	return result.User
}

// requireSymmetry asserts the bidirectional membership invariant: a channel
// is in a user's joined list exactly when the user is in the channel's
// member set.
func (e *testEnv) requireSymmetry(t *testing.T, userIDs ...string) {
	t.Helper()
	req := require.New(t)
	ctx := context.Background()

	channels, err := e.store.ListChannels(ctx)
	req.NoError(err)

	for _, userID := range userIDs {
		user, err := e.store.GetUserByID(ctx, userID)
		req.NoError(err)

		for _, channel := range channels {
			inMembers := contains(channel.MemberIDs, user.ID)
			inJoined := contains(user.JoinedChannelIDs, channel.ID)
			req.Equal(inMembers, inJoined,
				"membership asymmetry between user %s and channel %s", user.Username, channel.Name)
		}
	}
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
