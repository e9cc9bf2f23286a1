package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chatterbox/server/internal/models"
)

// MemoryStore keeps all state in process memory. It backs the test suite
// and fills the lightweight-backend role PostgresStore fills in production.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	channels map[string]*models.Channel
	messages []*models.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*models.User),
		channels: make(map[string]*models.Channel),
	}
}

func (m *MemoryStore) Close() {}

func (m *MemoryStore) Ping(ctx context.Context) error { return nil }

func (m *MemoryStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == user.Username {
			return nil, &DuplicateError{Field: "username"}
		}
		if existing.Email == user.Email {
			return nil, &DuplicateError{Field: "email"}
		}
	}

	created := *user
	created.ID = uuid.NewString()
	created.JoinedChannelIDs = []string{}
	created.CreatedAt = time.Now()
	m.users[created.ID] = &created

	out := created
	return &out, nil
}

func (m *MemoryStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(user), nil
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var users []models.User
	for _, id := range ids {
		if user, ok := m.users[id]; ok {
			users = append(users, *copyUser(user))
		}
	}
	return users, nil
}

func (m *MemoryStore) AddJoinedChannel(ctx context.Context, userID, channelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	if !lo.Contains(user.JoinedChannelIDs, channelID) {
		user.JoinedChannelIDs = append(user.JoinedChannelIDs, channelID)
	}
	return nil
}

func (m *MemoryStore) RemoveJoinedChannel(ctx context.Context, userID, channelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	user.JoinedChannelIDs = lo.Without(user.JoinedChannelIDs, channelID)
	return nil
}

func (m *MemoryStore) CreateChannel(ctx context.Context, channel *models.Channel) (*models.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.channels {
		if existing.Name == channel.Name {
			return nil, &DuplicateError{Field: "name"}
		}
	}

	created := *channel
	created.ID = uuid.NewString()
	created.MemberIDs = append([]string{}, channel.MemberIDs...)
	created.CreatedAt = time.Now()
	m.channels[created.ID] = &created

	return copyChannel(&created), nil
}

func (m *MemoryStore) GetChannelByID(ctx context.Context, id string) (*models.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	channel, ok := m.channels[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyChannel(channel), nil
}

func (m *MemoryStore) ListChannels(ctx context.Context) ([]models.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var channels []models.Channel
	for _, channel := range m.channels {
		channels = append(channels, *copyChannel(channel))
	}
	sort.Slice(channels, func(i, j int) bool {
		return channels[i].CreatedAt.Before(channels[j].CreatedAt)
	})
	return channels, nil
}

func (m *MemoryStore) AddChannelMember(ctx context.Context, channelID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	channel, ok := m.channels[channelID]
	if !ok {
		return ErrNotFound
	}
	if !lo.Contains(channel.MemberIDs, userID) {
		channel.MemberIDs = append(channel.MemberIDs, userID)
	}
	return nil
}

func (m *MemoryStore) RemoveChannelMember(ctx context.Context, channelID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	channel, ok := m.channels[channelID]
	if !ok {
		return ErrNotFound
	}
	channel.MemberIDs = lo.Without(channel.MemberIDs, userID)
	return nil
}

func (m *MemoryStore) SetChannelCreator(ctx context.Context, channelID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	channel, ok := m.channels[channelID]
	if !ok {
		return ErrNotFound
	}
	channel.CreatedBy = userID
	return nil
}

func (m *MemoryStore) DeleteChannel(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.channels[id]; !ok {
		return ErrNotFound
	}
	delete(m.channels, id)
	return nil
}

func (m *MemoryStore) CreateMessage(ctx context.Context, message *models.Message) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := *message
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now()
	m.messages = append(m.messages, &created)

	out := created
	return &out, nil
}

func (m *MemoryStore) ListChannelMessages(ctx context.Context, channelID string) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Insertion order already matches creation order; the stable sort keeps
	// it for equal timestamps.
	var messages []models.Message
	for _, message := range m.messages {
		if message.ChannelID == channelID {
			messages = append(messages, *message)
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

func (m *MemoryStore) DeleteChannelMessages(ctx context.Context, channelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.messages[:0]
	for _, message := range m.messages {
		if message.ChannelID != channelID {
			kept = append(kept, message)
		}
	}
	m.messages = kept
	return nil
}

// Transact runs fn against a copy of the store and adopts the copy's state
// only when fn succeeds, giving rollback-on-error semantics.
func (m *MemoryStore) Transact(ctx context.Context, fn func(tx Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &MemoryStore{
		users:    make(map[string]*models.User, len(m.users)),
		channels: make(map[string]*models.Channel, len(m.channels)),
		messages: make([]*models.Message, 0, len(m.messages)),
	}
	for id, user := range m.users {
		tx.users[id] = copyUser(user)
	}
	for id, channel := range m.channels {
		tx.channels[id] = copyChannel(channel)
	}
	for _, message := range m.messages {
		copied := *message
		tx.messages = append(tx.messages, &copied)
	}

	if err := fn(tx); err != nil {
		return err
	}

	m.users = tx.users
	m.channels = tx.channels
	m.messages = tx.messages
	return nil
}

func copyUser(u *models.User) *models.User {
	copied := *u
	copied.JoinedChannelIDs = append([]string{}, u.JoinedChannelIDs...)
	return &copied
}

func copyChannel(c *models.Channel) *models.Channel {
	copied := *c
	copied.MemberIDs = append([]string{}, c.MemberIDs...)
	return &copied
}
