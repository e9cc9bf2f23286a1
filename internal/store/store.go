package store

import (
	"context"
	"errors"
	"fmt"

	"chatterbox/server/internal/models"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

// DuplicateError reports a unique-constraint violation, tagged with the
// field that collided (username, email or name).
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate value for field %q", e.Field)
}

// Store defines the persistence capability the service core depends on.
// Both PostgresStore and MemoryStore implement this interface.
type Store interface {
	// Connection management
	Close()
	Ping(ctx context.Context) error

	// User operations
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	AddJoinedChannel(ctx context.Context, userID, channelID string) error
	RemoveJoinedChannel(ctx context.Context, userID, channelID string) error

	// Channel operations
	CreateChannel(ctx context.Context, channel *models.Channel) (*models.Channel, error)
	GetChannelByID(ctx context.Context, id string) (*models.Channel, error)
	ListChannels(ctx context.Context) ([]models.Channel, error)
	AddChannelMember(ctx context.Context, channelID, userID string) error
	RemoveChannelMember(ctx context.Context, channelID, userID string) error
	SetChannelCreator(ctx context.Context, channelID, userID string) error
	DeleteChannel(ctx context.Context, id string) error

	// Message operations
	CreateMessage(ctx context.Context, message *models.Message) (*models.Message, error)
	ListChannelMessages(ctx context.Context, channelID string) ([]models.Message, error)
	DeleteChannelMessages(ctx context.Context, channelID string) error

	// Transact runs fn against a transactional view of the store.
	// If fn returns an error every mutation it made is rolled back.
	Transact(ctx context.Context, fn func(tx Store) error) error
}
