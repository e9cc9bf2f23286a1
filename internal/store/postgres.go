package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatterbox/server/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	username TEXT NOT NULL,
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	joined_channel_ids UUID[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT users_username_key UNIQUE (username),
	CONSTRAINT users_email_key UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS channels (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_by UUID NOT NULL REFERENCES users(id),
	member_ids UUID[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT channels_name_key UNIQUE (name)
);

CREATE TABLE IF NOT EXISTS messages (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	content TEXT NOT NULL,
	sender_id UUID NOT NULL REFERENCES users(id),
	channel_id UUID NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_messages_channel_created ON messages (channel_id, created_at);
`

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so every query
// below works inside and outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists ChatterBox state in PostgreSQL. Member and joined
// sets are uuid[] columns mutated with array_append/array_remove.
type PostgresStore struct {
	pool *pgxpool.Pool
	db   querier
}

// ConnectPostgres creates a connection pool, verifies connectivity and
// bootstraps the schema.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &PostgresStore{pool: pool, db: pool}, nil
}

func (p *PostgresStore) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// translateError converts unique-constraint violations into DuplicateError
// tagged with the colliding field.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "username"):
			return &DuplicateError{Field: "username"}
		case strings.Contains(pgErr.ConstraintName, "email"):
			return &DuplicateError{Field: "email"}
		case strings.Contains(pgErr.ConstraintName, "name"):
			return &DuplicateError{Field: "name"}
		default:
			return &DuplicateError{Field: "value"}
		}
	}
	return err
}

func (p *PostgresStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	var created models.User
	err := p.db.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id::text, username, email, password_hash, joined_channel_ids::text[], created_at
	`, user.Username, user.Email, user.Password).
		Scan(&created.ID, &created.Username, &created.Email, &created.Password,
			&created.JoinedChannelIDs, &created.CreatedAt)

	if err != nil {
		return nil, translateError(err)
	}
	return &created, nil
}

func (p *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return p.getUser(ctx, "id = $1::uuid", id)
}

func (p *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return p.getUser(ctx, "email = $1", email)
}

func (p *PostgresStore) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	var user models.User
	err := p.db.QueryRow(ctx, `
		SELECT id::text, username, email, password_hash, joined_channel_ids::text[], created_at
		FROM users WHERE `+where, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.Password,
			&user.JoinedChannelIDs, &user.CreatedAt)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (p *PostgresStore) GetUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id::text, username, email, password_hash, joined_channel_ids::text[], created_at
		FROM users WHERE id = ANY($1::uuid[])
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.Password,
			&user.JoinedChannelIDs, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (p *PostgresStore) AddJoinedChannel(ctx context.Context, userID, channelID string) error {
	return p.updateSet(ctx, `
		UPDATE users
		SET joined_channel_ids = array_append(joined_channel_ids, $2::uuid)
		WHERE id = $1::uuid AND NOT ($2::uuid = ANY(joined_channel_ids))
	`, userID, channelID)
}

func (p *PostgresStore) RemoveJoinedChannel(ctx context.Context, userID, channelID string) error {
	return p.updateSet(ctx, `
		UPDATE users
		SET joined_channel_ids = array_remove(joined_channel_ids, $2::uuid)
		WHERE id = $1::uuid
	`, userID, channelID)
}

func (p *PostgresStore) CreateChannel(ctx context.Context, channel *models.Channel) (*models.Channel, error) {
	var created models.Channel
	err := p.db.QueryRow(ctx, `
		INSERT INTO channels (name, description, created_by, member_ids)
		VALUES ($1, $2, $3::uuid, $4::uuid[])
		RETURNING id::text, name, description, created_by::text, member_ids::text[], created_at
	`, channel.Name, channel.Description, channel.CreatedBy, channel.MemberIDs).
		Scan(&created.ID, &created.Name, &created.Description, &created.CreatedBy,
			&created.MemberIDs, &created.CreatedAt)

	if err != nil {
		return nil, translateError(err)
	}
	return &created, nil
}

func (p *PostgresStore) GetChannelByID(ctx context.Context, id string) (*models.Channel, error) {
	var channel models.Channel
	err := p.db.QueryRow(ctx, `
		SELECT id::text, name, description, created_by::text, member_ids::text[], created_at
		FROM channels WHERE id = $1::uuid
	`, id).
		Scan(&channel.ID, &channel.Name, &channel.Description, &channel.CreatedBy,
			&channel.MemberIDs, &channel.CreatedAt)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (p *PostgresStore) ListChannels(ctx context.Context) ([]models.Channel, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id::text, name, description, created_by::text, member_ids::text[], created_at
		FROM channels ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		var channel models.Channel
		if err := rows.Scan(&channel.ID, &channel.Name, &channel.Description, &channel.CreatedBy,
			&channel.MemberIDs, &channel.CreatedAt); err != nil {
			return nil, err
		}
		channels = append(channels, channel)
	}
	return channels, rows.Err()
}

func (p *PostgresStore) AddChannelMember(ctx context.Context, channelID, userID string) error {
	return p.updateSet(ctx, `
		UPDATE channels
		SET member_ids = array_append(member_ids, $2::uuid)
		WHERE id = $1::uuid AND NOT ($2::uuid = ANY(member_ids))
	`, channelID, userID)
}

func (p *PostgresStore) RemoveChannelMember(ctx context.Context, channelID, userID string) error {
	return p.updateSet(ctx, `
		UPDATE channels
		SET member_ids = array_remove(member_ids, $2::uuid)
		WHERE id = $1::uuid
	`, channelID, userID)
}

func (p *PostgresStore) SetChannelCreator(ctx context.Context, channelID, userID string) error {
	tag, err := p.db.Exec(ctx, `
		UPDATE channels SET created_by = $2::uuid WHERE id = $1::uuid
	`, channelID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) DeleteChannel(ctx context.Context, id string) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM channels WHERE id = $1::uuid`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStore) CreateMessage(ctx context.Context, message *models.Message) (*models.Message, error) {
	var created models.Message
	err := p.db.QueryRow(ctx, `
		INSERT INTO messages (content, sender_id, channel_id)
		VALUES ($1, $2::uuid, $3::uuid)
		RETURNING id::text, content, sender_id::text, channel_id::text, created_at
	`, message.Content, message.SenderID, message.ChannelID).
		Scan(&created.ID, &created.Content, &created.SenderID, &created.ChannelID, &created.CreatedAt)

	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (p *PostgresStore) ListChannelMessages(ctx context.Context, channelID string) ([]models.Message, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id::text, content, sender_id::text, channel_id::text, created_at
		FROM messages WHERE channel_id = $1::uuid
		ORDER BY created_at ASC
	`, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var message models.Message
		if err := rows.Scan(&message.ID, &message.Content, &message.SenderID,
			&message.ChannelID, &message.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}

func (p *PostgresStore) DeleteChannelMessages(ctx context.Context, channelID string) error {
	_, err := p.db.Exec(ctx, `DELETE FROM messages WHERE channel_id = $1::uuid`, channelID)
	return err
}

// Transact runs fn inside a database transaction.
func (p *PostgresStore) Transact(ctx context.Context, fn func(tx Store) error) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(&PostgresStore{pool: p.pool, db: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// updateSet runs a set-mutating UPDATE. Both additions and removals are
// idempotent: the guarded UPDATE matching no row means the element was
// already present (or absent), which the core has checked beforehand.
func (p *PostgresStore) updateSet(ctx context.Context, sql, id, element string) error {
	_, err := p.db.Exec(ctx, sql, id, element)
	return err
}
