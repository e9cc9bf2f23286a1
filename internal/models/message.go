package models

import "time"

// Message represents a chat message in a channel. Messages are immutable
// after creation; created_at is the sole ordering key.
type Message struct {
	ID        string    `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	SenderID  string    `json:"senderId" db:"sender_id"`
	ChannelID string    `json:"channelId" db:"channel_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// MessageResponse includes the sender resolved to a display identity.
type MessageResponse struct {
	ID        string       `json:"id"`
	Content   string       `json:"content"`
	Sender    UserResponse `json:"sender"`
	ChannelID string       `json:"channelId"`
	CreatedAt time.Time    `json:"createdAt"`
}
