package models

import "time"

// Channel represents a chat channel. MemberIDs always contains CreatedBy,
// in join order; CreatedBy is immutable except for ownership transfer when
// the creator leaves.
type Channel struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedBy   string    `json:"createdBy" db:"created_by"`
	MemberIDs   []string  `json:"members" db:"member_ids"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ChannelResponse includes members and creator resolved to display identities.
type ChannelResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedBy   UserResponse   `json:"createdBy"`
	Members     []UserResponse `json:"members"`
	CreatedAt   time.Time      `json:"createdAt"`
}
