package models

import "time"

// User represents a registered user.
type User struct {
	ID               string    `json:"id" db:"id"`
	Username         string    `json:"username" db:"username"`
	Email            string    `json:"email" db:"email"`
	Password         string    `json:"-" db:"password_hash"` // Never expose in JSON
	JoinedChannelIDs []string  `json:"joinedChannels" db:"joined_channel_ids"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// UserResponse is the display identity sent to clients wherever a user
// reference is resolved (members, senders, creators).
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserProfile is the full profile of the authenticated user.
type UserProfile struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	JoinedChannelIDs []string  `json:"joinedChannels"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToResponse converts User to UserResponse.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// ToProfile converts User to UserProfile.
func (u *User) ToProfile() UserProfile {
	joined := u.JoinedChannelIDs
	if joined == nil {
		joined = []string{}
	}
	return UserProfile{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		JoinedChannelIDs: joined,
		CreatedAt:        u.CreatedAt,
	}
}
