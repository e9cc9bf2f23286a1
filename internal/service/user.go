package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"chatterbox/server/internal/apperr"
	"chatterbox/server/internal/models"
	"chatterbox/server/internal/store"
	"chatterbox/server/internal/utils"
)

// UserService handles registration, login and profile lookup.
type UserService struct {
	store  store.Store
	tokens *utils.TokenManager
}

func NewUserService(s store.Store, tokens *utils.TokenManager) *UserService {
	return &UserService{store: s, tokens: tokens}
}

// AuthResult is a user profile paired with a fresh session token.
type AuthResult struct {
	User  models.UserProfile `json:"user"`
	Token string             `json:"token"`
}

// Register creates a new user and issues a session token.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" || email == "" || password == "" {
		return nil, apperr.Validation("Username, email, and password are required")
	}
	if utf8.RuneCountInString(username) < 3 {
		return nil, apperr.Validation("Username must be at least 3 characters")
	}
	if utf8.RuneCountInString(username) > 30 {
		return nil, apperr.Validation("Username must be less than 30 characters")
	}
	if utf8.RuneCountInString(password) < 6 {
		return nil, apperr.Validation("Password must be at least 6 characters")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, &models.User{
		Username: username,
		Email:    email,
		Password: hash,
	})
	if err != nil {
		var dup *store.DuplicateError
		if errors.As(err, &dup) {
			return nil, apperr.Duplicate("User with this " + dup.Field + " already exists")
		}
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user.ToProfile(), Token: token}, nil
}

// Login verifies credentials and issues a session token. Lookup and
// password failures are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || password == "" {
		return nil, apperr.Validation("Email and password are required")
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Authentication("Invalid credentials")
		}
		return nil, err
	}

	if !utils.CheckPassword(user.Password, password) {
		return nil, apperr.Authentication("Invalid credentials")
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user.ToProfile(), Token: token}, nil
}

// Profile returns the authenticated user's profile.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.UserProfile, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, err
	}
	profile := user.ToProfile()
	return &profile, nil
}
