package handlers

import (
	"github.com/gofiber/fiber/v2"

	"chatterbox/server/internal/middleware"
)

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles user registration
func (h *Handler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	result, err := h.users.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}

	return h.ok(c, fiber.StatusCreated, result)
}

// Login handles user login
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	result, err := h.users.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}

	return h.ok(c, fiber.StatusOK, result)
}

// Profile returns the current authenticated user
func (h *Handler) Profile(c *fiber.Ctx) error {
	profile, err := h.users.Profile(c.Context(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}

	return h.ok(c, fiber.StatusOK, profile)
}
