package handlers

import (
	"github.com/gofiber/fiber/v2"

	"chatterbox/server/internal/middleware"
)

// SendMessageRequest represents send message request body
type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// GetChannelMessages returns a channel's full history, oldest first (members only)
func (h *Handler) GetChannelMessages(c *fiber.Ctx) error {
	messages, err := h.messages.ListForChannel(c.Context(), c.Params("channelId"), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}

	return h.ok(c, fiber.StatusOK, messages)
}

// SendMessage posts a message to a channel (members only)
func (h *Handler) SendMessage(c *fiber.Ctx) error {
	var req SendMessageRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	message, err := h.messages.Send(c.Context(), c.Params("channelId"), middleware.UserID(c), req.Content)
	if err != nil {
		return h.fail(c, err)
	}

	return h.ok(c, fiber.StatusCreated, message)
}
