package handlers

import (
	"github.com/gofiber/fiber/v2"

	"chatterbox/server/internal/middleware"
)

// CreateChannelRequest represents create channel request body
type CreateChannelRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// ListChannels returns all channels (public discovery)
func (h *Handler) ListChannels(c *fiber.Ctx) error {
	channels, err := h.channels.List(c.Context())
	if err != nil {
		return h.fail(c, err)
	}

	return h.ok(c, fiber.StatusOK, channels)
}

// CreateChannel creates a new channel owned by the caller
func (h *Handler) CreateChannel(c *fiber.Ctx) error {
	var req CreateChannelRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, err)
	}

	channel, err := h.channels.Create(c.Context(), req.Name, req.Description, middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}

	return h.ok(c, fiber.StatusCreated, channel)
}

// GetChannel returns a single channel (public discovery)
func (h *Handler) GetChannel(c *fiber.Ctx) error {
	channel, err := h.channels.Get(c.Context(), c.Params("channelId"))
	if err != nil {
		return h.fail(c, err)
	}

	return h.ok(c, fiber.StatusOK, channel)
}

// JoinChannel adds the caller to a channel
func (h *Handler) JoinChannel(c *fiber.Ctx) error {
	channel, err := h.channels.Join(c.Context(), c.Params("channelId"), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}

	return h.ok(c, fiber.StatusOK, channel)
}

// LeaveChannel removes the caller from a channel
func (h *Handler) LeaveChannel(c *fiber.Ctx) error {
	channel, err := h.channels.Leave(c.Context(), c.Params("channelId"), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}

	if channel == nil {
		// Creator left as sole member; the channel was disbanded.
		return c.JSON(fiber.Map{
			"success": true,
			"message": "You have left the channel and it was disbanded",
		})
	}

	return h.ok(c, fiber.StatusOK, channel)
}

// DeleteChannel deletes a channel (creator only)
func (h *Handler) DeleteChannel(c *fiber.Ctx) error {
	if err := h.channels.Delete(c.Context(), c.Params("channelId"), middleware.UserID(c)); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Channel deleted successfully",
	})
}
