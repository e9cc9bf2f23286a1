package routes

import (
	"github.com/gofiber/fiber/v2"

	"chatterbox/server/internal/handlers"
	"chatterbox/server/internal/middleware"
	"chatterbox/server/internal/utils"
)

// Setup configures all application routes.
func Setup(app *fiber.App, h *handlers.Handler, tokens *utils.TokenManager) {
	auth := middleware.Auth(tokens)

	api := app.Group("/api")

	// Health check (public)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "ChatterBox API is running",
		})
	})

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", middleware.AuthRateLimiter(), h.Register)
	authGroup.Post("/login", middleware.AuthRateLimiter(), h.Login)
	authGroup.Get("/profile", auth, h.Profile)

	// Channel routes (discovery is public, mutation is not)
	channels := api.Group("/channels")
	channels.Get("/", h.ListChannels)
	channels.Post("/", auth, h.CreateChannel)
	channels.Get("/:channelId", h.GetChannel)
	channels.Post("/:channelId/join", auth, h.JoinChannel)
	channels.Post("/:channelId/leave", auth, h.LeaveChannel)
	channels.Delete("/:channelId", auth, h.DeleteChannel)

	// Message routes (members only)
	channels.Get("/:channelId/messages", auth, h.GetChannelMessages)
	channels.Post("/:channelId/messages", auth, middleware.ModerateRateLimiter(), h.SendMessage)

	// Unhandled API routes share the envelope shape
	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
		})
	})
}
