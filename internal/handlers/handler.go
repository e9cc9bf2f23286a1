package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"chatterbox/server/internal/apperr"
	"chatterbox/server/internal/service"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	users    *service.UserService
	channels *service.ChannelService
	messages *service.MessageService
	validate *validator.Validate
}

// New creates a Handler wired to the given services.
func New(users *service.UserService, channels *service.ChannelService, messages *service.MessageService) *Handler {
	return &Handler{
		users:    users,
		channels: channels,
		messages: messages,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// parseBody decodes and validates the request body into dst.
func (h *Handler) parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.Validation("Invalid request body")
	}
	if err := h.validate.Struct(dst); err != nil {
		return apperr.Validation(validationMessage(err))
	}
	return nil
}

// fail maps a core error to its HTTP status and the uniform envelope.
// Unclassified errors are logged here before being masked as a generic
// server error.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var typed *apperr.Error
	if !errors.As(err, &typed) {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	e := apperr.From(err)
	return c.Status(e.Status).JSON(fiber.Map{
		"success": false,
		"message": e.Message,
	})
}

// ok writes a success envelope with the given status and payload.
func (h *Handler) ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Invalid request body"
	}

	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Please enter a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be less than %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
