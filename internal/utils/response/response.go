// Package response renders the JSON envelope shared by every endpoint:
// {success, data?, message, timestamp, error_code?}.
package response

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "cardvault/internal/errors"
)

func timestamp() string {
	return time.Now().Format(time.RFC3339)
}

// Success sends a 200 envelope with data.
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"data":      data,
		"message":   message,
		"timestamp": timestamp(),
	})
}

// Error sends a failure envelope with the given status and error code.
func Error(c *fiber.Ctx, status int, message, errorCode string) error {
	return c.Status(status).JSON(fiber.Map{
		"success":    false,
		"message":    message,
		"timestamp":  timestamp(),
		"error_code": errorCode,
	})
}

// FromError maps a service failure to its envelope. Unrecognized errors
// become 500 SERVER_ERROR without leaking internals.
func FromError(c *fiber.Ctx, err error) error {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return Error(c, domainErr.Status, domainErr.Message, domainErr.Code)
	}
	return Error(c, fiber.StatusInternalServerError, apperrors.ErrServer.Message, apperrors.ErrServer.Code)
}

// BadRequest sends a 400 VALIDATION_ERROR envelope.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message, "VALIDATION_ERROR")
}

// ServerError sends a 500 SERVER_ERROR envelope.
func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message, "SERVER_ERROR")
}
