package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"cardvault/internal/models"
	"cardvault/internal/services/mode"
	"cardvault/internal/utils/response"
)

// MockModeHandler serves GET and POST /mock-mode, the process-wide toggle
// between synthesized and live gateway responses.
type MockModeHandler struct {
	toggle *mode.Toggle
}

func NewMockModeHandler(toggle *mode.Toggle) *MockModeHandler {
	return &MockModeHandler{toggle: toggle}
}

func (h *MockModeHandler) Get(c *fiber.Ctx) error {
	enabled := h.toggle.Enabled()
	return response.Success(c, "Mock mode is "+stateText(enabled), fiber.Map{
		"isEnabled": enabled,
	})
}

func (h *MockModeHandler) Set(c *fiber.Ctx) error {
	var req models.MockModeRequest
	if err := c.BodyParser(&req); err != nil || req.IsEnabled == nil {
		return response.BadRequest(c, "Invalid JSON format")
	}

	previous := h.toggle.Set(*req.IsEnabled)
	log.Printf("mock mode toggled: %s -> %s", stateText(previous), stateText(*req.IsEnabled))

	return response.Success(c, "Mock mode "+stateText(*req.IsEnabled)+" successfully", fiber.Map{
		"isEnabled": *req.IsEnabled,
	})
}

func stateText(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
