package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"cardvault/internal/services/mode"
)

func setupMockModeApp(initial bool) (*fiber.App, *mode.Toggle) {
	toggle := mode.NewToggle(initial)
	h := NewMockModeHandler(toggle)

	app := fiber.New()
	app.Get("/mock-mode", h.Get)
	app.Post("/mock-mode", h.Set)
	return app, toggle
}

func decodeEnvelope(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	assert.NoError(t, json.NewDecoder(body).Decode(&envelope))
	return envelope
}

func TestMockModeHandler_Get(t *testing.T) {
	app, _ := setupMockModeApp(true)

	resp, err := app.Test(httptest.NewRequest("GET", "/mock-mode", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp.Body)
	assert.Equal(t, true, envelope["success"])
	assert.NotEmpty(t, envelope["timestamp"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, true, data["isEnabled"])
}

func TestMockModeHandler_Set(t *testing.T) {
	app, toggle := setupMockModeApp(false)

	req := httptest.NewRequest("POST", "/mock-mode", strings.NewReader(`{"isEnabled": true}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp.Body)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "Mock mode enabled successfully", envelope["message"])
	assert.True(t, toggle.Enabled())
}

func TestMockModeHandler_SetInvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing flag", `{}`},
		{"wrong type", `{"isEnabled": "yes"}`},
		{"malformed json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, toggle := setupMockModeApp(false)

			req := httptest.NewRequest("POST", "/mock-mode", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			envelope := decodeEnvelope(t, resp.Body)
			assert.Equal(t, false, envelope["success"])
			assert.Equal(t, "VALIDATION_ERROR", envelope["error_code"])
			assert.False(t, toggle.Enabled())
		})
	}
}
