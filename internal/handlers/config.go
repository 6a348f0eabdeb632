package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"cardvault/internal/config"
	"cardvault/internal/utils/response"
)

// sessionTokenTTL bounds how long a client may use one session token for
// client-side tokenization.
const sessionTokenTTL = 10 * time.Minute

// ConfigHandler serves GET /config: a short-lived gateway session token
// the storefront uses for client-side tokenization.
type ConfigHandler struct {
	gateway config.GatewayConfig
}

func NewConfigHandler(gateway config.GatewayConfig) *ConfigHandler {
	return &ConfigHandler{gateway: gateway}
}

func (h *ConfigHandler) Get(c *fiber.Ctx) error {
	if !h.gateway.Configured() {
		return response.Error(c, fiber.StatusServiceUnavailable,
			"Payment service not configured", "CONFIGURATION_ERROR")
	}

	now := time.Now()
	expiresAt := now.Add(sessionTokenTTL)
	claims := jwt.MapClaims{
		"app_id": h.gateway.AppID,
		"iat":    now.Unix(),
		"exp":    expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(h.gateway.SecretKey))
	if err != nil {
		log.Printf("⚠️ failed to sign session token: %v", err)
		return response.ServerError(c, "Failed to create session token")
	}

	return response.Success(c, "Session token created", fiber.Map{
		"appId":        h.gateway.AppID,
		"sessionToken": token,
		"expiresAt":    expiresAt.Format(time.RFC3339),
	})
}
