// Package routes defines the API routing configuration.
// It wires repositories, services and handlers and registers all HTTP
// routes.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cardvault/internal/config"
	"cardvault/internal/handlers"
	"cardvault/internal/repositories"
	"cardvault/internal/services/charge"
	"cardvault/internal/services/gateway"
	"cardvault/internal/services/mockgen"
	"cardvault/internal/services/mode"
	"cardvault/internal/services/vault"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	gatewayCfg := config.LoadGatewayConfig()

	// Repositories
	methodRepo := repositories.NewPaymentMethodRepository(db)

	// Mode resolution: one process-wide toggle shared by both flows.
	toggle := mode.NewToggle(config.GetBoolEnv("MOCK_MODE", false))
	resolver := mode.NewResolver(toggle, gatewayCfg)

	// Gateway collaborators
	var gatewayClient gateway.Client
	if gatewayCfg.Configured() {
		gatewayClient = gateway.NewStripeClient(gatewayCfg.SecretKey)
	}
	mockGenerator := mockgen.New()

	// Services
	vaultService := vault.NewService(methodRepo, repositories.CacheService, gatewayClient, mockGenerator, resolver)
	chargeService := charge.NewService(methodRepo, gatewayClient, mockGenerator, resolver)

	// Handlers
	paymentMethodHandler := handlers.NewPaymentMethodHandler(vaultService)
	chargeHandler := handlers.NewChargeHandler(chargeService)
	mockModeHandler := handlers.NewMockModeHandler(toggle)
	configHandler := handlers.NewConfigHandler(gatewayCfg)

	app.Get("/payment-methods", paymentMethodHandler.List)
	app.Post("/payment-methods", paymentMethodHandler.Save)

	app.Post("/charge", chargeHandler.Charge)
	app.Post("/process-payment", chargeHandler.ProcessPayment)

	app.Get("/mock-mode", mockModeHandler.Get)
	app.Post("/mock-mode", mockModeHandler.Set)

	app.Get("/config", configHandler.Get)
	app.Get("/health", handlers.HealthCheck)
}
