package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"cardvault/internal/models"
	"cardvault/internal/services/vault"
	"cardvault/internal/utils/response"
)

// PaymentMethodHandler serves GET and POST /payment-methods.
type PaymentMethodHandler struct {
	vaultService vault.Service
}

func NewPaymentMethodHandler(vaultService vault.Service) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		vaultService: vaultService,
	}
}

// List returns every vaulted payment method in insertion order.
func (h *PaymentMethodHandler) List(c *fiber.Ctx) error {
	methods, err := h.vaultService.ListMethods(c.Context())
	if err != nil {
		log.Printf("⚠️ failed to retrieve payment methods: %v", err)
		return response.ServerError(c, "Failed to retrieve payment methods")
	}
	return response.Success(c, "Payment methods retrieved successfully", methods)
}

// Save creates a new payment method or edits an existing one. A request
// carrying an id is an edit; otherwise it is a create from either a vault
// token or a single-use payment token.
func (h *PaymentMethodHandler) Save(c *fiber.Ctx) error {
	var req models.PaymentMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	if req.IsEdit() {
		method, err := h.vaultService.EditMethod(c.Context(), req)
		if err != nil {
			log.Printf("⚠️ payment method edit failed: %v", err)
			return response.FromError(c, err)
		}
		return response.Success(c, "Payment method updated successfully", method)
	}

	method, err := h.vaultService.CreateMethod(c.Context(), req)
	if err != nil {
		log.Printf("⚠️ payment method creation failed: %v", err)
		return response.FromError(c, err)
	}
	return response.Success(c, "Payment method added successfully", method)
}
