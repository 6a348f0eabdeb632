package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"cardvault/internal/models"
	"cardvault/internal/services/charge"
	"cardvault/internal/utils/response"
)

// ChargeHandler serves POST /charge, the fixed-amount charge against a
// vaulted payment method, and POST /process-payment, the one-shot charge
// from a single-use token.
type ChargeHandler struct {
	chargeService charge.Service
}

func NewChargeHandler(chargeService charge.Service) *ChargeHandler {
	return &ChargeHandler{
		chargeService: chargeService,
	}
}

func (h *ChargeHandler) Charge(c *fiber.Ctx) error {
	var req models.ChargeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if req.PaymentMethodID == "" {
		return response.BadRequest(c, "Payment method ID is required")
	}

	result, err := h.chargeService.Charge(c.Context(), req.PaymentMethodID)
	if err != nil {
		log.Printf("⚠️ charge failed for %s: %v", req.PaymentMethodID, err)
		return response.FromError(c, err)
	}
	return response.Success(c, "Payment processed successfully", result)
}

func (h *ChargeHandler) ProcessPayment(c *fiber.Ctx) error {
	var req models.ProcessPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if req.PaymentToken == "" || req.BillingZip == "" || req.Amount == "" {
		return response.BadRequest(c, "Missing required fields")
	}

	amount, err := strconv.ParseFloat(req.Amount, 64)
	if err != nil || amount <= 0 {
		return response.BadRequest(c, "Amount must be a positive number")
	}

	result, err := h.chargeService.ProcessPayment(c.Context(), req.PaymentToken, req.BillingZip, amount)
	if err != nil {
		log.Printf("⚠️ direct payment failed: %v", err)
		return response.FromError(c, err)
	}
	return response.Success(c, "Payment successful! Transaction ID: "+result.TransactionID, result)
}
