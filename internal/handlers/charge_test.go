package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cardvault/internal/models"
	"cardvault/internal/services/charge"
)

type MockChargeService struct {
	mock.Mock
}

func (m *MockChargeService) Charge(ctx context.Context, paymentMethodID string) (*charge.Result, error) {
	args := m.Called(ctx, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*charge.Result), args.Error(1)
}

func (m *MockChargeService) ProcessPayment(ctx context.Context, paymentToken, billingZip string, amount float64) (*charge.DirectResult, error) {
	args := m.Called(ctx, paymentToken, billingZip, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*charge.DirectResult), args.Error(1)
}

func setupChargeApp(svc charge.Service) *fiber.App {
	h := NewChargeHandler(svc)
	app := fiber.New()
	app.Post("/charge", h.Charge)
	app.Post("/process-payment", h.ProcessPayment)
	return app
}

func TestChargeHandler_RequiresPaymentMethodID(t *testing.T) {
	svc := new(MockChargeService)
	app := setupChargeApp(svc)

	req := httptest.NewRequest("POST", "/charge", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	envelope := decodeEnvelope(t, resp.Body)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "Payment method ID is required", envelope["message"])
	svc.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
}

func TestChargeHandler_ProcessPayment(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(MockChargeService)
		svc.On("ProcessPayment", mock.Anything, "supt_abc", "30004", 42.50).
			Return(&charge.DirectResult{
				TransactionResult: models.TransactionResult{
					TransactionID: "txn_1",
					Amount:        42.50,
					Currency:      "USD",
					Status:        models.TransactionStatusApproved,
				},
				MockMode: true,
			}, nil)
		app := setupChargeApp(svc)

		req := httptest.NewRequest("POST", "/process-payment",
			strings.NewReader(`{"payment_token":"supt_abc","billing_zip":"30004","amount":"42.50"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		envelope := decodeEnvelope(t, resp.Body)
		assert.Equal(t, true, envelope["success"])
		assert.Equal(t, "Payment successful! Transaction ID: txn_1", envelope["message"])

		data := envelope["data"].(map[string]interface{})
		assert.Equal(t, "txn_1", data["transactionId"])
		assert.Equal(t, true, data["mockMode"])
		svc.AssertExpectations(t)
	})

	t.Run("rejects bad input before the service", func(t *testing.T) {
		tests := []struct {
			name    string
			body    string
			message string
		}{
			{
				name:    "missing token",
				body:    `{"billing_zip":"30004","amount":"10.00"}`,
				message: "Missing required fields",
			},
			{
				name:    "missing zip",
				body:    `{"payment_token":"supt_abc","amount":"10.00"}`,
				message: "Missing required fields",
			},
			{
				name:    "missing amount",
				body:    `{"payment_token":"supt_abc","billing_zip":"30004"}`,
				message: "Missing required fields",
			},
			{
				name:    "non-numeric amount",
				body:    `{"payment_token":"supt_abc","billing_zip":"30004","amount":"abc"}`,
				message: "Amount must be a positive number",
			},
			{
				name:    "negative amount",
				body:    `{"payment_token":"supt_abc","billing_zip":"30004","amount":"-5"}`,
				message: "Amount must be a positive number",
			},
			{
				name:    "zero amount",
				body:    `{"payment_token":"supt_abc","billing_zip":"30004","amount":"0"}`,
				message: "Amount must be a positive number",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc := new(MockChargeService)
				app := setupChargeApp(svc)

				req := httptest.NewRequest("POST", "/process-payment", strings.NewReader(tt.body))
				req.Header.Set("Content-Type", "application/json")

				resp, err := app.Test(req)
				assert.NoError(t, err)
				assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

				envelope := decodeEnvelope(t, resp.Body)
				assert.Equal(t, tt.message, envelope["message"])
				assert.Equal(t, "VALIDATION_ERROR", envelope["error_code"])
				svc.AssertNotCalled(t, "ProcessPayment",
					mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})
}
