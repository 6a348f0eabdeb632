// Package charge debits cards: a fixed amount against an already-vaulted
// payment method, or a caller-supplied amount against a single-use token.
// Each request resolves between the live gateway and the mock generator.
package charge

import (
	"context"
	"fmt"
	"log"
	"time"

	errs "cardvault/internal/errors"
	"cardvault/internal/models"
	"cardvault/internal/repositories"
	"cardvault/internal/services/gateway"
	"cardvault/internal/services/mockgen"
	"cardvault/internal/services/mode"
	"cardvault/internal/utils"
	"cardvault/internal/validation"
)

// The charge amount is fixed; it is not caller-supplied in this flow.
const (
	Amount   = 25.00
	Currency = "USD"
)

// DefaultGatewayTimeout bounds a single live gateway call.
const DefaultGatewayTimeout = 15 * time.Second

// Result is the charge response: the transaction outcome plus the payment
// method it consumed and the mode actually used for this call.
type Result struct {
	models.TransactionResult
	PaymentMethod models.PaymentMethodDisplay `json:"paymentMethod"`
	MockMode      bool                        `json:"mockMode"`
}

// DirectResult is the process-payment response: the transaction outcome
// plus the mode actually used. No payment method is involved; the
// single-use token is consumed without vaulting.
type DirectResult struct {
	models.TransactionResult
	MockMode bool `json:"mockMode"`
}

// Service is the charge flow.
type Service interface {
	Charge(ctx context.Context, paymentMethodID string) (*Result, error)
	ProcessPayment(ctx context.Context, paymentToken, billingZip string, amount float64) (*DirectResult, error)
}

type service struct {
	repo     repositories.PaymentMethodRepository
	gateway  gateway.Client
	mock     *mockgen.Generator
	resolver *mode.Resolver
	timeout  time.Duration
}

func NewService(
	repo repositories.PaymentMethodRepository,
	gw gateway.Client,
	mock *mockgen.Generator,
	resolver *mode.Resolver,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if mock == nil {
		panic("mock generator is required")
	}
	if resolver == nil {
		panic("mode resolver is required")
	}

	return &service{
		repo:     repo,
		gateway:  gw,
		mock:     mock,
		resolver: resolver,
		timeout:  DefaultGatewayTimeout,
	}
}

// Charge looks up the vaulted method and processes the fixed charge. A
// live failure is never recovered here: the caller gets the gateway's own
// message rather than a silently synthesized approval.
func (s *service) Charge(ctx context.Context, paymentMethodID string) (*Result, error) {
	if paymentMethodID == "" {
		return nil, errs.ErrValidation.WithMessage("Payment method ID is required")
	}

	method, err := s.repo.GetByID(ctx, paymentMethodID)
	if err != nil {
		if err == repositories.ErrPaymentMethodNotFound {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}

	log.Printf("charge requested: %s (%s ending in %s, token %s) $%.2f %s",
		method.ID, method.CardBrand, method.Last4, utils.MaskToken(method.VaultToken), Amount, Currency)

	path, err := s.resolver.Resolve(mode.FlowCharge)
	if err != nil {
		return nil, err
	}

	var (
		txn      *models.TransactionResult
		mockUsed bool
	)
	if path == mode.PathMock {
		mockUsed = true
		txn = s.mock.PaymentResponse(Amount, Currency)
		log.Printf("mock payment complete: %s", txn.TransactionID)
	} else {
		txn, err = s.chargeLive(ctx, method.VaultToken)
		if err != nil {
			log.Printf("⚠️ live payment failed: %v", err)
			return nil, errs.ErrPayment.WithMessage("Payment failed: %v", err)
		}
		log.Printf("live payment complete: %s", txn.TransactionID)
	}

	return &Result{
		TransactionResult: *txn,
		PaymentMethod:     method.Display(),
		MockMode:          mockUsed,
	}, nil
}

// ProcessPayment runs a one-shot charge from a client-side single-use
// token with a caller-supplied amount, following the same mode table as
// Charge: mock mode synthesizes an approval, live failures surface to the
// caller.
func (s *service) ProcessPayment(ctx context.Context, paymentToken, billingZip string, amount float64) (*DirectResult, error) {
	if validation.IsBlank(paymentToken) || validation.IsBlank(billingZip) {
		return nil, errs.ErrValidation.WithMessage("Missing required fields")
	}
	if amount <= 0 {
		return nil, errs.ErrValidation.WithMessage("Amount must be a positive number")
	}

	log.Printf("direct payment requested: token %s $%.2f %s", utils.MaskToken(paymentToken), amount, Currency)

	path, err := s.resolver.Resolve(mode.FlowCharge)
	if err != nil {
		return nil, err
	}

	if path == mode.PathMock {
		txn := s.mock.PaymentResponse(amount, Currency)
		log.Printf("mock payment complete: %s", txn.TransactionID)
		return &DirectResult{TransactionResult: *txn, MockMode: true}, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.gateway.ChargeSingleUseToken(callCtx, paymentToken, amount, Currency,
		validation.SanitizePostalCode(billingZip))
	if err != nil {
		log.Printf("⚠️ live payment failed: %v", err)
		return nil, errs.ErrPayment.WithMessage("Payment failed: %v", err)
	}

	txn := resultFromGateway(res, amount)
	log.Printf("live payment complete: %s", txn.TransactionID)
	return &DirectResult{TransactionResult: *txn, MockMode: false}, nil
}

func (s *service) chargeLive(ctx context.Context, vaultToken string) (*models.TransactionResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.gateway.Charge(callCtx, vaultToken, Amount, Currency)
	if err != nil {
		return nil, err
	}
	return resultFromGateway(res, Amount), nil
}

// resultFromGateway shapes a gateway outcome into the transaction result.
// The gateway may omit identifiers; stand-ins are generated only then.
func resultFromGateway(res *gateway.ChargeResult, amount float64) *models.TransactionResult {
	txnID := res.TransactionID
	if txnID == "" {
		txnID = mockgen.TransactionID()
	}
	authCode := res.AuthCode
	if authCode == "" {
		authCode = mockgen.AuthCode()
	}
	reference := res.ReferenceNumber
	if reference == "" {
		reference = mockgen.ReferenceNumber()
	}
	message := res.ResponseMessage
	if message == "" {
		message = "Approved"
	}
	code := res.ResponseCode
	if code == "" {
		code = "00"
	}

	return &models.TransactionResult{
		TransactionID:   txnID,
		Amount:          amount,
		Currency:        Currency,
		Status:          models.TransactionStatusApproved,
		ResponseCode:    code,
		ResponseMessage: message,
		GatewayResponse: models.GatewayResponse{
			AuthCode:        authCode,
			ReferenceNumber: reference,
		},
	}
}
