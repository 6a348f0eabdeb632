package gateway

import (
	"context"

	"cardvault/internal/models"
)

// CardSummary describes the card behind a vault token as reported by the
// gateway (or synthesized in mock mode).
type CardSummary struct {
	Brand       string
	Last4       string
	ExpiryMonth string
	ExpiryYear  string
	Token       string
}

// Expiry returns the MM/YY display string stored on the payment method.
func (c CardSummary) Expiry() string {
	return c.ExpiryMonth + "/" + c.ExpiryYear
}

// MintResult is the outcome of promoting a single-use token to a
// multi-use vault token.
type MintResult struct {
	MultiUseToken string
	Brand         string
	Last4         string
	ExpiryMonth   string
	ExpiryYear    string
}

// ChargeResult is the gateway-level outcome of a successful charge.
// Fields the gateway omits are left empty; callers substitute generated
// values.
type ChargeResult struct {
	TransactionID   string
	AuthCode        string
	ReferenceNumber string
	ResponseCode    string
	ResponseMessage string
}

// Client is the external card-network gateway contract. All calls block
// on the network; callers impose timeouts through the context.
type Client interface {
	// VerifyToken confirms a multi-use token and describes its card.
	VerifyToken(ctx context.Context, vaultToken string) (*CardSummary, error)

	// MintMultiUseToken promotes a single-use token to a reusable one via
	// a minimal-amount authorization carrying the billing address and
	// cardholder name.
	MintMultiUseToken(ctx context.Context, paymentToken string, customer models.CustomerData, card models.CardDetails) (*MintResult, error)

	// Charge debits the given amount against a vault token.
	Charge(ctx context.Context, vaultToken string, amount float64, currency string) (*ChargeResult, error)

	// ChargeSingleUseToken debits the given amount against a client-side
	// single-use token, attaching the billing postal code for address
	// verification. The token is consumed; nothing is vaulted.
	ChargeSingleUseToken(ctx context.Context, paymentToken string, amount float64, currency, postalCode string) (*ChargeResult, error)
}
