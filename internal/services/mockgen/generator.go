// Package mockgen synthesizes transaction and card-lookup results for mock
// mode. Nothing here touches the network; the brand heuristics are a
// convenience for demo tokens and stay isolated from the live path.
package mockgen

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"cardvault/internal/models"
	"cardvault/internal/services/gateway"
)

// Generator produces deterministic-looking mock gateway responses.
type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// CardDetails synthesizes a card summary from a token string. Tokens
// containing a recognizable brand substring get that brand's fixture
// card; everything else falls back to the default Visa fixture.
func (g *Generator) CardDetails(token string) *gateway.CardSummary {
	summary := &gateway.CardSummary{
		Brand:       "Visa",
		Last4:       "0016",
		ExpiryMonth: "12",
		ExpiryYear:  "28",
		Token:       token,
	}

	lower := strings.ToLower(token)
	switch {
	case strings.Contains(lower, "visa"):
		// default fixture already matches
	case strings.Contains(lower, "mastercard"), strings.Contains(lower, "mc"):
		summary.Brand = "Mastercard"
		summary.Last4 = "5780"
	case strings.Contains(lower, "amex"):
		summary.Brand = "American Express"
		summary.Last4 = "1018"
	case strings.Contains(lower, "discover"):
		summary.Brand = "Discover"
		summary.Last4 = "6527"
	}

	return summary
}

// PaymentResponse synthesizes an approved transaction.
func (g *Generator) PaymentResponse(amount float64, currency string) *models.TransactionResult {
	return &models.TransactionResult{
		TransactionID:   TransactionID(),
		Amount:          amount,
		Currency:        currency,
		Status:          models.TransactionStatusApproved,
		ResponseCode:    "00",
		ResponseMessage: "Approved",
		GatewayResponse: models.GatewayResponse{
			AuthCode:        AuthCode(),
			ReferenceNumber: ReferenceNumber(),
		},
	}
}

// VaultToken mints a mock multi-use token.
func (g *Generator) VaultToken() string {
	return "token_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

var declineReasons = map[string]string{
	"insufficient_funds": "Insufficient Funds",
	"generic":            "Card Declined",
	"pickup_card":        "Pick Up Card",
	"lost_card":          "Lost Card",
	"stolen_card":        "Stolen Card",
	"expired_card":       "Expired Card",
	"incorrect_cvc":      "Incorrect CVC",
	"incorrect_zip":      "Incorrect ZIP",
	"card_declined":      "Card Declined",
	"invalid_account":    "Invalid Account",
	"card_not_activated": "Card Not Activated",
	"processing_error":   "Processing Error",
	"system_error":       "System Error",
}

// DeclineResponse returns the error code and message for a simulated
// decline reason.
func (g *Generator) DeclineResponse(reason string) (code, message string) {
	msg, ok := declineReasons[reason]
	if !ok {
		msg = "Card Declined"
	}
	return strings.ToUpper(reason), msg
}

// TransactionID generates a fresh mock transaction id.
func TransactionID() string {
	return "txn_" + uuid.NewString()
}

// AuthCode generates a randomized-looking authorization code.
func AuthCode() string {
	return fmt.Sprintf("A%05d", rand.Intn(100000))
}

// ReferenceNumber generates a randomized-looking gateway reference.
func ReferenceNumber() string {
	return fmt.Sprintf("REF%010d", rand.Int63n(1000000000))
}
