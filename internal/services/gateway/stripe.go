package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"

	"cardvault/internal/models"
	"cardvault/internal/utils"
	"cardvault/internal/validation"
)

// mintVerifyAmountCents is the minimal authorization confirming a freshly
// minted multi-use token.
const mintVerifyAmountCents = 1

var (
	ErrNoCardOnToken  = errors.New("token has no card attached")
	ErrChargeDeclined = errors.New("charge was declined")
)

// StripeClient is the live Client implementation backed by the Stripe API.
type StripeClient struct {
	sc *client.API
}

// NewStripeClient builds a live gateway client from the secret key.
func NewStripeClient(secretKey string) *StripeClient {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeClient{sc: sc}
}

func (s *StripeClient) VerifyToken(ctx context.Context, vaultToken string) (*CardSummary, error) {
	params := &stripe.PaymentMethodParams{}
	params.Context = ctx

	pm, err := s.sc.PaymentMethods.Get(vaultToken, params)
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}
	if pm.Card == nil {
		return nil, ErrNoCardOnToken
	}

	summary := &CardSummary{
		Brand:       NormalizeBrand(string(pm.Card.Brand)),
		Last4:       pm.Card.Last4,
		ExpiryMonth: fmt.Sprintf("%02d", pm.Card.ExpMonth),
		ExpiryYear:  fmt.Sprintf("%02d", pm.Card.ExpYear%100),
		Token:       vaultToken,
	}
	log.Printf("token lookup successful: %s ending in %s", summary.Brand, summary.Last4)
	return summary, nil
}

func (s *StripeClient) MintMultiUseToken(ctx context.Context, paymentToken string, customer models.CustomerData, card models.CardDetails) (*MintResult, error) {
	pmParams := &stripe.PaymentMethodParams{
		Type: stripe.String("card"),
		Card: &stripe.PaymentMethodCardParams{
			Token: stripe.String(paymentToken),
		},
		BillingDetails: &stripe.BillingDetailsParams{
			Name:  stripe.String(customer.FullName()),
			Email: stripe.String(customer.Email),
			Phone: stripe.String(customer.Phone),
			Address: &stripe.AddressParams{
				Line1:      stripe.String(customer.StreetAddress),
				City:       stripe.String(customer.City),
				State:      stripe.String(customer.State),
				PostalCode: stripe.String(validation.SanitizePostalCode(customer.BillingZip)),
				Country:    stripe.String(customer.Country),
			},
		},
	}
	pmParams.Context = ctx

	pm, err := s.sc.PaymentMethods.New(pmParams)
	if err != nil {
		return nil, fmt.Errorf("multi-use token creation failed: %w", err)
	}

	// Minimal authorization to confirm the minted token is chargeable.
	piParams := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(mintVerifyAmountCents),
		Currency:      stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethod: stripe.String(pm.ID),
		Confirm:       stripe.Bool(true),
	}
	piParams.Context = ctx

	if _, err := s.sc.PaymentIntents.New(piParams); err != nil {
		return nil, fmt.Errorf("multi-use token verification failed: %w", err)
	}

	log.Printf("multi-use token created: %s (card %s ending in %s)",
		utils.MaskToken(pm.ID), NormalizeBrand(card.CardType), card.CardLast4)

	// Brand and last4 echo the client-observed card details, as the
	// freshly minted token carries no display data of its own.
	return &MintResult{
		MultiUseToken: pm.ID,
		Brand:         NormalizeBrand(card.CardType),
		Last4:         card.CardLast4,
		ExpiryMonth:   card.ExpiryMonth,
		ExpiryYear:    card.ExpiryYear,
	}, nil
}

func (s *StripeClient) Charge(ctx context.Context, vaultToken string, amount float64, currency string) (*ChargeResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(int64(math.Round(amount * 100))),
		Currency:      stripe.String(currency),
		PaymentMethod: stripe.String(vaultToken),
		Confirm:       stripe.Bool(true),
		OffSession:    stripe.Bool(true),
	}
	params.Context = ctx

	return s.confirmIntent(params)
}

func (s *StripeClient) ChargeSingleUseToken(ctx context.Context, paymentToken string, amount float64, currency, postalCode string) (*ChargeResult, error) {
	pmParams := &stripe.PaymentMethodParams{
		Type: stripe.String("card"),
		Card: &stripe.PaymentMethodCardParams{
			Token: stripe.String(paymentToken),
		},
		BillingDetails: &stripe.BillingDetailsParams{
			Address: &stripe.AddressParams{
				PostalCode: stripe.String(postalCode),
			},
		},
	}
	pmParams.Context = ctx

	pm, err := s.sc.PaymentMethods.New(pmParams)
	if err != nil {
		return nil, fmt.Errorf("payment processing failed: %w", err)
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(int64(math.Round(amount * 100))),
		Currency:      stripe.String(currency),
		PaymentMethod: stripe.String(pm.ID),
		Confirm:       stripe.Bool(true),
	}
	params.Context = ctx

	return s.confirmIntent(params)
}

func (s *StripeClient) confirmIntent(params *stripe.PaymentIntentParams) (*ChargeResult, error) {
	pi, err := s.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("payment processing failed: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("%w: status %s", ErrChargeDeclined, pi.Status)
	}

	result := &ChargeResult{
		TransactionID:   pi.ID,
		ResponseCode:    "00",
		ResponseMessage: "Approved",
	}
	if pi.Charges != nil && len(pi.Charges.Data) > 0 {
		result.ReferenceNumber = pi.Charges.Data[0].ID
	}

	log.Printf("payment charged successfully: %s", result.TransactionID)
	return result, nil
}
