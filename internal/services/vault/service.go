package vault

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

// DefaultGatewayTimeout bounds a single live gateway call.
const DefaultGatewayTimeout = 15 * time.Second

type service struct {
	repo     repositories.PaymentMethodRepository
	cache    Cache
	gateway  gateway.Client
	mock     *mockgen.Generator
	resolver *mode.Resolver
	timeout  time.Duration
}

// NewService creates the vaulting flow service.
func NewService(
	repo repositories.PaymentMethodRepository,
	cache Cache,
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
		cache:    cache,
		gateway:  gw,
		mock:     mock,
		resolver: resolver,
		timeout:  DefaultGatewayTimeout,
	}
}

func (s *service) ListMethods(ctx context.Context) ([]models.PaymentMethodDisplay, error) {
	if s.cache != nil {
		if cached, found, err := s.cache.GetPaymentMethods(ctx); err == nil && found {
			return cached, nil
		}
	}

	methods, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}

	formatted := make([]models.PaymentMethodDisplay, 0, len(methods))
	for i := range methods {
		formatted = append(formatted, methods[i].Display())
	}

	if s.cache != nil {
		if err := s.cache.CachePaymentMethods(ctx, formatted); err != nil {
			log.Printf("⚠️ failed to cache payment methods: %v", err)
		}
	}
	return formatted, nil
}

// CreateMethod vaults a card from either an existing multi-use token or a
// single-use token plus customer data. Card details are resolved via the
// mode table first, then persisted as a new payment method.
func (s *service) CreateMethod(ctx context.Context, req models.PaymentMethodRequest) (*models.PaymentMethodDisplay, error) {
	if req.VaultToken == "" && req.PaymentToken == "" {
		return nil, errs.ErrValidation.WithMessage("Missing required payment token or vault token")
	}

	var (
		details  *gateway.CardSummary
		mockUsed bool
		err      error
	)
	if req.PaymentToken != "" {
		details, mockUsed, err = s.resolveFromPaymentToken(ctx, req)
	} else {
		details, mockUsed, err = s.resolveFromVaultToken(ctx, req.VaultToken)
	}
	if err != nil {
		return nil, err
	}

	if validation.IsBlank(details.Brand) || validation.IsBlank(details.Last4) {
		return nil, errs.ErrValidation.WithMessage("Invalid token or unable to retrieve card details")
	}

	method := &models.PaymentMethod{
		VaultToken: details.Token,
		CardBrand:  details.Brand,
		Last4:      details.Last4,
		Expiry:     details.Expiry(),
		Nickname:   nicknameOrDefault(req.Nickname, details),
		MockMode:   mockUsed,
	}
	if req.IsDefault != nil {
		method.IsDefault = *req.IsDefault
	}

	if err := s.repo.Create(ctx, method); err != nil {
		return nil, fmt.Errorf("failed to save payment method: %w", err)
	}
	s.invalidateCache(ctx)

	log.Printf("payment method saved: %s (%s ending in %s, token %s, mock=%t)",
		method.ID, method.CardBrand, method.Last4, utils.MaskToken(method.VaultToken), mockUsed)

	display := method.Display()
	return &display, nil
}

// EditMethod changes the nickname and default flag of an existing record.
// Card attributes and the vault token are immutable, and no mode
// resolution or gateway contact happens here.
func (s *service) EditMethod(ctx context.Context, req models.PaymentMethodRequest) (*models.PaymentMethodDisplay, error) {
	update := models.PaymentMethodUpdate{
		Nickname:  req.Nickname,
		IsDefault: req.IsDefault,
	}

	if _, err := s.repo.Update(ctx, req.ID, update); err != nil {
		if err == repositories.ErrPaymentMethodNotFound {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update payment method: %w", err)
	}

	if req.IsDefault != nil && *req.IsDefault {
		if err := s.repo.SetDefault(ctx, req.ID); err != nil {
			return nil, fmt.Errorf("failed to set default payment method: %w", err)
		}
	}

	method, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload payment method: %w", err)
	}
	s.invalidateCache(ctx)

	log.Printf("payment method updated: %s (nickname=%q default=%t)",
		method.ID, method.Nickname, method.IsDefault)

	display := method.Display()
	// Edits never consult the gateway, so the response reports no mock use.
	display.MockMode = false
	return &display, nil
}

// resolveFromVaultToken describes the card behind an existing multi-use
// token, echoing the token back as the final vault token.
func (s *service) resolveFromVaultToken(ctx context.Context, vaultToken string) (*gateway.CardSummary, bool, error) {
	path, err := s.resolver.Resolve(mode.FlowVaulting)
	if err != nil {
		return nil, false, err
	}

	if path == mode.PathMock {
		log.Printf("mock mode - synthesizing card details for token %s", utils.MaskToken(vaultToken))
		return s.mock.CardDetails(vaultToken), true, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	details, err := s.gateway.VerifyToken(callCtx, vaultToken)
	if err != nil {
		log.Printf("⚠️ live token lookup failed, falling back to mock: %v", err)
		return s.mock.CardDetails(vaultToken), true, nil
	}
	return details, false, nil
}

// resolveFromPaymentToken promotes a single-use token to a multi-use vault
// token. In mock mode (or on live failure) the single-use token itself is
// reused as the vault token.
func (s *service) resolveFromPaymentToken(ctx context.Context, req models.PaymentMethodRequest) (*gateway.CardSummary, bool, error) {
	if err := validation.TokenizationInput(req.CustomerData, req.CardDetails); err != nil {
		return nil, false, errs.ErrValidation.WithMessage("Customer data and card details required for multi-use token creation")
	}

	path, err := s.resolver.Resolve(mode.FlowVaulting)
	if err != nil {
		return nil, false, err
	}

	if path == mode.PathMock {
		log.Printf("mock mode - using payment token %s as final vault token", utils.MaskToken(req.PaymentToken))
		return s.mock.CardDetails(req.PaymentToken), true, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	mint, err := s.gateway.MintMultiUseToken(callCtx, req.PaymentToken, *req.CustomerData, *req.CardDetails)
	if err != nil {
		log.Printf("⚠️ multi-use token creation failed, falling back to mock: %v", err)
		return s.mock.CardDetails(req.PaymentToken), true, nil
	}

	return &gateway.CardSummary{
		Brand:       mint.Brand,
		Last4:       mint.Last4,
		ExpiryMonth: mint.ExpiryMonth,
		ExpiryYear:  mint.ExpiryYear,
		Token:       mint.MultiUseToken,
	}, false, nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePaymentMethods(ctx); err != nil {
		log.Printf("⚠️ failed to invalidate payment method cache: %v", err)
	}
}

func nicknameOrDefault(nickname *string, details *gateway.CardSummary) string {
	if nickname != nil && *nickname != "" {
		return *nickname
	}
	return details.Brand + " ending in " + details.Last4
}
