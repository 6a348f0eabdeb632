package charge

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cardvault/internal/config"
	apperrors "cardvault/internal/errors"
	"cardvault/internal/models"
	"cardvault/internal/repositories"
	"cardvault/internal/services/gateway"
	"cardvault/internal/services/mockgen"
	"cardvault/internal/services/mode"
)

type MockRepo struct {
	mock.Mock
}

type MockGateway struct {
	mock.Mock
}

func savedMethod() *models.PaymentMethod {
	return &models.PaymentMethod{
		ID:         "pm_1",
		VaultToken: "tok_multiuse",
		CardBrand:  "Visa",
		Last4:      "0016",
		Expiry:     "12/28",
		Nickname:   "Visa ending in 0016",
		IsDefault:  true,
	}
}

func TestChargeService_MockMode(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetByID", mock.Anything, "pm_1").Return(savedMethod(), nil)

	gw := new(MockGateway)
	resolver := mode.NewResolver(mode.NewToggle(true), config.GatewayConfig{})

	s := NewService(repo, gw, mockgen.New(), resolver)

	result, err := s.Charge(context.Background(), "pm_1")

	assert.NoError(t, err)
	assert.True(t, result.MockMode)
	assert.Equal(t, models.TransactionStatusApproved, result.Status)
	assert.Equal(t, Amount, result.Amount)
	assert.Equal(t, Currency, result.Currency)
	assert.Equal(t, "00", result.ResponseCode)
	assert.Equal(t, "pm_1", result.PaymentMethod.ID)
	gw.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChargeService_LiveSuccess(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetByID", mock.Anything, "pm_1").Return(savedMethod(), nil)

	gw := new(MockGateway)
	gw.On("Charge", mock.Anything, "tok_multiuse", Amount, Currency).Return(&gateway.ChargeResult{
		TransactionID:   "pi_123",
		ResponseCode:    "00",
		ResponseMessage: "Approved",
		AuthCode:        "A00042",
		ReferenceNumber: "ch_456",
	}, nil)

	resolver := mode.NewResolver(mode.NewToggle(false), config.GatewayConfig{AppID: "app", SecretKey: "sk"})

	s := NewService(repo, gw, mockgen.New(), resolver)

	result, err := s.Charge(context.Background(), "pm_1")

	assert.NoError(t, err)
	assert.False(t, result.MockMode)
	assert.Equal(t, "pi_123", result.TransactionID)
	assert.Equal(t, "A00042", result.GatewayResponse.AuthCode)
	assert.Equal(t, "ch_456", result.GatewayResponse.ReferenceNumber)
	gw.AssertExpectations(t)
}

func TestChargeService_LiveFillsMissingIdentifiers(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetByID", mock.Anything, "pm_1").Return(savedMethod(), nil)

	gw := new(MockGateway)
	gw.On("Charge", mock.Anything, "tok_multiuse", Amount, Currency).
		Return(&gateway.ChargeResult{TransactionID: "pi_123"}, nil)

	resolver := mode.NewResolver(mode.NewToggle(false), config.GatewayConfig{SecretKey: "sk"})

	s := NewService(repo, gw, mockgen.New(), resolver)

	result, err := s.Charge(context.Background(), "pm_1")

	assert.NoError(t, err)
	assert.Equal(t, "pi_123", result.TransactionID)
	assert.Equal(t, "Approved", result.ResponseMessage)
	assert.Equal(t, "00", result.ResponseCode)
	assert.NotEmpty(t, result.GatewayResponse.AuthCode)
	assert.NotEmpty(t, result.GatewayResponse.ReferenceNumber)
}

func TestChargeService_LiveFailureIsNotMasked(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetByID", mock.Anything, "pm_1").Return(savedMethod(), nil)

	gw := new(MockGateway)
	gw.On("Charge", mock.Anything, "tok_multiuse", Amount, Currency).
		Return((*gateway.ChargeResult)(nil), errors.New("card declined"))

	resolver := mode.NewResolver(mode.NewToggle(false), config.GatewayConfig{SecretKey: "sk"})

	s := NewService(repo, gw, mockgen.New(), resolver)

	_, err := s.Charge(context.Background(), "pm_1")

	var domainErr *apperrors.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PAYMENT_ERROR", domainErr.Code)
	assert.Contains(t, domainErr.Message, "card declined")
}

func TestChargeService_ProcessPayment(t *testing.T) {
	mockResolver := func() *mode.Resolver {
		return mode.NewResolver(mode.NewToggle(true), config.GatewayConfig{})
	}
	liveResolver := func() *mode.Resolver {
		return mode.NewResolver(mode.NewToggle(false), config.GatewayConfig{SecretKey: "sk"})
	}

	t.Run("mock mode synthesizes an approval", func(t *testing.T) {
		gw := new(MockGateway)
		s := NewService(new(MockRepo), gw, mockgen.New(), mockResolver())

		result, err := s.ProcessPayment(context.Background(), "supt_abc", "30004", 42.50)

		assert.NoError(t, err)
		assert.True(t, result.MockMode)
		assert.Equal(t, models.TransactionStatusApproved, result.Status)
		assert.Equal(t, 42.50, result.Amount)
		assert.Equal(t, Currency, result.Currency)
		gw.AssertNotCalled(t, "ChargeSingleUseToken",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("live charge sanitizes the billing zip", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("ChargeSingleUseToken", mock.Anything, "supt_abc", 42.50, Currency, "30004").
			Return(&gateway.ChargeResult{TransactionID: "pi_789"}, nil)

		s := NewService(new(MockRepo), gw, mockgen.New(), liveResolver())

		result, err := s.ProcessPayment(context.Background(), "supt_abc", "300 04!@#", 42.50)

		assert.NoError(t, err)
		assert.False(t, result.MockMode)
		assert.Equal(t, "pi_789", result.TransactionID)
		assert.Equal(t, 42.50, result.Amount)
		assert.NotEmpty(t, result.GatewayResponse.AuthCode)
		gw.AssertExpectations(t)
	})

	t.Run("live failure is not masked", func(t *testing.T) {
		gw := new(MockGateway)
		gw.On("ChargeSingleUseToken", mock.Anything, "supt_abc", 10.00, Currency, "30004").
			Return((*gateway.ChargeResult)(nil), errors.New("card declined"))

		s := NewService(new(MockRepo), gw, mockgen.New(), liveResolver())

		_, err := s.ProcessPayment(context.Background(), "supt_abc", "30004", 10.00)

		var domainErr *apperrors.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PAYMENT_ERROR", domainErr.Code)
		assert.Contains(t, domainErr.Message, "card declined")
	})

	t.Run("gateway unconfigured fails fast", func(t *testing.T) {
		gw := new(MockGateway)
		s := NewService(new(MockRepo), gw, mockgen.New(),
			mode.NewResolver(mode.NewToggle(false), config.GatewayConfig{}))

		_, err := s.ProcessPayment(context.Background(), "supt_abc", "30004", 10.00)
		assert.ErrorIs(t, err, apperrors.ErrGatewayNotConfigured)
		gw.AssertNotCalled(t, "ChargeSingleUseToken",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("input validation", func(t *testing.T) {
		s := NewService(new(MockRepo), nil, mockgen.New(), mockResolver())

		for _, tc := range []struct {
			name   string
			token  string
			zip    string
			amount float64
		}{
			{"blank token", "", "30004", 10.00},
			{"blank zip", "supt_abc", "  ", 10.00},
			{"zero amount", "supt_abc", "30004", 0},
			{"negative amount", "supt_abc", "30004", -5},
		} {
			t.Run(tc.name, func(t *testing.T) {
				_, err := s.ProcessPayment(context.Background(), tc.token, tc.zip, tc.amount)

				var domainErr *apperrors.DomainError
				assert.ErrorAs(t, err, &domainErr)
				assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
			})
		}
	})
}

func TestChargeService_Errors(t *testing.T) {
	t.Run("blank id", func(t *testing.T) {
		s := NewService(new(MockRepo), nil, mockgen.New(), mode.NewResolver(mode.NewToggle(true), config.GatewayConfig{}))

		_, err := s.Charge(context.Background(), "")

		var domainErr *apperrors.DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("GetByID", mock.Anything, "pm_missing").
			Return((*models.PaymentMethod)(nil), repositories.ErrPaymentMethodNotFound)

		s := NewService(repo, nil, mockgen.New(), mode.NewResolver(mode.NewToggle(true), config.GatewayConfig{}))

		_, err := s.Charge(context.Background(), "pm_missing")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("gateway unconfigured fails fast", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("GetByID", mock.Anything, "pm_1").Return(savedMethod(), nil)

		gw := new(MockGateway)
		s := NewService(repo, gw, mockgen.New(), mode.NewResolver(mode.NewToggle(false), config.GatewayConfig{}))

		_, err := s.Charge(context.Background(), "pm_1")
		assert.ErrorIs(t, err, apperrors.ErrGatewayNotConfigured)
		gw.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

// Mock implementations

func (m *MockRepo) Create(ctx context.Context, method *models.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockRepo) GetByID(ctx context.Context, id string) (*models.PaymentMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentMethod), args.Error(1)
}

func (m *MockRepo) Update(ctx context.Context, id string, update models.PaymentMethodUpdate) (*models.PaymentMethod, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentMethod), args.Error(1)
}

func (m *MockRepo) List(ctx context.Context) ([]models.PaymentMethod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PaymentMethod), args.Error(1)
}

func (m *MockRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepo) SetDefault(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGateway) VerifyToken(ctx context.Context, vaultToken string) (*gateway.CardSummary, error) {
	args := m.Called(ctx, vaultToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.CardSummary), args.Error(1)
}

func (m *MockGateway) MintMultiUseToken(ctx context.Context, paymentToken string, customer models.CustomerData, card models.CardDetails) (*gateway.MintResult, error) {
	args := m.Called(ctx, paymentToken, customer, card)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.MintResult), args.Error(1)
}

func (m *MockGateway) Charge(ctx context.Context, vaultToken string, amount float64, currency string) (*gateway.ChargeResult, error) {
	args := m.Called(ctx, vaultToken, amount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.ChargeResult), args.Error(1)
}

func (m *MockGateway) ChargeSingleUseToken(ctx context.Context, paymentToken string, amount float64, currency, postalCode string) (*gateway.ChargeResult, error) {
	args := m.Called(ctx, paymentToken, amount, currency, postalCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.ChargeResult), args.Error(1)
}
