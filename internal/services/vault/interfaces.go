package vault

import (
	"context"

	"cardvault/internal/models"
)

// Service orchestrates payment-method creation, editing and listing.
type Service interface {
	ListMethods(ctx context.Context) ([]models.PaymentMethodDisplay, error)
	CreateMethod(ctx context.Context, req models.PaymentMethodRequest) (*models.PaymentMethodDisplay, error)
	EditMethod(ctx context.Context, req models.PaymentMethodRequest) (*models.PaymentMethodDisplay, error)
}

// Cache is the slice of the cache service the vault flow needs.
type Cache interface {
	GetPaymentMethods(ctx context.Context) ([]models.PaymentMethodDisplay, bool, error)
	CachePaymentMethods(ctx context.Context, methods []models.PaymentMethodDisplay) error
	InvalidatePaymentMethods(ctx context.Context) error
}
