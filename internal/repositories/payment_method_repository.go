package repositories

import (
	"context"
	"errors"

	"cardvault/internal/models"
)

var (
	ErrPaymentMethodNotFound = errors.New("payment method not found")
)

// PaymentMethodRepository is the durable store of vaulted cards. Every
// mutating call runs in a database transaction serialized by an advisory
// lock so the single-default invariant holds under concurrent writers: at
// most one record carries is_default = true, and the first record ever
// inserted is the default. A partial unique index backs the rule in the
// database itself.
type PaymentMethodRepository interface {
	// Core operations
	Create(ctx context.Context, method *models.PaymentMethod) error
	GetByID(ctx context.Context, id string) (*models.PaymentMethod, error)
	Update(ctx context.Context, id string, update models.PaymentMethodUpdate) (*models.PaymentMethod, error)

	// Query operations
	List(ctx context.Context) ([]models.PaymentMethod, error)
	Count(ctx context.Context) (int64, error)

	// Default-flag operations
	SetDefault(ctx context.Context, id string) error
}
