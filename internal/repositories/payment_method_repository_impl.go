package repositories

import (
	"context"
	"fmt"
	"time"

	"cardvault/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// defaultFlagLockKey identifies the advisory lock serializing every write
// that may change which record is the default. Plain transactions are not
// enough: at READ COMMITTED two concurrent creates can both count zero
// rows (or both clear the flag before either insert is visible) and
// commit two defaults.
const defaultFlagLockKey int64 = 0x70617967617465

type paymentMethodRepository struct {
	db *gorm.DB
}

// acquireDefaultLock takes the transaction-scoped advisory lock. Advisory
// locks are Postgres-specific; other dialects serialize their writers on
// their own.
func acquireDefaultLock(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", defaultFlagLockKey).Error; err != nil {
		return fmt.Errorf("failed to lock payment methods: %w", err)
	}
	return nil
}

func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepository{
		db: db,
	}
}

// Create inserts a new payment method, assigning the id and applying the
// default-flag rules in one transaction: an explicit default demotes every
// other record, and the first record in an empty store is forced default.
func (r *paymentMethodRepository) Create(ctx context.Context, method *models.PaymentMethod) error {
	if method.ID == "" {
		method.ID = "pm_" + uuid.NewString()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := acquireDefaultLock(tx); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.PaymentMethod{}).Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to count payment methods: %w", err)
		}

		isDefault, clearOthers := ResolveDefaultFlag(method.IsDefault, existing)
		method.IsDefault = isDefault

		if clearOthers {
			if err := tx.Model(&models.PaymentMethod{}).
				Where("is_default = ?", true).
				Updates(map[string]interface{}{"is_default": false, "updated_at": time.Now()}).Error; err != nil {
				return fmt.Errorf("failed to clear default flags: %w", err)
			}
		}

		if err := tx.Create(method).Error; err != nil {
			return fmt.Errorf("failed to create payment method: %w", err)
		}
		return nil
	})
}

func (r *paymentMethodRepository) GetByID(ctx context.Context, id string) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&method).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}
	return &method, nil
}

// Update merges nickname and default-flag changes into an existing record.
// Setting the default flag demotes every other record in the same
// transaction.
func (r *paymentMethodRepository) Update(ctx context.Context, id string, update models.PaymentMethodUpdate) (*models.PaymentMethod, error) {
	var method models.PaymentMethod

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := acquireDefaultLock(tx); err != nil {
			return err
		}

		if err := tx.Where("id = ?", id).First(&method).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrPaymentMethodNotFound
			}
			return fmt.Errorf("failed to get payment method: %w", err)
		}

		if update.Nickname != nil {
			method.Nickname = *update.Nickname
		}
		if update.IsDefault != nil {
			if *update.IsDefault {
				if err := tx.Model(&models.PaymentMethod{}).
					Where("id <> ? AND is_default = ?", id, true).
					Updates(map[string]interface{}{"is_default": false, "updated_at": time.Now()}).Error; err != nil {
					return fmt.Errorf("failed to clear default flags: %w", err)
				}
			}
			method.IsDefault = *update.IsDefault
		}

		if err := tx.Save(&method).Error; err != nil {
			return fmt.Errorf("failed to update payment method: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &method, nil
}

// List returns all payment methods in insertion order.
func (r *paymentMethodRepository) List(ctx context.Context) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&methods).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}

func (r *paymentMethodRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PaymentMethod{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count payment methods: %w", err)
	}
	return count, nil
}

// SetDefault promotes one record and demotes every other in a single
// transaction. The store is left unchanged if the id is unknown.
func (r *paymentMethodRepository) SetDefault(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := acquireDefaultLock(tx); err != nil {
			return err
		}

		result := tx.Model(&models.PaymentMethod{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{"is_default": true, "updated_at": time.Now()})
		if result.Error != nil {
			return fmt.Errorf("failed to set default: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrPaymentMethodNotFound
		}

		if err := tx.Model(&models.PaymentMethod{}).
			Where("id <> ? AND is_default = ?", id, true).
			Updates(map[string]interface{}{"is_default": false, "updated_at": time.Now()}).Error; err != nil {
			return fmt.Errorf("failed to clear default flags: %w", err)
		}
		return nil
	})
}
