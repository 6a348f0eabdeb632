package models

import "time"

// PaymentMethod represents a vaulted card stored as a reusable token.
// Card attributes (brand, last4, expiry) and the vault token are fixed at
// creation; only the nickname and default flag may change afterwards.
type PaymentMethod struct {
	ID         string `gorm:"primarykey" json:"id"`
	VaultToken string `gorm:"not null" json:"-"`
	CardBrand  string `gorm:"not null" json:"cardBrand"`
	Last4      string `gorm:"not null" json:"last4"`
	Expiry     string `gorm:"not null" json:"expiry"`
	Nickname   string `json:"nickname"`
	IsDefault  bool   `gorm:"default:false;index" json:"isDefault"`
	MockMode   bool   `gorm:"default:false" json:"mockMode"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PaymentMethodDisplay is the projection returned to clients. The vault
// token never leaves the service.
type PaymentMethodDisplay struct {
	ID        string `json:"id"`
	Brand     string `json:"brand"`
	Last4     string `json:"last4"`
	Expiry    string `json:"expiry"`
	Nickname  string `json:"nickname"`
	IsDefault bool   `json:"isDefault"`
	MockMode  bool   `json:"mockMode"`
}

// Display projects the stored record to its client-facing shape.
func (pm *PaymentMethod) Display() PaymentMethodDisplay {
	return PaymentMethodDisplay{
		ID:        pm.ID,
		Brand:     pm.CardBrand,
		Last4:     pm.Last4,
		Expiry:    pm.Expiry,
		Nickname:  pm.Nickname,
		IsDefault: pm.IsDefault,
		MockMode:  pm.MockMode,
	}
}

// PaymentMethodUpdate carries the only fields editable after creation.
// Nil pointers mean "leave unchanged".
type PaymentMethodUpdate struct {
	Nickname  *string
	IsDefault *bool
}
