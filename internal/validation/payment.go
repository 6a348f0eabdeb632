package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"cardvault/internal/models"
)

var validate = validator.New()

var postalCodePattern = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// SanitizePostalCode strips every character outside [A-Za-z0-9-] and caps
// the result at 10 characters, matching what the gateway accepts.
func SanitizePostalCode(postalCode string) string {
	sanitized := postalCodePattern.ReplaceAllString(postalCode, "")
	if len(sanitized) > 10 {
		return sanitized[:10]
	}
	return sanitized
}

// IsBlank reports whether a string is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// TokenizationInput validates the customer and card details accompanying a
// single-use token. Both objects are required together; their fields are
// only checked for well-formedness (email format), not presence.
func TokenizationInput(customer *models.CustomerData, card *models.CardDetails) error {
	if customer == nil || card == nil {
		return errMissingTokenizationData
	}
	return validate.Struct(customer)
}
