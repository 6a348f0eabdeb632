package gateway

import "strings"

// NormalizeBrand maps a gateway or client card-type string to the display
// brand stored on payment methods.
func NormalizeBrand(cardType string) string {
	switch strings.ToLower(cardType) {
	case "visa":
		return "Visa"
	case "mastercard", "mc":
		return "Mastercard"
	case "amex", "americanexpress", "american express":
		return "American Express"
	case "discover":
		return "Discover"
	case "jcb":
		return "JCB"
	default:
		return "Unknown"
	}
}
