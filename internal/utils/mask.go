package utils

// MaskToken shortens a payment token to a loggable prefix. Full tokens
// must never appear in logs.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return token[:1] + "..."
	}
	return token[:8] + "..."
}
