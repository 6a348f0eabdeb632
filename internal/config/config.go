package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetBoolEnv returns a bool environment variable or a default value.
func GetBoolEnv(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// GatewayConfig holds the card-network gateway credentials.
type GatewayConfig struct {
	AppID     string
	SecretKey string
}

// LoadGatewayConfig reads gateway credentials from the environment.
func LoadGatewayConfig() GatewayConfig {
	return GatewayConfig{
		AppID:     GetEnv("GATEWAY_APP_ID", ""),
		SecretKey: GetEnv("GATEWAY_SECRET_KEY", ""),
	}
}

// Configured reports whether live gateway credentials are present.
// A blank secret key means live mode cannot be attempted.
func (g GatewayConfig) Configured() bool {
	return strings.TrimSpace(g.SecretKey) != ""
}
