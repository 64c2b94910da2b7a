package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	Port string
	Mode string

	// Deployment environment: local / production
	Env string

	// Database configuration
	DatabaseURL string

	// Redis configuration (optional, used as a read cache for the
	// client environment registry)
	RedisURL string

	// Admin API configuration
	AdminAPIKey string

	// OneStore configuration
	SandboxDomain    string
	CommercialDomain string
	ClientSecrets    map[string]string
	ConsumeTimeout   int // seconds

	ServiceName string
}

var AppConfig *Config

func InitConfig() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Ignore error if .env file doesn't exist
	}

	AppConfig = &Config{
		Port:             getEnv("PORT", "8080"),
		Mode:             getEnv("GIN_MODE", "debug"),
		Env:              getEnv("ENV", "local"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		AdminAPIKey:      getEnv("ADMIN_API_KEY", ""),
		SandboxDomain:    getEnv("ONESTORE_SANDBOX_DOMAIN", "qa-sbpp.onestore.co.kr"),
		CommercialDomain: getEnv("ONESTORE_COMMERCIAL_DOMAIN", "qa-pp.onestore.co.kr"),
		ClientSecrets:    getEnvMap("ONESTORE_CLIENT_SECRETS"),
		ConsumeTimeout:   getEnvInt("CONSUME_TIMEOUT_SECONDS", 10),
		ServiceName:      getEnv("SERVICE_NAME", "webshop-partner-server"),
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvMap parses "key:value,key:value" pairs, e.g. the static
// client id -> client secret table.
func getEnvMap(key string) map[string]string {
	result := make(map[string]string)
	for _, pair := range strings.Split(os.Getenv(key), ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			continue
		}
		result[parts[0]] = parts[1]
	}
	return result
}
