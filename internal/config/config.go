package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	ChatAPIURL  string `validate:"required,url"`
	StorePath   string `validate:"required"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	Environment string `validate:"oneof=dev staging prod test"`
	HTTPTimeout time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		ChatAPIURL:  getEnv("CHAT_API_URL", "http://localhost:8001"),
		StorePath:   getEnv("STORE_PATH", "hanachat.db"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
	}

	timeoutStr := getEnv("HTTP_TIMEOUT_SECONDS", "30")
	timeoutSec, err := strconv.Atoi(timeoutStr)
	if err != nil || timeoutSec <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT_SECONDS value: %q", timeoutStr)
	}
	cfg.HTTPTimeout = time.Duration(timeoutSec) * time.Second

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

var validate = validator.New()

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
