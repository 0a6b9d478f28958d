// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultOracleTimeout = 30 * time.Second

type Config struct {
	AppEnv        string
	Port          string
	DatabaseURL   string
	GeminiAPIKey  string
	GeminiModel   string
	OracleBaseURL string
	OracleTimeout time.Duration
	LogLevel      string
	LogFormat     string
}

func Load() (*Config, error) {
	// Optional .env file, matching local development setups.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OracleBaseURL: getEnv("ORACLE_BASE_URL", "https://generativelanguage.googleapis.com"),
		OracleTimeout: defaultOracleTimeout,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	if raw := os.Getenv("ORACLE_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("ORACLE_TIMEOUT must be a valid duration: %w", err)
		}
		if timeout <= 0 {
			return nil, fmt.Errorf("ORACLE_TIMEOUT must be positive")
		}
		cfg.OracleTimeout = timeout
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
