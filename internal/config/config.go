// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, reply delivery, and optional observability features.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// LINE channel credentials
	LineChannelToken  string
	LineChannelSecret string

	// Server
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Reply delivery
	ReplyEndpoint string  // Base URL of the reply API (override for tests/mocks)
	GlobalRateRPS float64 // Token bucket rate for the reply endpoint

	// Webhook
	MaxEventsPerWebhook int
	MinReplyTokenLength int

	// Sentry (optional)
	SentryToken       string
	SentryHost        string
	SentryEnvironment string

	// Better Stack logging (optional)
	BetterStackToken    string
	BetterStackEndpoint string
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Ignore error if .env does not exist
	_ = godotenv.Load()

	cfg := &Config{
		LineChannelToken:  getEnv(EnvLineChannelAccessToken, ""),
		LineChannelSecret: getEnv(EnvLineChannelSecret, ""),

		Port:            getEnv(EnvPort, "10000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, 10*time.Second),

		ReplyEndpoint: getEnv(EnvReplyEndpoint, "https://api.line.me"),
		GlobalRateRPS: getEnvFloat(EnvGlobalRateRPS, DefaultGlobalRateRPS),

		MaxEventsPerWebhook: getEnvInt(EnvMaxEventsPerWebhook, MaxEventsPerWebhook),
		MinReplyTokenLength: getEnvInt(EnvMinReplyTokenLength, DefaultMinReplyTokenLength),

		SentryToken:       getEnv(EnvSentryToken, ""),
		SentryHost:        getEnv(EnvSentryHost, "errors.betterstack.com"),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are present and sane.
func (c *Config) Validate() error {
	if c.LineChannelToken == "" {
		return fmt.Errorf("%s is required", EnvLineChannelAccessToken)
	}
	if c.LineChannelSecret == "" {
		return fmt.Errorf("%s is required", EnvLineChannelSecret)
	}
	if c.GlobalRateRPS <= 0 {
		return fmt.Errorf("%s must be positive, got %v", EnvGlobalRateRPS, c.GlobalRateRPS)
	}
	if c.MaxEventsPerWebhook <= 0 {
		return fmt.Errorf("%s must be positive, got %d", EnvMaxEventsPerWebhook, c.MaxEventsPerWebhook)
	}
	if c.MinReplyTokenLength < 0 {
		return fmt.Errorf("%s must not be negative, got %d", EnvMinReplyTokenLength, c.MinReplyTokenLength)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
