// internal/config/config.go
// Centralized configuration management
// Loads from environment variables with sensible defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string
	BaseURL     string // public base URL embedded in share links

	// Database
	DatabaseURL string
	RedisURL    string

	// Session handoff
	SessionTTL    time.Duration
	SweepInterval time.Duration
	StoreTimeout  time.Duration // per remote store call; on timeout the embedded link takes over

	// Email configuration
	EmailProvider string // "smtp", "sendgrid", or "mock"
	EmailFrom     string

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string

	// SendGrid
	SendGridAPIKey string

	// SMS configuration
	SMSProvider string // "twilio" or "mock"

	// Twilio
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

// Load reads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", ""),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Session handoff
		SessionTTL:    getEnvDuration("SESSION_TTL", "24h"),
		SweepInterval: getEnvDuration("SWEEP_INTERVAL", "1h"),
		StoreTimeout:  getEnvDuration("STORE_TIMEOUT", "5s"),

		// Email
		EmailProvider: getEnv("EMAIL_PROVIDER", "mock"),
		EmailFrom:     getEnv("EMAIL_FROM", "noreply@soulmatch.app"),

		// SMTP
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		// SendGrid
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		// SMS
		SMSProvider: getEnv("SMS_PROVIDER", "mock"),

		// Twilio
		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
	}

	// Set BaseURL if not provided
	if cfg.BaseURL == "" {
		if cfg.Environment == "production" {
			cfg.BaseURL = "https://soulmatch.app"
		} else {
			cfg.BaseURL = fmt.Sprintf("http://localhost:%s", cfg.Port)
		}
	}

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.SessionTTL < time.Minute {
		return fmt.Errorf("session TTL must be at least one minute")
	}

	if c.SweepInterval < time.Minute {
		return fmt.Errorf("sweep interval must be at least one minute")
	}

	// Email validation
	switch c.EmailProvider {
	case "smtp":
		if c.SMTPHost == "" || c.SMTPUser == "" || c.SMTPPassword == "" {
			if c.Environment == "production" {
				return fmt.Errorf("SMTP configuration incomplete for production")
			}
		}
	case "sendgrid":
		if c.SendGridAPIKey == "" && c.Environment == "production" {
			return fmt.Errorf("SendGrid API key is required for production")
		}
	case "mock":
		if c.Environment == "production" {
			return fmt.Errorf("mock email provider cannot be used in production")
		}
	default:
		return fmt.Errorf("invalid email provider: %s", c.EmailProvider)
	}

	// SMS validation
	switch c.SMSProvider {
	case "twilio":
		if c.TwilioAccountSID == "" || c.TwilioAuthToken == "" || c.TwilioFromNumber == "" {
			return fmt.Errorf("Twilio configuration incomplete")
		}
	case "mock", "":
	default:
		return fmt.Errorf("invalid SMS provider: %s", c.SMSProvider)
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Helper functions

// getEnv gets a string value from environment with a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment with a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration value from environment with a default
func getEnvDuration(key string, defaultValue string) time.Duration {
	value := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
