package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	pkgerrors "github.com/guardianlab/guardian/pkg/errors"
	"github.com/joho/godotenv"
)

const (
	devAccessSecret  = "guardian-secret-key-change-in-production"
	devRefreshSecret = "guardian-refresh-secret-key-change-in-production"
)

type Config struct {
	Env string

	AuthAddr       string
	OnboardingAddr string
	ProductsAddr   string
	WebAddr        string

	AuthServiceURL       string
	OnboardingServiceURL string
	ProductsServiceURL   string

	JWTSecret        string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, using environment", "error", err)
	}

	cfg := &Config{
		Env:                  getString("APP_ENV", "development"),
		AuthAddr:             getString("AUTH_ADDR", ":3001"),
		OnboardingAddr:       getString("ONBOARDING_ADDR", ":3002"),
		ProductsAddr:         getString("PRODUCTS_ADDR", ":3003"),
		WebAddr:              getString("WEB_ADDR", ":3000"),
		AuthServiceURL:       getString("AUTH_SERVICE_URL", "http://localhost:3001"),
		OnboardingServiceURL: getString("ONBOARDING_SERVICE_URL", "http://localhost:3002"),
		ProductsServiceURL:   getString("PRODUCTS_SERVICE_URL", "http://localhost:3003"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		JWTRefreshSecret:     os.Getenv("JWT_REFRESH_SECRET"),
		AccessTokenTTL:       getDuration("ACCESS_TOKEN_TTL", 5*time.Minute),
		RefreshTokenTTL:      getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
	}

	if err := cfg.validateSecrets(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateSecrets enforces the startup contract: the development fallback
// secrets are permitted outside production only, and the two secrets must
// never be equal.
func (c *Config) validateSecrets() error {
	if c.Env == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("%w: JWT_SECRET is required in production", pkgerrors.ErrMissingSecret)
		}
		if c.JWTRefreshSecret == "" {
			return fmt.Errorf("%w: JWT_REFRESH_SECRET is required in production", pkgerrors.ErrMissingSecret)
		}
	}
	if c.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set, using development fallback")
		c.JWTSecret = devAccessSecret
	}
	if c.JWTRefreshSecret == "" {
		slog.Warn("JWT_REFRESH_SECRET not set, using development fallback")
		c.JWTRefreshSecret = devRefreshSecret
	}
	if c.JWTSecret == c.JWTRefreshSecret {
		return fmt.Errorf("JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}
	return nil
}

func getString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
