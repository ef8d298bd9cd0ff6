// internal/pkg/config/validators.go
package config

import (
	"fmt"
	"strings"
)

// ErrMissingRequiredConfig indicates a required configuration value was
// not provided.
var ErrMissingRequiredConfig = fmt.Errorf("missing required configuration")

// ConfigValidator validates a loaded configuration.
type ConfigValidator interface {
	Validate(cfg *Config) error
}

// BasicValidator performs basic configuration validation
type BasicValidator struct{}

// Validate performs basic validation
func (v *BasicValidator) Validate(cfg *Config) error {
	if cfg.Shopify.ShopDomain == "" {
		return fmt.Errorf("%w: shopify shop domain", ErrMissingRequiredConfig)
	}
	if cfg.Shopify.TrackedCollectionID == 0 {
		return fmt.Errorf("%w: tracked collection id", ErrMissingRequiredConfig)
	}

	if cfg.Database.MaxConnections < cfg.Database.MinConnections {
		return fmt.Errorf("database max_connections must be >= min_connections")
	}
	if cfg.Redis.PoolSize <= 0 {
		return fmt.Errorf("redis pool_size must be positive")
	}
	if cfg.Security.RateLimitRequests <= 0 {
		return fmt.Errorf("rate_limit_requests must be positive")
	}
	return nil
}

// ProductionValidator performs strict validation for production environments
type ProductionValidator struct{}

// Validate performs production-specific validation
func (v *ProductionValidator) Validate(cfg *Config) error {
	// Check for placeholder values
	if strings.Contains(cfg.Database.Password, "MISSING_") {
		return fmt.Errorf("%w: database password", ErrMissingRequiredConfig)
	}

	if cfg.Shopify.AccessToken == "" && cfg.Shopify.SecretsName == "" {
		return fmt.Errorf("%w: shopify access token", ErrMissingRequiredConfig)
	}
	if cfg.Shopify.WebhookSecret == "" && cfg.Shopify.SecretsName == "" {
		return fmt.Errorf("%w: shopify webhook secret", ErrMissingRequiredConfig)
	}

	// Ensure secure defaults in production
	if cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("database SSL must be enabled in production")
	}

	return nil
}
