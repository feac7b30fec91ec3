package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultJWTExpirationHours is the token lifetime when JWT_EXPIRATION_HOURS is unset.
const DefaultJWTExpirationHours = 24

// MinJWTSecretBytes is the shortest accepted signing secret. HS256 gives no
// benefit from a secret shorter than the hash output size.
const MinJWTSecretBytes = 32

// JWTConfig holds signing parameters for issued API tokens.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig builds a JWT configuration from the environment.
// JWT_SECRET is required and must be at least MinJWTSecretBytes long;
// JWT_EXPIRATION_HOURS defaults to DefaultJWTExpirationHours.
func NewJWTConfig() (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret:          os.Getenv("JWT_SECRET"),
		ExpirationHours: DefaultJWTExpirationHours,
	}

	if expStr := os.Getenv("JWT_EXPIRATION_HOURS"); expStr != "" {
		hours, err := strconv.Atoi(expStr)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %w", err)
		}
		cfg.ExpirationHours = hours
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ExpiresIn returns the configured token lifetime as a duration.
func (c *JWTConfig) ExpiresIn() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

func (c *JWTConfig) validate() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if len(c.Secret) < MinJWTSecretBytes {
		return fmt.Errorf("JWT_SECRET too short: %d bytes (minimum %d)", len(c.Secret), MinJWTSecretBytes)
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
