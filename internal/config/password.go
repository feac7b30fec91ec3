package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt cost bounds. Below MinBcryptCost hashes are too cheap to resist
// offline cracking; above MaxBcryptCost login latency becomes unacceptable.
const (
	DefaultBcryptCost = 12
	MinBcryptCost     = 10
	MaxBcryptCost     = 14
)

// PasswordConfig controls how account passwords are hashed and verified.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string // optional server-side secret appended before hashing
}

// NewPasswordConfig builds a password configuration from the environment.
// BCRYPT_COST defaults to DefaultBcryptCost; PASSWORD_PEPPER is optional.
func NewPasswordConfig() (*PasswordConfig, error) {
	cfg := &PasswordConfig{
		BcryptCost: DefaultBcryptCost,
		Pepper:     os.Getenv("PASSWORD_PEPPER"),
	}

	if costStr := os.Getenv("BCRYPT_COST"); costStr != "" {
		cost, err := strconv.Atoi(costStr)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = cost
	}

	if cfg.BcryptCost < MinBcryptCost || cfg.BcryptCost > MaxBcryptCost {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be %d-%d)", cfg.BcryptCost, MinBcryptCost, MaxBcryptCost)
	}

	return cfg, nil
}

// HashPassword hashes a plaintext password for storage.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(c.peppered(pw)), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether pw matches the stored hash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(c.peppered(pw))) == nil
}

// NeedsRehash reports whether a stored hash was generated with a lower cost
// than currently configured. Callers can check this after a successful
// verification to upgrade hashes in place when the cost is raised.
func (c *PasswordConfig) NeedsRehash(storedHash string) bool {
	cost, err := bcrypt.Cost([]byte(storedHash))
	if err != nil {
		return false
	}
	return cost < c.BcryptCost
}

func (c *PasswordConfig) peppered(pw string) string {
	if c.Pepper == "" {
		return pw
	}
	return pw + c.Pepper
}
