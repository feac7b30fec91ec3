package config

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig_Defaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("PASSWORD_PEPPER", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, cfg.BcryptCost)
	assert.Empty(t, cfg.Pepper)
}

func TestNewPasswordConfig_FromEnvironment(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "global-pepper-secret")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "global-pepper-secret", cfg.Pepper)
}

func TestNewPasswordConfig_InvalidCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "twelve")

	_, err := NewPasswordConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid BCRYPT_COST")
}

func TestNewPasswordConfig_CostOutOfRange(t *testing.T) {
	for _, cost := range []int{MinBcryptCost - 1, MaxBcryptCost + 1} {
		t.Run(fmt.Sprintf("cost %d", cost), func(t *testing.T) {
			t.Setenv("BCRYPT_COST", fmt.Sprintf("%d", cost))

			_, err := NewPasswordConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "out of range")
		})
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}

	hash, err := cfg.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, cfg.VerifyPassword("correct horse battery", hash))
	assert.False(t, cfg.VerifyPassword("wrong password", hash))
}

func TestHashPassword_SaltsEachHash(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}

	first, err := cfg.HashPassword("correct horse battery")
	require.NoError(t, err)
	second, err := cfg.HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, cfg.VerifyPassword("correct horse battery", first))
	assert.True(t, cfg.VerifyPassword("correct horse battery", second))
}

func TestVerifyPassword_PepperMustMatch(t *testing.T) {
	withPepper := &PasswordConfig{BcryptCost: MinBcryptCost, Pepper: "pepper-a"}
	otherPepper := &PasswordConfig{BcryptCost: MinBcryptCost, Pepper: "pepper-b"}
	noPepper := &PasswordConfig{BcryptCost: MinBcryptCost}

	hash, err := withPepper.HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, withPepper.VerifyPassword("correct horse battery", hash))
	assert.False(t, otherPepper.VerifyPassword("correct horse battery", hash))
	assert.False(t, noPepper.VerifyPassword("correct horse battery", hash))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}
	assert.False(t, cfg.VerifyPassword("correct horse battery", "not a bcrypt hash"))
	assert.False(t, cfg.VerifyPassword("correct horse battery", ""))
}

func TestNeedsRehash(t *testing.T) {
	low := &PasswordConfig{BcryptCost: MinBcryptCost}
	high := &PasswordConfig{BcryptCost: MinBcryptCost + 2}

	hash, err := low.HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, high.NeedsRehash(hash), "lower-cost hash should be upgraded")
	assert.False(t, low.NeedsRehash(hash), "hash at the configured cost stays")
	assert.False(t, low.NeedsRehash("not a bcrypt hash"), "malformed hashes are not rehashed")

	highHash, err := high.HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.False(t, low.NeedsRehash(highHash), "higher-cost hash is never downgraded")
}
