// Package config provides configuration loading and validation for the service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the service configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Addr        string `json:"addr,omitempty"`         // Listen address, e.g. ":8080"
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	LogLevel    string `json:"log_level,omitempty"`    // zap level: debug, info, warn, error

	// Scoring
	PolicyPath       string `json:"policy_path,omitempty"`       // Path to a custom fit policy JSON
	ScoreConcurrency int    `json:"score_concurrency,omitempty"` // Workers for batch fit recomputation

	// Job import
	UseBrowser bool `json:"use_browser,omitempty"` // Headless browser fallback for SPA job boards

	// Generation
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Gemini API key; template fallback when empty
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.ScoreConcurrency < 0 {
		return fmt.Errorf("config error: 'score_concurrency' must be non-negative")
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unknown 'log_level': %s", c.LogLevel)
	}

	// Validate file paths exist (if specified)
	if c.PolicyPath != "" {
		if _, err := os.Stat(c.PolicyPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: policy file not found: %s", c.PolicyPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.PolicyPath == "" {
		result.PolicyPath = defaults.PolicyPath
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}

	// Int fields: use default if zero
	if result.ScoreConcurrency == 0 {
		result.ScoreConcurrency = defaults.ScoreConcurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
