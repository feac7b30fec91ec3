package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid json", func(t *testing.T) {
		path := writeConfigFile(t, `{
			"addr": ":9090",
			"database_url": "postgres://localhost/hireflux",
			"log_level": "debug",
			"score_concurrency": 4,
			"use_browser": true
		}`)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, "postgres://localhost/hireflux", cfg.DatabaseURL)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 4, cfg.ScoreConcurrency)
		assert.True(t, cfg.UseBrowser)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeConfigFile(t, `{ invalid json }`)

		cfg, err := LoadConfig(path)
		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, "failed to parse config JSON")
	})

	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadConfig("/nonexistent/path/config.json")
		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("empty path", func(t *testing.T) {
		cfg, err := LoadConfig("")
		assert.Nil(t, cfg)
		assert.ErrorContains(t, err, "config path is empty")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{Addr: ":8080", LogLevel: "info", ScoreConcurrency: 8},
		},
		{
			name:    "negative concurrency",
			cfg:     Config{ScoreConcurrency: -1},
			wantErr: "score_concurrency",
		},
		{
			name:    "unknown log level",
			cfg:     Config{LogLevel: "loud"},
			wantErr: "log_level",
		},
		{
			name:    "missing policy file",
			cfg:     Config{PolicyPath: "/nonexistent/policy.json"},
			wantErr: "policy file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		Addr:             ":8080",
		DatabaseURL:      "postgres://localhost/default",
		LogLevel:         "info",
		ScoreConcurrency: 8,
	}
	partial := Config{
		Addr:         ":9090",
		GeminiAPIKey: "test-key",
	}

	merged := partial.MergeWithDefaults(defaults)

	// Set fields win, defaults fill the rest.
	assert.Equal(t, ":9090", merged.Addr)
	assert.Equal(t, "test-key", merged.GeminiAPIKey)
	assert.Equal(t, "postgres://localhost/default", merged.DatabaseURL)
	assert.Equal(t, "info", merged.LogLevel)
	assert.Equal(t, 8, merged.ScoreConcurrency)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		Addr:        ":9090",
		DatabaseURL: "postgres://localhost/custom",
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, ":9090", merged.Addr)
	assert.Equal(t, "postgres://localhost/custom", merged.DatabaseURL)
}
