package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "SERVER_ADDRESS", "ENVIRONMENT", "LOG_LEVEL",
		"CORS_ALLOWED_ORIGIN", "CORS_ALLOW_CREDENTIALS", "CORS_MAX_AGE",
		"ENABLE_METRICS", "MAX_BODY_BYTES", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, ":8000", cfg.ServerAddress)
		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
		assert.True(t, cfg.CORS.AllowCredentials)
		assert.True(t, cfg.EnableMetrics)
		assert.Equal(t, int64(10<<20), cfg.MaxBodyBytes)
		assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("environment overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SERVER_ADDRESS", ":9090")
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("CORS_ALLOWED_ORIGIN", "https://app.example.com, http://localhost:3000,")
		t.Setenv("CORS_ALLOW_CREDENTIALS", "false")
		t.Setenv("ENABLE_METRICS", "0")
		t.Setenv("MAX_BODY_BYTES", "2048")
		t.Setenv("SHUTDOWN_TIMEOUT", "5s")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.ServerAddress)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, []string{"https://app.example.com", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
		assert.False(t, cfg.CORS.AllowCredentials)
		assert.False(t, cfg.EnableMetrics)
		assert.Equal(t, int64(2048), cfg.MaxBodyBytes)
		assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("yaml file is applied before environment", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
server_address: ":7000"
environment: staging
log_level: warn
cors:
  allowed_origins:
    - https://pipelines.example.com
  allow_credentials: false
  max_age: 120
enable_metrics: false
max_body_bytes: 4096
shutdown_timeout: 10s
`), 0o600))
		t.Setenv("CONFIG_FILE", path)
		t.Setenv("LOG_LEVEL", "error")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, ":7000", cfg.ServerAddress)
		assert.Equal(t, "staging", cfg.Environment)
		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, []string{"https://pipelines.example.com"}, cfg.CORS.AllowedOrigins)
		assert.False(t, cfg.CORS.AllowCredentials)
		assert.Equal(t, 120, cfg.CORS.MaxAge)
		assert.False(t, cfg.EnableMetrics)
		assert.Equal(t, int64(4096), cfg.MaxBodyBytes)
		assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("missing config file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("malformed config file", func(t *testing.T) {
		clearEnv(t)
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("cors: [unterminated"), 0o600))
		t.Setenv("CONFIG_FILE", path)

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("invalid integer", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MAX_BODY_BYTES", "lots")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "MAX_BODY_BYTES")
	})

	t.Run("invalid duration", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
	})

	t.Run("unknown environment is rejected", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENVIRONMENT", "qa")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Environment")
	})

	t.Run("unknown log level is rejected", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOG_LEVEL", "verbose")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "LogLevel")
	})

	t.Run("non-positive body limit is rejected", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MAX_BODY_BYTES", "-1")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "MaxBodyBytes")
	})
}

func TestValidate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		assert.NoError(t, Default().Validate())
	})

	t.Run("empty origin list is rejected", func(t *testing.T) {
		cfg := Default()
		cfg.CORS.AllowedOrigins = nil

		err := cfg.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "AllowedOrigins")
	})

	t.Run("empty server address is rejected", func(t *testing.T) {
		cfg := Default()
		cfg.ServerAddress = ""

		assert.Error(t, cfg.Validate())
	})
}
