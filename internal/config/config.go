// Package config loads the service configuration from an optional YAML file
// and environment variables. Environment variables take precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerAddress string `yaml:"server_address" validate:"required"`
	Environment   string `yaml:"environment" validate:"oneof=development staging production"`
	LogLevel      string `yaml:"log_level" validate:"oneof=debug info warn error"`

	CORS CORSConfig `yaml:"cors"`

	EnableMetrics   bool          `yaml:"enable_metrics"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins" validate:"min=1,dive,required"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age" validate:"gte=0"`
}

var validate = validator.New()

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		ServerAddress: ":8000",
		Environment:   "development",
		LogLevel:      "info",
		CORS: CORSConfig{
			AllowedOrigins:   []string{"http://localhost:5173"},
			AllowCredentials: true,
			MaxAge:           600,
		},
		EnableMetrics:   true,
		MaxBodyBytes:    10 << 20,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Load builds the configuration from defaults, the YAML file named by
// CONFIG_FILE (if any) and the environment.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", c.LogLevel))
	c.CORS.AllowedOrigins = getEnvList("CORS_ALLOWED_ORIGIN", c.CORS.AllowedOrigins)
	c.CORS.AllowCredentials = getEnvBool("CORS_ALLOW_CREDENTIALS", c.CORS.AllowCredentials)
	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)

	var err error
	if c.CORS.MaxAge, err = getEnvInt("CORS_MAX_AGE", c.CORS.MaxAge); err != nil {
		return err
	}
	maxBody, err := getEnvInt("MAX_BODY_BYTES", int(c.MaxBodyBytes))
	if err != nil {
		return err
	}
	c.MaxBodyBytes = int64(maxBody)

	if value := os.Getenv("SHUTDOWN_TIMEOUT"); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", value, err)
		}
		c.ShutdownTimeout = d
	}

	return nil
}

// Validate checks the configuration against its field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			messages := make([]string, 0, len(validationErrors))
			for _, e := range validationErrors {
				messages = append(messages, fmt.Sprintf("%s failed %q", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

// getEnvList splits a comma separated variable, dropping empty entries.
func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
