// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	ValkeyDB       int

	// Marketplace URLs are "{MarketplaceScheme}://{ident}.{MarketplaceDomain}".
	MarketplaceDomain string
	MarketplaceScheme string

	// IdentMaxAttempts bounds ident and shape name allocation.
	IdentMaxAttempts int

	// TranslationCacheTTL is how long marketplace translations stay in Valkey.
	TranslationCacheTTL time.Duration

	// Marketplace creation rate limit per client IP.
	SignupRateLimit  int
	SignupRateWindow time.Duration
}

// LoadEnvFile loads variables from a .env file into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if a value cannot be
// parsed, or if critical values are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "marketkit"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "marketkit"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		MarketplaceDomain: envOrDefault("MARKETPLACE_DOMAIN", "lvh.me"),
		MarketplaceScheme: envOrDefault("MARKETPLACE_SCHEME", "https"),
	}

	var errs []error
	cfg.ValkeyDB = intOrDefault("VALKEY_DB", 0, &errs)
	cfg.IdentMaxAttempts = intOrDefault("IDENT_MAX_ATTEMPTS", 10_000, &errs)
	cfg.TranslationCacheTTL = durationOrDefault("TRANSLATION_CACHE_TTL", 10*time.Minute, &errs)
	cfg.SignupRateLimit = intOrDefault("SIGNUP_RATE_LIMIT", 10, &errs)
	cfg.SignupRateWindow = durationOrDefault("SIGNUP_RATE_WINDOW", time.Hour, &errs)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if cfg.IdentMaxAttempts <= 0 {
		return nil, fmt.Errorf("IDENT_MAX_ATTEMPTS must be positive, got %d", cfg.IdentMaxAttempts)
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return net.JoinHostPort(c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// intOrDefault parses an integer variable. Parse failures are appended to errs.
func intOrDefault(key string, fallback int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, v))
		return fallback
	}
	return n
}

// durationOrDefault parses a duration variable such as "10m". Parse
// failures are appended to errs.
func durationOrDefault(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, v))
		return fallback
	}
	return d
}
