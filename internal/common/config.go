// Package common provides shared utilities for the treasuries service
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the treasuries service
type Config struct {
	Environment string           `toml:"environment"`
	Server      ServerConfig     `toml:"server"`
	Document    DocumentConfig   `toml:"document"`
	Relational  RelationalConfig `toml:"relational"`
	Auth        AuthConfig       `toml:"auth"`
	Logging     LoggingConfig    `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// DocumentConfig holds the document store (SurrealDB) connection settings.
// An empty Address means the document store is unconfigured; the service
// still starts and serves empty snapshots with a diagnostic payload.
type DocumentConfig struct {
	Address   string `toml:"address"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

// Configured reports whether a document store address is present.
func (c *DocumentConfig) Configured() bool {
	return strings.TrimSpace(c.Address) != ""
}

// RelationalConfig holds the Postgres connection settings for the
// asset price and portfolio tables.
type RelationalConfig struct {
	URL string `toml:"url"`
}

// Configured reports whether a relational store URL is present.
func (c *RelationalConfig) Configured() bool {
	return strings.TrimSpace(c.URL) != ""
}

// AuthConfig holds JWT settings for the authenticated routes.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Document: DocumentConfig{
			Namespace: "treasuries",
			Database:  "litecoin_treasuries",
		},
		Auth: AuthConfig{
			JWTSecret:   "dev-jwt-secret-change-in-production",
			TokenExpiry: "24h",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// A .env file in the working directory is loaded first (missing is fine),
// then each TOML path is merged in order, then TREASURY_* env vars override.
func LoadConfig(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("TREASURY_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("TREASURY_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("TREASURY_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("TREASURY_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if v := os.Getenv("TREASURY_DOCUMENT_ADDRESS"); v != "" {
		config.Document.Address = v
	}
	if v := os.Getenv("TREASURY_DOCUMENT_NAMESPACE"); v != "" {
		config.Document.Namespace = v
	}
	if v := os.Getenv("TREASURY_DOCUMENT_DATABASE"); v != "" {
		config.Document.Database = v
	}
	if v := os.Getenv("TREASURY_DOCUMENT_USER"); v != "" {
		config.Document.Username = v
	}
	if v := os.Getenv("TREASURY_DOCUMENT_PASS"); v != "" {
		config.Document.Password = v
	}

	if v := os.Getenv("TREASURY_DATABASE_URL"); v != "" {
		config.Relational.URL = v
	}

	if v := os.Getenv("TREASURY_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("TREASURY_TOKEN_EXPIRY"); v != "" {
		config.Auth.TokenExpiry = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
