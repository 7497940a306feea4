// Package config handles application configuration loading from environment
// variables, with optional site identity from a YAML file. It provides a
// centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// SiteConfig holds the public identity of the site, shown on the
// overview endpoint.
type SiteConfig struct {
	Name    string `yaml:"name" json:"name"`
	Tagline string `yaml:"tagline" json:"tagline"`
}

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Content document location
	DataFile string

	// Site identity
	Site SiteConfig

	// Admin credentials
	AdminUsername     string
	AdminPasswordHash string

	// Bearer token for the automated entries API
	APIToken string

	// Valkey (Redis-compatible cache), optional
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. If SITE_FILE points to a YAML file
// (or site.yml exists next to the data file), the site identity is read
// from it. Returns an error if critical values are missing in production
// mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DataFile: envOrDefault("DATA_FILE", "data/db.json"),

		Site: SiteConfig{
			Name:    envOrDefault("SITE_NAME", "JotPress"),
			Tagline: os.Getenv("SITE_TAGLINE"),
		},

		AdminUsername:     envOrDefault("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		APIToken: os.Getenv("API_TOKEN"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
	}

	if path := os.Getenv("SITE_FILE"); path != "" {
		if err := cfg.loadSiteFile(path); err != nil {
			return nil, err
		}
	}

	if cfg.Env == "production" {
		if cfg.AdminPasswordHash == "" {
			return nil, fmt.Errorf("ADMIN_PASSWORD_HASH must be set in production")
		}
		if cfg.APIToken == "" {
			return nil, fmt.Errorf("API_TOKEN must be set in production")
		}
	}

	// Development fallbacks so a bare `jotpress serve` works out of the box.
	if cfg.AdminPasswordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash default password: %w", err)
		}
		cfg.AdminPasswordHash = string(hash)
	}
	if cfg.APIToken == "" {
		cfg.APIToken = uuid.NewString()
	}

	return cfg, nil
}

// loadSiteFile reads the site identity from a YAML file.
func (c *Config) loadSiteFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read site file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c.Site); err != nil {
		return fmt.Errorf("parse site file %s: %w", path, err)
	}
	return nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CacheEnabled returns true if a Valkey host is configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// VerifyAdmin checks a login attempt against the configured admin
// credentials.
func (c *Config) VerifyAdmin(username, password string) bool {
	if username != c.AdminUsername {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.AdminPasswordHash), []byte(password)) == nil
}

// VerifyAPIToken checks a bearer token against the configured API token.
func (c *Config) VerifyAPIToken(token string) bool {
	return token != "" && token == c.APIToken
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
