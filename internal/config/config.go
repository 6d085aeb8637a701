// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// Hosted database. An empty URL leaves the data layer unconfigured.
	DBURL string `env:"SENATEC_DB_URL"`
	DBKey string `env:"SENATEC_DB_KEY"`

	SessionSecret string `env:"SENATEC_SESSION_SECRET,required"`
	ServerHost    string `env:"SENATEC_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"SENATEC_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"SENATEC_ENV" envDefault:"development"`
	LogLevel      string `env:"SENATEC_LOG_LEVEL" envDefault:"info"`

	// Admin credentials. A password hash, when set, replaces the plain pair.
	AdminUsername     string `env:"SENATEC_ADMIN_USERNAME" envDefault:"wassim1"`
	AdminPassword     string `env:"SENATEC_ADMIN_PASSWORD" envDefault:"zed18666"`
	AdminPasswordHash string `env:"SENATEC_ADMIN_PASSWORD_HASH"`
	// Opt-in per-IP rate limit and username lockout on the login form.
	LoginProtection bool `env:"SENATEC_LOGIN_PROTECTION" envDefault:"false"`

	// Cache configuration
	RedisURL    string `env:"SENATEC_REDIS_URL"`                          // Optional Redis URL for the catalog cache
	CachePrefix string `env:"SENATEC_CACHE_PREFIX" envDefault:"senatec:"` // Redis key prefix
	CacheTTL    int    `env:"SENATEC_CACHE_TTL" envDefault:"300"`         // Listing TTL in seconds

	// Contact deep links
	WhatsAppNumber string `env:"SENATEC_WHATSAPP_NUMBER" envDefault:"21654023807"`
	PhoneNumber    string `env:"SENATEC_PHONE_NUMBER" envDefault:"21698821822"`

	// Days of event log kept by the nightly purge. Zero keeps everything.
	EventRetentionDays int `env:"SENATEC_EVENT_RETENTION_DAYS" envDefault:"30"`

	SeedDemo bool `env:"SENATEC_SEED_DEMO" envDefault:"false"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// DBConfigured returns true if a hosted database URL is set.
func (c Config) DBConfigured() bool {
	return c.DBURL != ""
}

// UsePasswordHash returns true if the admin credential is an argon2id hash.
func (c Config) UsePasswordHash() bool {
	return c.AdminPasswordHash != ""
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// EventRetention returns EventRetentionDays as a duration.
func (c Config) EventRetention() time.Duration {
	return time.Duration(c.EventRetentionDays) * 24 * time.Hour
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("SENATEC_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("SENATEC_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("SENATEC_CACHE_TTL must not be negative, got %d", cfg.CacheTTL)
	}

	if cfg.EventRetentionDays < 0 {
		return nil, fmt.Errorf("SENATEC_EVENT_RETENTION_DAYS must not be negative, got %d", cfg.EventRetentionDays)
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("SENATEC_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
