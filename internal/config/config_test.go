// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SENATEC_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBURL != "" {
		t.Errorf("DBURL = %q, want empty", cfg.DBURL)
	}
	if cfg.DBConfigured() {
		t.Error("DBConfigured() = true without SENATEC_DB_URL")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.AdminUsername != "wassim1" || cfg.AdminPassword != "zed18666" {
		t.Errorf("admin pair = %q/%q, want the built-in pair", cfg.AdminUsername, cfg.AdminPassword)
	}
	if cfg.UsePasswordHash() {
		t.Error("UsePasswordHash() = true without a hash")
	}
	if cfg.CachePrefix != "senatec:" {
		t.Errorf("CachePrefix = %q", cfg.CachePrefix)
	}
	if cfg.CacheTTLDuration() != 5*time.Minute {
		t.Errorf("CacheTTLDuration() = %v, want 5m", cfg.CacheTTLDuration())
	}
	if cfg.WhatsAppNumber != "21654023807" || cfg.PhoneNumber != "21698821822" {
		t.Errorf("contact numbers = %q/%q", cfg.WhatsAppNumber, cfg.PhoneNumber)
	}
	if cfg.SeedDemo {
		t.Error("SeedDemo = true by default")
	}
	if cfg.EventRetention() != 30*24*time.Hour {
		t.Errorf("EventRetention() = %v, want 30 days", cfg.EventRetention())
	}
	if cfg.LoginProtection {
		t.Error("LoginProtection = true by default")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SENATEC_SESSION_SECRET", "custom-secret-key-32-bytes-long!")
	setEnv(t, "SENATEC_DB_URL", "postgres://db.example.com/senatec")
	setEnv(t, "SENATEC_DB_KEY", "s3cret")
	setEnv(t, "SENATEC_SERVER_HOST", "0.0.0.0")
	setEnv(t, "SENATEC_SERVER_PORT", "3000")
	setEnv(t, "SENATEC_ENV", "production")
	setEnv(t, "SENATEC_LOG_LEVEL", "debug")
	setEnv(t, "SENATEC_ADMIN_PASSWORD_HASH", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA")
	setEnv(t, "SENATEC_REDIS_URL", "redis://localhost:6379/0")
	setEnv(t, "SENATEC_CACHE_TTL", "60")
	setEnv(t, "SENATEC_SEED_DEMO", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !cfg.DBConfigured() || cfg.DBKey != "s3cret" {
		t.Errorf("database = %q/%q", cfg.DBURL, cfg.DBKey)
	}
	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true for production")
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", cfg.SlogLevel())
	}
	if !cfg.UsePasswordHash() {
		t.Error("UsePasswordHash() = false with a hash set")
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() = false with a Redis URL")
	}
	if cfg.CacheTTLDuration() != time.Minute {
		t.Errorf("CacheTTLDuration() = %v, want 1m", cfg.CacheTTLDuration())
	}
	if !cfg.SeedDemo {
		t.Error("SeedDemo = false")
	}
}

func TestLoad_RequiredSessionSecret(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Error("Load() should fail without SENATEC_SESSION_SECRET")
	}
}

func TestLoad_SessionSecretTooShort(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"empty-ish", "x"},
		{"16 bytes", "0123456789abcdef"},
		{"31 bytes", "0123456789abcdef0123456789abcde"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "SENATEC_SESSION_SECRET", tt.secret)

			_, err := Load()
			if err == nil {
				t.Fatal("Load() should fail for short secret")
			}
			if !strings.Contains(err.Error(), "at least 32 bytes") {
				t.Errorf("error = %v", err)
			}
		})
	}
}

func TestLoad_SessionSecretMinimumLength(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SENATEC_SESSION_SECRET", "0123456789abcdef0123456789ABCDEF")

	if _, err := Load(); err != nil {
		t.Errorf("Load() with 32-byte secret: %v", err)
	}
}

func TestLoad_KnownWeakSecret(t *testing.T) {
	for _, weak := range knownWeakSecrets {
		os.Clearenv()
		setEnv(t, "SENATEC_SESSION_SECRET", weak)
		if _, err := Load(); err == nil {
			t.Errorf("Load() accepted known weak secret %q", weak)
		}
	}
}

func TestLoad_NegativeCacheTTL(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SENATEC_SESSION_SECRET", testSecret)
	setEnv(t, "SENATEC_CACHE_TTL", "-1")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject a negative cache TTL")
	}
}

func TestLoad_NegativeEventRetention(t *testing.T) {
	os.Clearenv()
	setEnv(t, "SENATEC_SESSION_SECRET", testSecret)
	setEnv(t, "SENATEC_EVENT_RETENTION_DAYS", "-3")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject a negative event retention")
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := Config{LogLevel: tt.level}
		if got := cfg.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"aaaaaaaaaaaaaaaa0000000000000000", false},
		{"aaaaaaaaAAAAAAAA0000000000000000", true},
		{"test-secret-key-32-bytes-long!!!", true},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.s); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}
