// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains example secrets that must never reach production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Upload size limits in megabytes.
const (
	MinUploadMB     = 2
	MaxUploadMB     = 10
	DefaultUploadMB = 5
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"OLANDING_DB_PATH" envDefault:"./data/olanding.db"`
	SessionSecret string `env:"OLANDING_SESSION_SECRET,required"`
	ServerHost    string `env:"OLANDING_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"OLANDING_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"OLANDING_ENV" envDefault:"development"`
	LogLevel      string `env:"OLANDING_LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"OLANDING_LOG_FILE"` // Optional rotated log file in addition to stdout

	UploadsDir  string `env:"OLANDING_UPLOADS_DIR" envDefault:"./uploads"`
	MaxUploadMB int    `env:"OLANDING_MAX_UPLOAD_MB" envDefault:"5"`

	// Cache configuration
	RedisURL    string        `env:"OLANDING_REDIS_URL"` // Optional, in-memory cache when empty
	CachePrefix string        `env:"OLANDING_CACHE_PREFIX" envDefault:"olanding:"`
	CacheTTL    time.Duration `env:"OLANDING_CACHE_TTL" envDefault:"5m"`

	// Extra origins accepted by the CSRF check, e.g. behind a proxy.
	TrustedOrigins []string `env:"OLANDING_TRUSTED_ORIGINS" envSeparator:","`

	// Bootstrap administrator, created only when no admin exists.
	AdminUsername string `env:"OLANDING_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"OLANDING_ADMIN_PASSWORD" envDefault:"changeme"`
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

// MaxUploadBytes returns the per-file upload limit in bytes.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
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
		return nil, fmt.Errorf("OLANDING_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("OLANDING_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("OLANDING_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.MaxUploadMB < MinUploadMB || cfg.MaxUploadMB > MaxUploadMB {
		return nil, fmt.Errorf("OLANDING_MAX_UPLOAD_MB must be between %d and %d, got %d",
			MinUploadMB, MaxUploadMB, cfg.MaxUploadMB)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("OLANDING_SERVER_PORT out of range: %d", cfg.ServerPort)
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	for _, set := range []string{
		"abcdefghijklmnopqrstuvwxyz",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"0123456789",
		"!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\",
	} {
		if strings.ContainsAny(s, set) {
			charTypes++
		}
	}
	return charTypes >= 3
}
