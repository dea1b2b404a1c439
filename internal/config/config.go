// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// knownWeakPasswords contains default/example passwords that must be
// rejected in production.
var knownWeakPasswords = []string{
	"admin123",
	"changeme",
	"password",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBDriver   string `env:"FOLIO_DB_DRIVER" envDefault:"sqlite"` // sqlite or mysql
	DBPath     string `env:"FOLIO_DB_PATH" envDefault:"./data/folio.db"`
	ServerHost string `env:"FOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"FOLIO_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"FOLIO_ENV" envDefault:"development"`
	LogLevel   string `env:"FOLIO_LOG_LEVEL" envDefault:"info"`

	// Admin credentials for the edit-mode login gate
	AdminUsername string `env:"FOLIO_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"FOLIO_ADMIN_PASSWORD,required,notEmpty"`

	// Cache configuration
	RedisURL    string `env:"FOLIO_REDIS_URL"`                       // Optional Redis URL for distributed caching
	CachePrefix string `env:"FOLIO_CACHE_PREFIX" envDefault:"folio:"` // Redis key prefix
	CacheTTL    int    `env:"FOLIO_CACHE_TTL" envDefault:"3600"`      // Default cache TTL in seconds

	// Upload configuration
	UploadMaxBytes    int64 `env:"FOLIO_UPLOAD_MAX_BYTES" envDefault:"10485760"` // 10MB decoded
	FileRetentionDays int   `env:"FOLIO_FILE_RETENTION_DAYS" envDefault:"30"`    // Orphan cleanup window

	// Contact email configuration (Resend)
	ResendAPIKey string `env:"FOLIO_RESEND_API_KEY"`
	MailFrom     string `env:"FOLIO_MAIL_FROM" envDefault:"onboarding@resend.dev"`
	MailTo       string `env:"FOLIO_MAIL_TO"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MailEnabled returns true if the contact form email provider is configured.
func (c Config) MailEnabled() bool {
	return c.ResendAPIKey != "" && c.MailTo != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.DBDriver {
	case "sqlite", "mysql":
	default:
		return nil, fmt.Errorf("FOLIO_DB_DRIVER must be sqlite or mysql, got %q", cfg.DBDriver)
	}

	// Reject known weak/default passwords outside development
	for _, weak := range knownWeakPasswords {
		if cfg.AdminPassword == weak {
			if !cfg.IsDevelopment() {
				return nil, fmt.Errorf("FOLIO_ADMIN_PASSWORD is a known default value and must not be used; " +
					"generate a secure password with: openssl rand -base64 24")
			}
			slog.Warn("FOLIO_ADMIN_PASSWORD is a known default value; change it before deploying")
		}
	}

	return cfg, nil
}
