// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"
)

// Config selects and configures a cache backend.
type Config struct {
	RedisURL   string // empty means in-process memory cache
	Prefix     string
	DefaultTTL time.Duration
}

// New creates a cache from the config. When Redis is configured but
// unreachable it logs a warning and falls back to the memory cache, so a
// missing Redis never takes the site down.
func New(cfg Config) Cache {
	if cfg.DefaultTTL == 0 {
		cfg.DefaultTTL = time.Hour
	}

	if cfg.RedisURL != "" {
		c, err := NewRedisCache(RedisOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.DefaultTTL,
		})
		if err == nil {
			slog.Info("cache initialized", "backend", "redis")
			return c
		}
		slog.Warn("redis unavailable, falling back to memory cache", "error", err)
	}

	slog.Info("cache initialized", "backend", "memory")
	return NewMemoryCache(cfg.DefaultTTL)
}
