// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the read-through cache in front of the portfolio
// store: an in-process memory cache by default, Redis when configured.
package cache

import (
	"context"
	"time"
)

// Cache is the contract both backends satisfy. Implementations are safe for
// concurrent use and store opaque byte values.
type Cache interface {
	// Get returns the value for key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A zero ttl uses the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Error is a sentinel error type for cache operations.
type Error string

func (e Error) Error() string { return string(e) }

// ErrCacheMiss indicates the key was not found or has expired.
const ErrCacheMiss Error = "cache miss"
