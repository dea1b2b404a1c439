// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginProtection combines per-IP rate limiting with account lockout after
// repeated failures. It defends the login endpoint, which sits behind a
// permissive CORS policy and is therefore reachable from anywhere.
type LoginProtection struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	attempts map[string]*loginAttempt

	ipRate            rate.Limit
	ipBurst           int
	maxFailedAttempts int
	lockoutDuration   time.Duration
	attemptWindow     time.Duration
}

type loginAttempt struct {
	count       int
	firstFailed time.Time
	lockedUntil time.Time
}

// NewLoginProtection creates a login protection instance with the default
// policy: 1 request per 2 seconds per IP with burst 5, lockout for 15
// minutes after 5 failures inside a 15 minute window.
func NewLoginProtection() *LoginProtection {
	lp := &LoginProtection{
		limiters:          make(map[string]*rate.Limiter),
		attempts:          make(map[string]*loginAttempt),
		ipRate:            rate.Limit(0.5),
		ipBurst:           5,
		maxFailedAttempts: 5,
		lockoutDuration:   15 * time.Minute,
		attemptWindow:     15 * time.Minute,
	}
	go lp.cleanup()
	return lp
}

// AllowIP reports whether a login request from ip is within the rate limit.
func (lp *LoginProtection) AllowIP(ip string) bool {
	lp.mu.Lock()
	limiter, ok := lp.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(lp.ipRate, lp.ipBurst)
		lp.limiters[ip] = limiter
	}
	lp.mu.Unlock()
	return limiter.Allow()
}

// IsLocked reports whether the account is currently locked out, and for how
// much longer.
func (lp *LoginProtection) IsLocked(username string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	attempt, ok := lp.attempts[username]
	if !ok {
		return false, 0
	}
	if time.Now().Before(attempt.lockedUntil) {
		return true, time.Until(attempt.lockedUntil)
	}
	return false, 0
}

// RecordFailure records a failed login. Returns true if the account is now
// locked.
func (lp *LoginProtection) RecordFailure(username string) bool {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	now := time.Now()
	attempt, ok := lp.attempts[username]
	if !ok || now.Sub(attempt.firstFailed) > lp.attemptWindow {
		lp.attempts[username] = &loginAttempt{count: 1, firstFailed: now}
		return false
	}

	attempt.count++
	if attempt.count >= lp.maxFailedAttempts {
		attempt.lockedUntil = now.Add(lp.lockoutDuration)
		return true
	}
	return false
}

// RecordSuccess clears the failure history for the account.
func (lp *LoginProtection) RecordSuccess(username string) {
	lp.mu.Lock()
	delete(lp.attempts, username)
	lp.mu.Unlock()
}

// cleanup drops stale limiters and expired attempt records every 10 minutes.
func (lp *LoginProtection) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		lp.mu.Lock()
		for k, a := range lp.attempts {
			if now.Sub(a.firstFailed) > lp.attemptWindow && now.After(a.lockedUntil) {
				delete(lp.attempts, k)
			}
		}
		// Limiters are cheap; recreate the map rather than tracking ages.
		if len(lp.limiters) > 10000 {
			lp.limiters = make(map[string]*rate.Limiter)
		}
		lp.mu.Unlock()
	}
}

// ClientIP extracts the client IP from a request, honoring reverse-proxy
// headers.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx > 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if idx := strings.LastIndex(r.RemoteAddr, ":"); idx > 0 {
		return r.RemoteAddr[:idx]
	}
	return r.RemoteAddr
}
