// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned by Authenticate for a wrong username or
// password. Callers must not distinguish which of the two was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Session identifies an authenticated editor.
type Session struct {
	Username string
}

// Authenticator verifies credentials for the edit-mode gate. The interface
// exists so the single-admin env-credential check can be swapped for a real
// identity provider without touching the editor or handler logic.
type Authenticator interface {
	Authenticate(username, password string) (Session, error)
}

// EnvAuthenticator verifies against the single admin account configured via
// environment variables. The configured password is hashed at startup so
// the plaintext is not kept in process memory for the server's lifetime.
type EnvAuthenticator struct {
	username     string
	passwordHash string
}

// NewEnvAuthenticator creates an authenticator for the configured admin
// credentials.
func NewEnvAuthenticator(username, password string) (*EnvAuthenticator, error) {
	if username == "" || password == "" {
		return nil, errors.New("admin username and password are required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing admin password: %w", err)
	}
	return &EnvAuthenticator{username: username, passwordHash: hash}, nil
}

// Authenticate implements Authenticator. Both checks always run so the
// response time does not reveal whether the username matched.
func (a *EnvAuthenticator) Authenticate(username, password string) (Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK, err := CheckPassword(password, a.passwordHash)
	if err != nil {
		return Session{}, fmt.Errorf("verifying password: %w", err)
	}
	if !userOK || !passOK {
		return Session{}, ErrInvalidCredentials
	}
	return Session{Username: username}, nil
}
