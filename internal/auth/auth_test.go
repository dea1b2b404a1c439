// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-value")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash = %q, want argon2id format", hash)
	}

	ok, err := CheckPassword("s3cret-value", hash)
	if err != nil {
		t.Fatalf("CheckPassword: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = CheckPassword("wrong", hash)
	if err != nil {
		t.Fatalf("CheckPassword: %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h1, _ := HashPassword("same")
	h2, _ := HashPassword("same")
	if h1 == h2 {
		t.Error("two hashes of the same password are identical, salt missing")
	}
}

func TestEnvAuthenticator(t *testing.T) {
	a, err := NewEnvAuthenticator("admin", "hunter2-but-long")
	if err != nil {
		t.Fatalf("NewEnvAuthenticator: %v", err)
	}

	sess, err := a.Authenticate("admin", "hunter2-but-long")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if sess.Username != "admin" {
		t.Errorf("Username = %q, want admin", sess.Username)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"wrong username", "root", "hunter2-but-long"},
		{"both wrong", "root", "nope"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Authenticate(tt.username, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Authenticate = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestNewEnvAuthenticatorRequiresCredentials(t *testing.T) {
	if _, err := NewEnvAuthenticator("", "pass"); err == nil {
		t.Error("empty username accepted")
	}
	if _, err := NewEnvAuthenticator("admin", ""); err == nil {
		t.Error("empty password accepted")
	}
}
