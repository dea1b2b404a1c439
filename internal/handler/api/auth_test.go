// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"
)

func TestLoginSuccess(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/login", map[string]string{
		"username": testUsername,
		"password": testPassword,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["ok"] != true || body["username"] != testUsername {
		t.Errorf("login response = %v", body)
	}

	// The session cookie now authenticates follow-up requests.
	resp = ts.do(t, http.MethodGet, "/api/session", nil)
	session := decodeBody(t, resp)
	if session["authenticated"] != true {
		t.Errorf("session = %v, want authenticated", session)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/login", map[string]string{
		"username": testUsername,
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestLoginWrongUsername(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/login", map[string]string{
		"username": "intruder",
		"password": testPassword,
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "Invalid username or password" {
		t.Errorf("error = %v, must not reveal which credential failed", body["error"])
	}
}

func TestLoginMissingFields(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/login", map[string]string{"username": testUsername})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t)

	resp := ts.do(t, http.MethodPost, "/api/logout", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status = %d, want 200", resp.StatusCode)
	}
	_ = resp.Body.Close()

	resp = ts.do(t, http.MethodGet, "/api/session", nil)
	session := decodeBody(t, resp)
	if session["authenticated"] != false {
		t.Errorf("session after logout = %v, want unauthenticated", session)
	}

	resp = ts.do(t, http.MethodPut, "/api/portfolio", validDocument())
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("PUT after logout = %d, want 401", resp.StatusCode)
	}
	_ = resp.Body.Close()
}

func TestSessionUnauthenticated(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/session", nil)
	session := decodeBody(t, resp)
	if session["authenticated"] != false {
		t.Errorf("session = %v, want unauthenticated", session)
	}
}
