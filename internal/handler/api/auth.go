// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kordy/folio/internal/auth"
	"github.com/kordy/folio/internal/middleware"
	"github.com/kordy/folio/internal/session"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates the editor and establishes a session. Failed attempts
// count toward the per-IP rate limit and the account lockout.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ip := middleware.ClientIP(r)
	if !h.loginProt.AllowIP(ip) {
		WriteError(w, http.StatusTooManyRequests, "Too many login attempts, slow down")
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req, maxBodyBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "Missing username or password")
		return
	}

	if locked, remaining := h.loginProt.IsLocked(req.Username); locked {
		WriteError(w, http.StatusTooManyRequests,
			fmt.Sprintf("Account locked, try again in %d minutes", int(remaining.Minutes())+1))
		return
	}

	sess, err := h.authenticator.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			if h.loginProt.RecordFailure(req.Username) {
				slog.Warn("account locked after repeated login failures",
					"username", req.Username, "ip", ip)
			}
			WriteError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		slog.Error("login failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.loginProt.RecordSuccess(req.Username)

	// New token on privilege change, standard session fixation defense.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		slog.Error("failed to renew session token", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.sessions.Put(r.Context(), session.KeyUsername, sess.Username)

	slog.Info("editor logged in", "username", sess.Username, "ip", ip)
	WriteJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"username": sess.Username,
	})
}

// Logout destroys the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	username := h.sessions.GetString(r.Context(), session.KeyUsername)
	if err := h.sessions.Destroy(r.Context()); err != nil {
		slog.Error("failed to destroy session", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if username != "" {
		slog.Info("editor logged out", "username", username)
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Session reports whether the caller holds an authenticated session.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	username := h.sessions.GetString(r.Context(), session.KeyUsername)
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": username != "",
		"username":      username,
	})
}
