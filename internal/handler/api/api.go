// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST handlers for the portfolio backend.
package api

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/kordy/folio/internal/auth"
	"github.com/kordy/folio/internal/mail"
	"github.com/kordy/folio/internal/middleware"
	"github.com/kordy/folio/internal/service"
	"github.com/kordy/folio/internal/store"
)

// maxBodyBytes caps JSON request bodies. Uploads carry their own, larger
// limit from configuration.
const maxBodyBytes = 1 << 20

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db             *sql.DB
	queries        *store.Queries
	svc            *service.PortfolioService
	sessions       *scs.SessionManager
	authenticator  auth.Authenticator
	sender         mail.Sender
	loginProt      *middleware.LoginProtection
	maxUploadBytes int64
}

// NewHandler creates the API handler.
func NewHandler(
	db *sql.DB,
	svc *service.PortfolioService,
	sessions *scs.SessionManager,
	authenticator auth.Authenticator,
	sender mail.Sender,
	maxUploadBytes int64,
) *Handler {
	return &Handler{
		db:             db,
		queries:        store.New(db),
		svc:            svc,
		sessions:       sessions,
		authenticator:  authenticator,
		sender:         sender,
		loginProt:      middleware.NewLoginProtection(),
		maxUploadBytes: maxUploadBytes,
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes the flat error shape the API has always used.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, map[string]any{"error": message})
}

// MethodNotAllowed is the router's fallback for known paths hit with an
// unsupported verb.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// NotFound is the router's fallback for unknown paths.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, "Not found")
}

// decodeJSON reads a size-limited JSON body into dst. The limit guards
// against oversized payloads on endpoints that are not uploads.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	return json.NewDecoder(r.Body).Decode(dst)
}
