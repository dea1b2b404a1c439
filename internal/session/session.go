// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the server-side session manager backing the
// edit-mode login gate.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/kordy/folio/internal/store"
)

// KeyUsername is the session key holding the authenticated editor's name.
// An empty value means the session is not authenticated.
const KeyUsername = "username"

// New creates a session manager. On SQLite the sessions table created by
// the migrations backs the store, so logins survive restarts; on MySQL the
// scs in-memory store is used instead.
func New(db *sql.DB, driver string, isDev bool) *scs.SessionManager {
	sm := scs.New()

	if driver == store.DriverSQLite {
		sm.Store = sqlite3store.New(db)
	}

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm
}
