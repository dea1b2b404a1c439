// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kordy/folio/internal/auth"
	"github.com/kordy/folio/internal/mail"
	"github.com/kordy/folio/internal/middleware"
	"github.com/kordy/folio/internal/model"
	"github.com/kordy/folio/internal/service"
	"github.com/kordy/folio/internal/session"
	"github.com/kordy/folio/internal/store"
	"github.com/kordy/folio/internal/testutil"
)

const (
	testUsername = "admin"
	testPassword = "correct-horse-battery"
)

// fakeSender records sent messages instead of calling the provider.
type fakeSender struct {
	sent []mail.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg mail.Message) (*mail.SendResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, msg)
	return &mail.SendResult{ID: "msg-1"}, nil
}

type testServer struct {
	*httptest.Server
	svc    *service.PortfolioService
	sender *fakeSender
	client *http.Client
}

// newTestServer wires the full API stack against a temp database, mirroring
// the production router.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	svc := service.NewPortfolioService(db, nil)
	sessionManager := session.New(db, store.DriverSQLite, true)
	authenticator, err := auth.NewEnvAuthenticator(testUsername, testPassword)
	if err != nil {
		t.Fatalf("NewEnvAuthenticator: %v", err)
	}
	sender := &fakeSender{}
	h := NewHandler(db, svc, sessionManager, authenticator, sender, 1<<20)

	r := chi.NewRouter()
	r.Use(middleware.CORS)
	r.Use(sessionManager.LoadAndSave)
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		r.Get("/portfolio", h.GetPortfolio)
		r.Get("/file", h.GetFile)
		r.Post("/send-email", h.SendEmail)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/session", h.Session)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(sessionManager))

			r.Put("/portfolio", h.PutPortfolio)
			r.Post("/upload", h.Upload)

			r.Route("/portfolio/{section}", func(r chi.Router) {
				r.Get("/", h.ListSection)
				r.Post("/", h.AddElement)
				r.Post("/reorder", h.ReorderSection)
				r.Patch("/{id}", h.UpdateElement)
				r.Delete("/{id}", h.RemoveElement)
			})
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}

	return &testServer{
		Server: srv,
		svc:    svc,
		sender: sender,
		client: &http.Client{Jar: jar},
	}
}

// do issues a JSON request and returns the response.
func (ts *testServer) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// login authenticates the shared client, storing the session cookie in its jar.
func (ts *testServer) login(t *testing.T) {
	t.Helper()
	resp := ts.do(t, http.MethodPost, "/api/login", map[string]string{
		"username": testUsername,
		"password": testPassword,
	})
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
}

// decodeJSONBody decodes a JSON response body into dst.
func decodeJSONBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
}

// decodeBody decodes a JSON response body into a map.
func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return out
}

func validDocument() *model.PortfolioDocument {
	return &model.PortfolioDocument{
		Hero:     &model.Hero{Title: "Jane Doe"},
		About:    &model.About{Title: "About", Experiences: []model.Experience{}, Studies: []model.Study{}},
		Skills:   []model.Skill{{ID: "s1", Name: "Go", Ord: 0}},
		Projects: []model.Project{},
		Blog:     []model.BlogPost{},
		Gallery:  []model.GalleryItem{},
		Contact:  &model.Contact{Email: "jane@example.com"},
	}
}
