// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/kordy/folio/internal/model"
	"github.com/kordy/folio/internal/store"
	"github.com/kordy/folio/internal/testutil"
)

func newTestHandler(t *testing.T) (*slog.Logger, *store.Queries, *bytes.Buffer) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(NewEventLogHandler(inner, db)), store.New(db), &buf
}

func recentEvents(t *testing.T, q *store.Queries) []store.Event {
	t.Helper()
	events, err := q.ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	return events
}

func TestWarnLogsCreateEvents(t *testing.T) {
	logger, q, buf := newTestHandler(t)

	logger.Warn("portfolio save rejected", "reason", "missing section")

	events := recentEvents(t, q)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.Level != model.EventLevelWarning {
		t.Errorf("Level = %q, want warning", e.Level)
	}
	if e.Category != model.EventCategoryPortfolio {
		t.Errorf("Category = %q, want portfolio", e.Category)
	}
	if e.Message != "portfolio save rejected" {
		t.Errorf("Message = %q", e.Message)
	}
	if !e.Metadata.Valid || !strings.Contains(e.Metadata.String, `"reason":"missing section"`) {
		t.Errorf("Metadata = %v", e.Metadata)
	}
	if time.Since(e.CreatedAt) > time.Minute {
		t.Errorf("CreatedAt = %v, want recent", e.CreatedAt)
	}

	if !strings.Contains(buf.String(), "portfolio save rejected") {
		t.Error("record did not reach the wrapped handler")
	}
}

func TestErrorLogsCreateEvents(t *testing.T) {
	logger, q, _ := newTestHandler(t)

	logger.Error("mail delivery failed", "error", "timeout")

	events := recentEvents(t, q)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Level != model.EventLevelError {
		t.Errorf("Level = %q, want error", events[0].Level)
	}
	if events[0].Category != model.EventCategoryMail {
		t.Errorf("Category = %q, want mail", events[0].Category)
	}
}

func TestInfoLogsSkipEventLog(t *testing.T) {
	logger, q, buf := newTestHandler(t)

	logger.Info("server started", "addr", "localhost:8080")

	if events := recentEvents(t, q); len(events) != 0 {
		t.Errorf("info log produced %d events, want 0", len(events))
	}
	if !strings.Contains(buf.String(), "server started") {
		t.Error("info record did not reach the wrapped handler")
	}
}

func TestExplicitCategoryAttribute(t *testing.T) {
	logger, q, _ := newTestHandler(t)

	logger.Warn("unexpected condition", "category", model.EventCategoryAuth)

	events := recentEvents(t, q)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Category != model.EventCategoryAuth {
		t.Errorf("Category = %q, want explicit auth", events[0].Category)
	}
}

func TestCategoryKeywordFallback(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"login throttled", model.EventCategoryAuth},
		{"file upload rejected", model.EventCategoryFile},
		{"cache store unavailable", model.EventCategoryCache},
		{"disk almost full", model.EventCategorySystem},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			logger, q, _ := newTestHandler(t)
			logger.Warn(tt.message)

			events := recentEvents(t, q)
			if len(events) != 1 {
				t.Fatalf("got %d events, want 1", len(events))
			}
			if events[0].Category != tt.want {
				t.Errorf("Category = %q, want %q", events[0].Category, tt.want)
			}
		})
	}
}
