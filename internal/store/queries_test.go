// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/kordy/folio/internal/store"
	"github.com/kordy/folio/internal/testutil"
)

func TestUpsertPortfolioInsertThenUpdate(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	if _, err := q.GetPortfolio(ctx, "main"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("GetPortfolio on empty store = %v, want sql.ErrNoRows", err)
	}

	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := q.UpsertPortfolio(ctx, store.UpsertPortfolioParams{
		Key:       "main",
		Data:      []byte(`{"v":1}`),
		UpdatedAt: first,
	}); err != nil {
		t.Fatalf("UpsertPortfolio insert: %v", err)
	}

	row, err := q.GetPortfolio(ctx, "main")
	if err != nil {
		t.Fatalf("GetPortfolio: %v", err)
	}
	if string(row.Data) != `{"v":1}` {
		t.Errorf("Data = %s, want {\"v\":1}", row.Data)
	}

	second := first.Add(time.Hour)
	if err := q.UpsertPortfolio(ctx, store.UpsertPortfolioParams{
		Key:       "main",
		Data:      []byte(`{"v":2}`),
		UpdatedAt: second,
	}); err != nil {
		t.Fatalf("UpsertPortfolio update: %v", err)
	}

	row, err = q.GetPortfolio(ctx, "main")
	if err != nil {
		t.Fatalf("GetPortfolio after update: %v", err)
	}
	if string(row.Data) != `{"v":2}` {
		t.Errorf("Data after update = %s, want {\"v\":2}", row.Data)
	}
	if !row.UpdatedAt.Equal(second) {
		t.Errorf("UpdatedAt = %v, want %v", row.UpdatedAt, second)
	}

	// Still exactly one row under the key
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM portfolio`).Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 1 {
		t.Errorf("portfolio rows = %d, want 1", count)
	}
}

func TestFileLifecycle(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	if err := q.CreateFile(ctx, store.CreateFileParams{
		UUID:      "orig-1",
		Filename:  "photo.jpg",
		MimeType:  "image/jpeg",
		Data:      "aGVsbG8=",
		CreatedAt: now,
	}); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if err := q.CreateFile(ctx, store.CreateFileParams{
		UUID:      "thumb-1",
		Filename:  "thumb_photo.jpg",
		MimeType:  "image/jpeg",
		Data:      "dGh1bWI=",
		VariantOf: sql.NullString{String: "orig-1", Valid: true},
		CreatedAt: now,
	}); err != nil {
		t.Fatalf("CreateFile variant: %v", err)
	}

	f, err := q.GetFile(ctx, "orig-1")
	if err != nil {
		t.Fatalf("GetFile: %v", err)
	}
	if f.Filename != "photo.jpg" || f.MimeType != "image/jpeg" || f.Data != "aGVsbG8=" {
		t.Errorf("GetFile = %+v", f)
	}

	infos, err := q.ListFileInfo(ctx)
	if err != nil {
		t.Fatalf("ListFileInfo: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("ListFileInfo returned %d entries, want 2", len(infos))
	}

	// Deleting the original removes its variants too.
	if err := q.DeleteFile(ctx, "orig-1"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := q.GetFile(ctx, "orig-1"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetFile deleted original = %v, want sql.ErrNoRows", err)
	}
	if _, err := q.GetFile(ctx, "thumb-1"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetFile orphaned variant = %v, want sql.ErrNoRows", err)
	}
}

func TestEventLog(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	for i, level := range []string{"warning", "error", "warning"} {
		if err := q.CreateEvent(ctx, store.CreateEventParams{
			ID:        string(rune('a' + i)),
			Level:     level,
			Category:  "system",
			Message:   "something happened",
			CreatedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	events, err := q.ListRecentEvents(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("ListRecentEvents returned %d, want 2", len(events))
	}
	if events[0].CreatedAt.Before(events[1].CreatedAt) {
		t.Errorf("events not ordered newest first")
	}
}
