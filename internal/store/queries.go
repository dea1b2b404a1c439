// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Queries wraps a database handle with typed accessors for the portfolio,
// files, and events tables. All statements use ? placeholders so they run
// unchanged on SQLite and MySQL.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance for the given database.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// Portfolio is one row of the portfolio table: a JSON document under a
// fixed key. In practice the table holds a single row.
type Portfolio struct {
	Key       string
	Data      []byte
	UpdatedAt time.Time
}

// GetPortfolio returns the document stored under key.
// Returns sql.ErrNoRows if the store is empty.
func (q *Queries) GetPortfolio(ctx context.Context, key string) (Portfolio, error) {
	var p Portfolio
	err := q.db.QueryRowContext(ctx,
		`SELECT key, data, updated_at FROM portfolio WHERE key = ?`, key,
	).Scan(&p.Key, &p.Data, &p.UpdatedAt)
	return p, err
}

// UpsertPortfolioParams are the inputs for UpsertPortfolio.
type UpsertPortfolioParams struct {
	Key       string
	Data      []byte
	UpdatedAt time.Time
}

// UpsertPortfolio creates or overwrites the document under the given key.
// There is deliberately no read-modify-write guard: concurrent saves race
// and the last write wins in full, at document granularity.
func (q *Queries) UpsertPortfolio(ctx context.Context, arg UpsertPortfolioParams) error {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE portfolio SET data = ?, updated_at = ? WHERE key = ?`,
		arg.Data, arg.UpdatedAt, arg.Key,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO portfolio (key, data, updated_at) VALUES (?, ?, ?)`,
			arg.Key, arg.Data, arg.UpdatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// File is one uploaded file, stored as base64 text alongside its metadata.
// VariantOf points at the original's uuid for derived files (thumbnails).
type File struct {
	UUID      string
	Filename  string
	MimeType  string
	Data      string
	VariantOf sql.NullString
	CreatedAt time.Time
}

// CreateFileParams are the inputs for CreateFile.
type CreateFileParams struct {
	UUID      string
	Filename  string
	MimeType  string
	Data      string
	VariantOf sql.NullString
	CreatedAt time.Time
}

// CreateFile stores an uploaded file.
func (q *Queries) CreateFile(ctx context.Context, arg CreateFileParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO files (uuid, filename, mime_type, data, variant_of, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.UUID, arg.Filename, arg.MimeType, arg.Data, arg.VariantOf, arg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting file: %w", err)
	}
	return nil
}

// GetFile returns a stored file by uuid, payload included.
func (q *Queries) GetFile(ctx context.Context, uuid string) (File, error) {
	var f File
	err := q.db.QueryRowContext(ctx,
		`SELECT uuid, filename, mime_type, data, variant_of, created_at
		 FROM files WHERE uuid = ?`, uuid,
	).Scan(&f.UUID, &f.Filename, &f.MimeType, &f.Data, &f.VariantOf, &f.CreatedAt)
	return f, err
}

// FileInfo is file metadata without the payload, for listings and cleanup.
type FileInfo struct {
	UUID      string
	Filename  string
	MimeType  string
	VariantOf sql.NullString
	CreatedAt time.Time
}

// ListFileInfo returns metadata for all stored files, oldest first.
func (q *Queries) ListFileInfo(ctx context.Context) ([]FileInfo, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT uuid, filename, mime_type, variant_of, created_at
		 FROM files ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []FileInfo
	for rows.Next() {
		var fi FileInfo
		if err := rows.Scan(&fi.UUID, &fi.Filename, &fi.MimeType, &fi.VariantOf, &fi.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, fi)
	}
	return out, rows.Err()
}

// DeleteFile removes a stored file and any variants derived from it.
func (q *Queries) DeleteFile(ctx context.Context, uuid string) error {
	_, err := q.db.ExecContext(ctx,
		`DELETE FROM files WHERE uuid = ? OR variant_of = ?`, uuid, uuid,
	)
	return err
}

// Event is one row of the application event log.
type Event struct {
	ID        string
	Level     string
	Category  string
	Message   string
	Metadata  sql.NullString
	CreatedAt time.Time
}

// CreateEventParams are the inputs for CreateEvent.
type CreateEventParams struct {
	ID        string
	Level     string
	Category  string
	Message   string
	Metadata  sql.NullString
	CreatedAt time.Time
}

// CreateEvent appends an entry to the event log.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO events (id, level, category, message, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.ID, arg.Level, arg.Category, arg.Message, arg.Metadata, arg.CreatedAt,
	)
	return err
}

// ListRecentEvents returns the newest limit entries from the event log.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, level, category, message, metadata, created_at
		 FROM events ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
