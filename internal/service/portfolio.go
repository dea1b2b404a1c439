// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the portfolio store: durable single-document
// persistence with a default fallback, and the document editor on top of it.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/kordy/folio/internal/cache"
	"github.com/kordy/folio/internal/model"
	"github.com/kordy/folio/internal/store"
)

const cacheKeyDocument = "portfolio:document"

// PortfolioService owns the singleton portfolio document. Reads are
// fail-soft (any error collapses to the default document); writes validate
// and upsert under the fixed singleton key.
type PortfolioService struct {
	queries  *store.Queries
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewPortfolioService creates a portfolio service. The cache may be nil.
func NewPortfolioService(db *sql.DB, c cache.Cache) *PortfolioService {
	return &PortfolioService{
		queries:  store.New(db),
		cache:    c,
		cacheTTL: time.Hour,
	}
}

// Fetch returns the stored document, or the statically defined default when
// the store is empty, unreadable, or holds an undecodable row. It never
// fails the caller: the read path masks every error.
func (s *PortfolioService) Fetch(ctx context.Context) *model.PortfolioDocument {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKeyDocument); err == nil {
			var doc model.PortfolioDocument
			if err := json.Unmarshal(data, &doc); err == nil {
				return &doc
			}
			_ = s.cache.Delete(ctx, cacheKeyDocument)
		}
	}

	row, err := s.queries.GetPortfolio(ctx, model.SingletonKey)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Warn("portfolio read failed, serving default document", "error", err)
		}
		return model.DefaultDocument()
	}

	var doc model.PortfolioDocument
	if err := json.Unmarshal(row.Data, &doc); err != nil {
		slog.Warn("stored portfolio document is not valid JSON, serving default", "error", err)
		return model.DefaultDocument()
	}
	doc.UpdatedAt = row.UpdatedAt.UTC().Format(time.RFC3339)

	if s.cache != nil {
		if data, err := json.Marshal(&doc); err == nil {
			_ = s.cache.Set(ctx, cacheKeyDocument, data, s.cacheTTL)
		}
	}
	return &doc
}

// Save validates the document and upserts it under the singleton key,
// stamping UpdatedAt. A document missing one of the seven required sections
// fails with *model.ValidationError and leaves the stored document
// unchanged; a failed write fails with *model.PersistenceError.
//
// Two concurrent saves race and the last writer wins in full. That is the
// accepted single-editor behavior, not a gap to close with locking.
func (s *PortfolioService) Save(ctx context.Context, doc *model.PortfolioDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	doc.UpdatedAt = now.Format(time.RFC3339)

	data, err := json.Marshal(doc)
	if err != nil {
		return &model.PersistenceError{Op: "encoding document", Err: err}
	}

	if err := s.queries.UpsertPortfolio(ctx, store.UpsertPortfolioParams{
		Key:       model.SingletonKey,
		Data:      data,
		UpdatedAt: now,
	}); err != nil {
		return &model.PersistenceError{Op: "saving document", Err: err}
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKeyDocument, data, s.cacheTTL)
	}
	return nil
}
