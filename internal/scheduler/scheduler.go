// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs, currently the cleanup
// of uploaded files no longer referenced by the portfolio document.
package scheduler

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kordy/folio/internal/model"
	"github.com/kordy/folio/internal/store"
)

// Scheduler owns the cron instance and the jobs registered on it.
type Scheduler struct {
	queries       *store.Queries
	cron          *cron.Cron
	logger        *slog.Logger
	retentionDays int
}

// New creates a scheduler. Files older than retentionDays that are not
// referenced from the portfolio document become eligible for deletion.
func New(db *sql.DB, logger *slog.Logger, retentionDays int) *Scheduler {
	return &Scheduler{
		queries:       store.New(db),
		cron:          cron.New(),
		logger:        logger,
		retentionDays: retentionDays,
	}
}

// Start registers the nightly orphan cleanup job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("30 3 * * *", func() {
		if err := s.CleanupOrphanFiles(context.Background()); err != nil {
			s.logger.Error("orphan file cleanup failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// CleanupOrphanFiles deletes stored files that are past the retention window
// and whose id does not appear anywhere in the portfolio document. Thumbnail
// variants are skipped directly; deleting an original removes its variants.
func (s *Scheduler) CleanupOrphanFiles(ctx context.Context) error {
	doc, err := s.queries.GetPortfolio(ctx, model.SingletonKey)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	files, err := s.queries.ListFileInfo(ctx)
	if err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	var removed int
	for _, fi := range files {
		if fi.VariantOf.Valid {
			continue
		}
		if fi.CreatedAt.After(cutoff) {
			continue
		}
		if bytes.Contains(doc.Data, []byte(fi.UUID)) {
			continue
		}

		if err := s.queries.DeleteFile(ctx, fi.UUID); err != nil {
			s.logger.Error("failed to delete orphan file",
				"file_id", fi.UUID,
				"filename", fi.Filename,
				"error", err,
			)
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("orphan file cleanup finished", "removed", removed)
	}
	return nil
}
