// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "fmt"

// ValidationError reports a document missing a required top-level section.
// Handlers map it to 400.
type ValidationError struct {
	Section string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required section: %s", e.Section)
}

// PersistenceError reports a failed write to the underlying store.
// Handlers map it to 500. Read-path errors are never surfaced: fetch
// falls back to the default document instead.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
