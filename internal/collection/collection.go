// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package collection implements the ordered-list editing contract shared by
// every list-valued portfolio section (skills, projects, blog, gallery,
// experiences, studies). It is implemented exactly once: each section only
// supplies its element type and a commit callback that persists the full
// document after a mutation.
package collection

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by Update when no element carries the id.
	ErrNotFound = errors.New("element not found")

	// ErrOutOfRange is returned by Reorder when an index is outside [0, n-1].
	ErrOutOfRange = errors.New("index out of range")

	// ErrReadOnly is returned by mutating operations on a list created
	// without a commit callback (view mode: only Items is usable).
	ErrReadOnly = errors.New("collection is read-only")
)

// Element is the capability contract every list entry satisfies: a stable
// string id and an order integer. With* return modified copies, keeping
// element values immutable from the list's point of view.
type Element[T any] interface {
	ElementID() string
	ElementOrder() int
	WithElementID(string) T
	WithElementOrder(int) T
}

// CommitFunc persists the full list back into the document. It is invoked
// after every successful mutation; its error is surfaced to the caller but
// the in-memory mutation is kept (the UI shows the failure and retries).
type CommitFunc[T Element[T]] func(ctx context.Context, items []T) error

// List manages one ordered section. The order field is the single source of
// truth for sequence: reads sort by it, never by slice position.
type List[T Element[T]] struct {
	items  []T
	commit CommitFunc[T]
	newID  func() string
}

// Option configures a List.
type Option[T Element[T]] func(*List[T])

// WithCommit makes the list editable, persisting through fn after each mutation.
func WithCommit[T Element[T]](fn CommitFunc[T]) Option[T] {
	return func(l *List[T]) { l.commit = fn }
}

// WithIDGenerator overrides the id generator. The default is a random UUID:
// collision-resistant by construction, unlike the timestamp-string ids some
// earlier exports carry (those remain valid, they are just never generated).
func WithIDGenerator[T Element[T]](fn func() string) Option[T] {
	return func(l *List[T]) { l.newID = fn }
}

// New wraps items in a List. Without WithCommit the list is read-only.
func New[T Element[T]](items []T, opts ...Option[T]) *List[T] {
	l := &List[T]{
		items: append([]T(nil), items...),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return len(l.items) }

// Items returns the elements sorted ascending by order. The sort is
// recomputed on every call.
func (l *List[T]) Items() []T {
	out := append([]T(nil), l.items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ElementOrder() < out[j].ElementOrder()
	})
	return out
}

// Add assigns the element a fresh id and order equal to the current length,
// appends it, and commits. Returns the created element.
func (l *List[T]) Add(ctx context.Context, el T) (T, error) {
	var zero T
	if l.commit == nil {
		return zero, ErrReadOnly
	}
	el = el.WithElementID(l.newID()).WithElementOrder(len(l.items))
	l.items = append(l.items, el)
	if err := l.commit(ctx, l.Items()); err != nil {
		return el, err
	}
	return el, nil
}

// Update applies fn to the element with the given id and commits. The
// element's id and order survive the patch untouched. Returns ErrNotFound
// if the id is absent; an error from fn aborts before any mutation.
func (l *List[T]) Update(ctx context.Context, id string, fn func(T) (T, error)) error {
	if l.commit == nil {
		return ErrReadOnly
	}
	idx := l.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	cur := l.items[idx]
	next, err := fn(cur)
	if err != nil {
		return err
	}
	l.items[idx] = next.WithElementID(cur.ElementID()).WithElementOrder(cur.ElementOrder())
	return l.commit(ctx, l.Items())
}

// Remove deletes the element with the given id, renumbers the remainder
// contiguously from 0 preserving relative sequence, and commits. An unknown
// id is a silent no-op (tolerates double-clicks): the list is untouched and
// no commit is issued.
func (l *List[T]) Remove(ctx context.Context, id string) error {
	if l.commit == nil {
		return ErrReadOnly
	}
	if l.indexOf(id) < 0 {
		return nil
	}
	kept := make([]T, 0, len(l.items)-1)
	for _, el := range l.Items() {
		if el.ElementID() != id {
			kept = append(kept, el)
		}
	}
	l.items = renumber(kept)
	return l.commit(ctx, l.Items())
}

// Reorder moves the element at position from (over the order-sorted list)
// to position to, renumbers every element to its new position, and commits.
func (l *List[T]) Reorder(ctx context.Context, from, to int) error {
	if l.commit == nil {
		return ErrReadOnly
	}
	n := len(l.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrOutOfRange
	}
	sorted := l.Items()
	el := sorted[from]
	sorted = append(sorted[:from], sorted[from+1:]...)
	sorted = append(sorted[:to], append([]T{el}, sorted[to:]...)...)
	l.items = renumber(sorted)
	return l.commit(ctx, l.Items())
}

// indexOf returns the slice index of the element with the given id, or -1.
func (l *List[T]) indexOf(id string) int {
	for i, el := range l.items {
		if el.ElementID() == id {
			return i
		}
	}
	return -1
}

// renumber rewrites order values to match slice positions 0..n-1.
func renumber[T Element[T]](items []T) []T {
	for i, el := range items {
		items[i] = el.WithElementOrder(i)
	}
	return items
}
