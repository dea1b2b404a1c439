// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package collection

import (
	"context"
	"encoding/json"
	"fmt"
)

// JSONList erases the element type so HTTP handlers can edit any section
// through one code path. Obtain one via (*List[T]).JSON.
type JSONList interface {
	Len() int
	Items() any
	AddJSON(ctx context.Context, data []byte) (any, error)
	UpdateJSON(ctx context.Context, id string, data []byte) error
	Remove(ctx context.Context, id string) error
	Reorder(ctx context.Context, from, to int) error
}

// JSON returns a type-erased view of the list.
func (l *List[T]) JSON() JSONList { return jsonList[T]{l} }

type jsonList[T Element[T]] struct {
	l *List[T]
}

func (j jsonList[T]) Len() int { return j.l.Len() }

func (j jsonList[T]) Items() any { return j.l.Items() }

// AddJSON decodes the element fields and appends a new element. Any id or
// order in the payload is discarded: Add assigns both.
func (j jsonList[T]) AddJSON(ctx context.Context, data []byte) (any, error) {
	var el T
	if err := json.Unmarshal(data, &el); err != nil {
		return nil, fmt.Errorf("decoding element: %w", err)
	}
	return j.l.Add(ctx, el)
}

// UpdateJSON merges the patch into the stored element. Fields absent from
// the payload keep their current values; id and order cannot be patched.
func (j jsonList[T]) UpdateJSON(ctx context.Context, id string, data []byte) error {
	return j.l.Update(ctx, id, func(cur T) (T, error) {
		if err := json.Unmarshal(data, &cur); err != nil {
			return cur, fmt.Errorf("decoding patch: %w", err)
		}
		return cur, nil
	})
}

func (j jsonList[T]) Remove(ctx context.Context, id string) error {
	return j.l.Remove(ctx, id)
}

func (j jsonList[T]) Reorder(ctx context.Context, from, to int) error {
	return j.l.Reorder(ctx, from, to)
}
