// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Every list-valued section shares the same identity contract: a string id
// assigned at creation and never reassigned, plus an order integer that is
// kept contiguous from 0 by the collection editor. The methods below expose
// that contract to the generic editor in internal/collection.

// ElementID returns the skill's identifier.
func (s Skill) ElementID() string { return s.ID }

// ElementOrder returns the skill's position in the list.
func (s Skill) ElementOrder() int { return s.Ord }

// WithElementID returns a copy with the given identifier.
func (s Skill) WithElementID(id string) Skill { s.ID = id; return s }

// WithElementOrder returns a copy with the given position.
func (s Skill) WithElementOrder(n int) Skill { s.Ord = n; return s }

func (p Project) ElementID() string               { return p.ID }
func (p Project) ElementOrder() int               { return p.Ord }
func (p Project) WithElementID(id string) Project { p.ID = id; return p }
func (p Project) WithElementOrder(n int) Project  { p.Ord = n; return p }

func (b BlogPost) ElementID() string                { return b.ID }
func (b BlogPost) ElementOrder() int                { return b.Ord }
func (b BlogPost) WithElementID(id string) BlogPost { b.ID = id; return b }
func (b BlogPost) WithElementOrder(n int) BlogPost  { b.Ord = n; return b }

func (g GalleryItem) ElementID() string                   { return g.ID }
func (g GalleryItem) ElementOrder() int                   { return g.Ord }
func (g GalleryItem) WithElementID(id string) GalleryItem { g.ID = id; return g }
func (g GalleryItem) WithElementOrder(n int) GalleryItem  { g.Ord = n; return g }

func (e Experience) ElementID() string                  { return e.ID }
func (e Experience) ElementOrder() int                  { return e.Ord }
func (e Experience) WithElementID(id string) Experience { e.ID = id; return e }
func (e Experience) WithElementOrder(n int) Experience  { e.Ord = n; return e }

func (s Study) ElementID() string             { return s.ID }
func (s Study) ElementOrder() int             { return s.Ord }
func (s Study) WithElementID(id string) Study { s.ID = id; return s }
func (s Study) WithElementOrder(n int) Study  { s.Ord = n; return s }
