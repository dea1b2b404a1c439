// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"

	"github.com/kordy/folio/internal/collection"
	"github.com/kordy/folio/internal/model"
)

// Section names accepted by (*Editor).Section.
var SectionNames = []string{"skills", "projects", "blog", "gallery", "experiences", "studies"}

// Editor is the edit-mode view of the document: each list-valued section is
// exposed as an ordered collection whose every mutation writes the complete
// document back through the portfolio service. A read-only editor (edit
// mode off) returns lists without a commit callback, so only reads work.
type Editor struct {
	svc      *PortfolioService
	doc      *model.PortfolioDocument
	editable bool
}

// Editor fetches the current document and wraps it for editing.
func (s *PortfolioService) Editor(ctx context.Context, editable bool) *Editor {
	return &Editor{svc: s, doc: s.Fetch(ctx), editable: editable}
}

// Document returns the underlying document, reflecting all edits so far.
func (e *Editor) Document() *model.PortfolioDocument { return e.doc }

// Skills returns the skills section as an ordered collection.
func (e *Editor) Skills() *collection.List[model.Skill] {
	return newList(e, e.doc.Skills, func(items []model.Skill) { e.doc.Skills = items })
}

// Projects returns the projects section as an ordered collection.
func (e *Editor) Projects() *collection.List[model.Project] {
	return newList(e, e.doc.Projects, func(items []model.Project) { e.doc.Projects = items })
}

// Blog returns the blog section as an ordered collection.
func (e *Editor) Blog() *collection.List[model.BlogPost] {
	return newList(e, e.doc.Blog, func(items []model.BlogPost) { e.doc.Blog = items })
}

// Gallery returns the gallery section as an ordered collection.
func (e *Editor) Gallery() *collection.List[model.GalleryItem] {
	return newList(e, e.doc.Gallery, func(items []model.GalleryItem) { e.doc.Gallery = items })
}

// Experiences returns the about section's work history as an ordered collection.
func (e *Editor) Experiences() *collection.List[model.Experience] {
	return newList(e, e.doc.About.Experiences, func(items []model.Experience) { e.doc.About.Experiences = items })
}

// Studies returns the about section's education history as an ordered collection.
func (e *Editor) Studies() *collection.List[model.Study] {
	return newList(e, e.doc.About.Studies, func(items []model.Study) { e.doc.About.Studies = items })
}

// Section returns the named section as a type-erased collection, or false
// for an unknown name.
func (e *Editor) Section(name string) (collection.JSONList, bool) {
	switch name {
	case "skills":
		return e.Skills().JSON(), true
	case "projects":
		return e.Projects().JSON(), true
	case "blog":
		return e.Blog().JSON(), true
	case "gallery":
		return e.Gallery().JSON(), true
	case "experiences":
		return e.Experiences().JSON(), true
	case "studies":
		return e.Studies().JSON(), true
	}
	return nil, false
}

// newList binds a document list field to the editor: commits splice the new
// list into the document and save the whole thing.
func newList[T collection.Element[T]](e *Editor, items []T, assign func([]T)) *collection.List[T] {
	if !e.editable {
		return collection.New(items)
	}
	return collection.New(items, collection.WithCommit[T](func(ctx context.Context, updated []T) error {
		assign(updated)
		return e.svc.Save(ctx, e.doc)
	}))
}
