// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/kordy/folio/internal/markdown"
	"github.com/kordy/folio/internal/model"
)

// GetPortfolio serves the complete document. The read path never fails:
// an empty or broken store yields the default document, still as 200.
// With ?render=html the Markdown-bearing text fields are additionally
// converted to sanitized HTML.
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	doc := h.svc.Fetch(r.Context())

	if r.URL.Query().Get("render") == "html" {
		renderDocument(doc)
	}

	WriteJSON(w, http.StatusOK, doc)
}

// PutPortfolio replaces the whole document. A payload missing any of the
// required top-level sections is rejected with 400 before anything is
// written; persistence failures surface as 500.
func (h *Handler) PutPortfolio(w http.ResponseWriter, r *http.Request) {
	var doc model.PortfolioDocument
	if err := decodeJSON(w, r, &doc, maxBodyBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.svc.Save(r.Context(), &doc); err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("Missing required section: %s", ve.Section))
			return
		}
		slog.Error("failed to save portfolio", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Portfolio saved successfully",
	})
}

// renderDocument converts the Markdown-bearing fields in place. Rendering
// is best-effort: a field that fails to convert keeps its raw text.
func renderDocument(doc *model.PortfolioDocument) {
	if doc.About != nil {
		if out, err := markdown.ToHTML(doc.About.Description); err == nil {
			doc.About.Description = out
		}
	}
	for i, post := range doc.Blog {
		if out, err := markdown.ToHTML(post.Excerpt); err == nil {
			doc.Blog[i].Excerpt = out
		}
	}
	for i, project := range doc.Projects {
		if project.DetailedDescription == "" {
			continue
		}
		if out, err := markdown.ToHTML(project.DetailedDescription); err == nil {
			doc.Projects[i].DetailedDescription = out
		}
	}
}
