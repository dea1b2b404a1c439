// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kordy/folio/internal/collection"
	"github.com/kordy/folio/internal/model"
)

// section resolves the {section} URL parameter into an editable collection.
// Writes 404 and returns nil for unknown section names.
func (h *Handler) section(w http.ResponseWriter, r *http.Request) collection.JSONList {
	name := chi.URLParam(r, "section")
	list, ok := h.svc.Editor(r.Context(), true).Section(name)
	if !ok {
		WriteError(w, http.StatusNotFound, "Unknown section: "+name)
		return nil
	}
	return list
}

// ListSection returns the section's elements in display order.
func (h *Handler) ListSection(w http.ResponseWriter, r *http.Request) {
	list := h.section(w, r)
	if list == nil {
		return
	}
	WriteJSON(w, http.StatusOK, list.Items())
}

// AddElement appends a new element to the section. The element's id and
// order come from the server; any values in the payload are ignored.
func (h *Handler) AddElement(w http.ResponseWriter, r *http.Request) {
	list := h.section(w, r)
	if list == nil {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	el, err := list.AddJSON(r.Context(), body)
	if err != nil {
		h.writeSectionError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "element": el})
}

// UpdateElement merges a partial payload into the identified element.
// Fields absent from the payload keep their stored values.
func (h *Handler) UpdateElement(w http.ResponseWriter, r *http.Request) {
	list := h.section(w, r)
	if list == nil {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := list.UpdateJSON(r.Context(), chi.URLParam(r, "id"), body); err != nil {
		h.writeSectionError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// RemoveElement deletes the identified element. Removing an id that does
// not exist succeeds without changing anything.
func (h *Handler) RemoveElement(w http.ResponseWriter, r *http.Request) {
	list := h.section(w, r)
	if list == nil {
		return
	}

	if err := list.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeSectionError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ReorderSection moves an element between display positions.
func (h *Handler) ReorderSection(w http.ResponseWriter, r *http.Request) {
	list := h.section(w, r)
	if list == nil {
		return
	}

	var req reorderRequest
	if err := decodeJSON(w, r, &req, maxBodyBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := list.Reorder(r.Context(), req.From, req.To); err != nil {
		h.writeSectionError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// writeSectionError maps collection and persistence errors to wire responses.
func (h *Handler) writeSectionError(w http.ResponseWriter, err error) {
	var (
		ve      *model.ValidationError
		syntax  *json.SyntaxError
		badType *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, collection.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Element not found")
	case errors.Is(err, collection.ErrOutOfRange):
		WriteError(w, http.StatusBadRequest, "Position out of range")
	case errors.As(err, &ve), errors.As(err, &syntax), errors.As(err, &badType):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("section edit failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
