// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kordy/folio/internal/imaging"
	"github.com/kordy/folio/internal/store"
	"github.com/kordy/folio/internal/util"
)

type uploadRequest struct {
	Filename   string `json:"filename"`
	MimeType   string `json:"mimeType"`
	DataBase64 string `json:"dataBase64"`
}

// Upload stores a base64-encoded file in the database and returns the URL
// it can be fetched from. Image uploads additionally get a downscaled
// thumbnail variant stored alongside the original.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	// The base64 payload inflates the body by a third over the raw file.
	if err := decodeJSON(w, r, &req, h.maxUploadBytes+h.maxUploadBytes/2); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Filename == "" || req.MimeType == "" || req.DataBase64 == "" {
		WriteError(w, http.StatusBadRequest, "Missing filename, mimeType, or dataBase64")
		return
	}

	filename, err := util.SanitizeFilename(req.Filename)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid filename")
		return
	}

	// Tolerate data URL payloads; the stored form is always bare base64.
	payload := req.DataBase64
	if idx := strings.Index(payload, ","); idx != -1 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid base64 data")
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		WriteError(w, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	if err := h.queries.CreateFile(r.Context(), store.CreateFileParams{
		UUID:      id,
		Filename:  filename,
		MimeType:  req.MimeType,
		Data:      base64.StdEncoding.EncodeToString(data),
		CreatedAt: now,
	}); err != nil {
		slog.Error("failed to store uploaded file", "error", err, "filename", filename)
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := map[string]any{
		"ok":  true,
		"id":  id,
		"url": "/api/file?id=" + id,
	}

	if imaging.IsImage(imaging.DetectMimeType(data)) {
		if thumbID, err := h.storeThumbnail(r, id, filename, data, now); err != nil {
			slog.Warn("thumbnail generation failed", "error", err, "file_id", id)
		} else {
			resp["thumbnailUrl"] = "/api/file?id=" + thumbID
		}
	}

	WriteJSON(w, http.StatusOK, resp)
}

// storeThumbnail generates and persists the thumbnail variant for an image
// upload, returning the variant's id.
func (h *Handler) storeThumbnail(r *http.Request, originalID, filename string, data []byte, now time.Time) (string, error) {
	thumb, err := imaging.Thumbnail(data)
	if err != nil {
		return "", err
	}

	thumbID := uuid.NewString()
	if err := h.queries.CreateFile(r.Context(), store.CreateFileParams{
		UUID:      thumbID,
		Filename:  "thumb_" + filename,
		MimeType:  thumb.MimeType,
		Data:      base64.StdEncoding.EncodeToString(thumb.Data),
		VariantOf: sql.NullString{String: originalID, Valid: true},
		CreatedAt: now,
	}); err != nil {
		return "", err
	}
	return thumbID, nil
}

// GetFile streams a stored file back with its original MIME type and an
// attachment disposition.
func (h *Handler) GetFile(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id := q.Get("id")
	if id == "" {
		id = q.Get("fileId")
	}
	if id == "" {
		WriteError(w, http.StatusBadRequest, "Missing id")
		return
	}

	f, err := h.queries.GetFile(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteError(w, http.StatusNotFound, "File not found")
			return
		}
		slog.Error("failed to read stored file", "error", err, "file_id", id)
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	data, err := base64.StdEncoding.DecodeString(f.Data)
	if err != nil {
		slog.Error("stored file payload is not valid base64", "file_id", id, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	mimeType := f.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	name := f.Filename
	if name == "" {
		name = "file"
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
