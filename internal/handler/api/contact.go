// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/kordy/folio/internal/mail"
)

type sendEmailRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SendEmail forwards a contact form submission to the site owner's inbox.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req sendEmailRequest
	if err := decodeJSON(w, r, &req, maxBodyBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		WriteError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if h.sender == nil {
		slog.Error("contact form submitted but mail delivery is not configured")
		WriteError(w, http.StatusInternalServerError, "Failed to send email")
		return
	}

	result, err := h.sender.Send(r.Context(), mail.Message{
		Name:      req.Name,
		Email:     req.Email,
		Body:      req.Message,
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		slog.Error("failed to send contact email", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to send email")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    result,
	})
}
