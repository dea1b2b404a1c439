// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mail delivers contact form submissions through the Resend HTTP
// API (https://resend.com/docs/api-reference/emails/send-email).
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mileusna/useragent"
)

const (
	// Resend send endpoint
	sendURL = "https://api.resend.com/emails"
	// Timeout for delivery requests
	sendTimeout = 10 * time.Second
)

// Message is a contact form submission.
type Message struct {
	Name    string
	Email   string
	Body    string
	// UserAgent is the submitter's raw User-Agent header; it is summarized
	// into the notification for context.
	UserAgent string
}

// SendResult carries the provider's response for a delivered message.
type SendResult struct {
	ID string `json:"id"`
}

// Sender delivers contact notifications.
type Sender interface {
	Send(ctx context.Context, msg Message) (*SendResult, error)
}

// ResendSender sends mail through the Resend API.
type ResendSender struct {
	apiKey string
	from   string
	to     string
	url    string
	client *http.Client
}

// NewResendSender creates a sender using the given API key and addresses.
func NewResendSender(apiKey, from, to string) *ResendSender {
	return &ResendSender{
		apiKey: apiKey,
		from:   from,
		to:     to,
		url:    sendURL,
		client: &http.Client{Timeout: sendTimeout},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	ReplyTo string   `json:"reply_to,omitempty"`
	HTML    string   `json:"html"`
}

type sendError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Send posts the notification email. The submitter's address goes into
// Reply-To so the recipient can answer directly.
func (s *ResendSender) Send(ctx context.Context, msg Message) (*SendResult, error) {
	payload, err := json.Marshal(sendRequest{
		From:    s.from,
		To:      []string{s.to},
		Subject: fmt.Sprintf("New Message from %s", msg.Name),
		ReplyTo: msg.Email,
		HTML:    renderHTML(msg),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mail delivery request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("read mail response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr sendError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("mail provider rejected message: %s (%s)", apiErr.Message, apiErr.Name)
		}
		return nil, fmt.Errorf("mail provider returned status %d", resp.StatusCode)
	}

	var result SendResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse mail response: %w", err)
	}
	return &result, nil
}

// renderHTML builds the notification body. All submitted values are
// HTML-escaped; the message preserves line breaks.
func renderHTML(msg Message) string {
	var sb strings.Builder
	sb.WriteString("<h2>New Contact Form Submission</h2>")
	sb.WriteString("<p><strong>Name:</strong> " + html.EscapeString(msg.Name) + "</p>")
	sb.WriteString("<p><strong>Email:</strong> " + html.EscapeString(msg.Email) + "</p>")
	sb.WriteString("<p><strong>Message:</strong></p>")
	sb.WriteString("<p>" + strings.ReplaceAll(html.EscapeString(msg.Body), "\n", "<br>") + "</p>")
	if summary := summarizeUserAgent(msg.UserAgent); summary != "" {
		sb.WriteString("<p><em>Sent from " + html.EscapeString(summary) + "</em></p>")
	}
	return sb.String()
}

// summarizeUserAgent condenses a raw User-Agent header into "Browser on OS".
func summarizeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.Parse(raw)
	switch {
	case ua.Name != "" && ua.OS != "":
		return ua.Name + " on " + ua.OS
	case ua.Name != "":
		return ua.Name
	default:
		return ""
	}
}
