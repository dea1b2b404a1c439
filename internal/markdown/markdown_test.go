// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		want    string
		notWant string
	}{
		{"bold", "Hello **world**", "<strong>world</strong>", ""},
		{"heading", "# Title", "<h1", ""},
		{"link", "[site](https://example.com)", `href="https://example.com"`, ""},
		{"gfm strikethrough", "~~gone~~", "<del>gone</del>", ""},
		{"script stripped", "hi <script>alert(1)</script>", "", "<script>"},
		{"event handler stripped", `<img src="x" onerror="alert(1)">`, "", "onerror"},
		{"javascript url stripped", "[x](javascript:alert(1))", "", "javascript:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			if tt.want != "" && !strings.Contains(got, tt.want) {
				t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.source, got, tt.want)
			}
			if tt.notWant != "" && strings.Contains(got, tt.notWant) {
				t.Errorf("ToHTML(%q) = %q, must not contain %q", tt.source, got, tt.notWant)
			}
		})
	}
}

func TestToHTMLEmpty(t *testing.T) {
	got, err := ToHTML("")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if strings.TrimSpace(got) != "" {
		t.Errorf("ToHTML(\"\") = %q, want empty", got)
	}
}
