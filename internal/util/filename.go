// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose helpers, including filename
// sanitization with Unicode transliteration.
package util

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// unsafeChars matches everything outside the conservative set of characters
// allowed in stored filenames.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// SanitizeFilename strips directory components and transliterates the name
// to safe ASCII. This prevents path traversal via filenames like
// "../../../etc/passwd" and keeps Content-Disposition headers simple.
// Returns an error if nothing usable remains.
func SanitizeFilename(filename string) (string, error) {
	safe := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if safe == "." || safe == ".." || safe == "" || safe == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename: %q", filename)
	}

	safe = unidecode.Unidecode(safe)
	safe = unsafeChars.ReplaceAllString(safe, "_")
	safe = strings.Trim(safe, "._")
	if safe == "" {
		return "", fmt.Errorf("invalid filename: %q", filename)
	}
	return safe, nil
}
