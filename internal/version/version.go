// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import "fmt"

// Injected at build time via ldflags, e.g.
// -ldflags "-X github.com/kordy/folio/internal/version.Version=v1.0.0"
var (
	Version   = "dev"     // Semantic version from git tags
	GitCommit = "unknown" // Short git commit hash
	BuildTime = "unknown" // Build timestamp in RFC3339 format
)

// String returns the version line printed by the -version flag.
func String() string {
	return fmt.Sprintf("folio %s (commit: %s, built: %s)", Version, GitCommit, BuildTime)
}
