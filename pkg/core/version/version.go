// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     version
// Description: Central version information for the cminus tool
// Author:      Mike Stoffels
// Created:     2025-12-06
// Modified:    2026-10-17
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Tool version
	Tool = "0.2.0"

	// Language version accepted by the front end
	Language = "C-minus 1.0"
)

// Build information, set by the linker:
//
//	go build -ldflags "-X github.com/msto63/cminus/pkg/core/version.Commit=$(git rev-parse --short HEAD)"
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns the one-line version banner
func String() string {
	return fmt.Sprintf("cminus %s (%s, commit %s, built %s, %s)",
		Tool, Language, Commit, BuildDate, runtime.Version())
}
