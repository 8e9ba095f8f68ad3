// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     treeviewer
// Description: Message types for async operations in the tree viewer
// Author:      Mike Stoffels
// Created:     2025-12-07
// Modified:    2026-10-17
// License:     MIT
// ============================================================================

package treeviewer

import (
	"github.com/msto63/cminus/foundation/cminus"
)

// Message types for tea.Cmd async operations

// resultLoadedMsg is sent when the source has been compiled
type resultLoadedMsg struct {
	result *cminus.Result
	err    error
}

// sourceChangedMsg is sent by the file watcher
type sourceChangedMsg struct{}
