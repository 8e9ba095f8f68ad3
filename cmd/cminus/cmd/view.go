// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     cmd
// Description: CLI command for the syntax tree viewer TUI
// Author:      Mike Stoffels
// Created:     2025-12-07
// Modified:    2026-10-17
// License:     MIT
// ============================================================================

package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/cminus/foundation/cminus"
	"github.com/msto63/cminus/internal/tui/treeviewer"
	"github.com/msto63/cminus/pkg/core/cache"
)

func newViewCmd(o *rootOptions) *cobra.Command {
	var watchSource bool

	viewCmd := &cobra.Command{
		Use:     "view <file>",
		Aliases: []string{"tree", "tui"},
		Short:   "Browse the syntax tree in a terminal UI",
		Long: `Starts the interactive syntax tree viewer.

The viewer shows the tree of a source file as a foldable outline
together with the syntax errors of the last parse:

  - Fold and unfold single nodes or the whole tree
  - Switch between the outline and the YAML export
  - Reload on demand or automatically on file changes

Keys:
  ↑/↓ j/k     Move
  PgUp/PgDn   Page
  g / G       First / last node
  Enter/Space Fold or unfold
  e / c       Expand / collapse all
  y           Toggle YAML view
  r           Reload
  q, Ctrl+C   Quit`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, o)
			if err != nil {
				return err
			}

			path := s.sourcePath(args[0])
			if _, err := os.Stat(path); err != nil {
				return sourceNotFound(path, err)
			}

			// The viewer renders the tree itself; no listing file is written
			return treeviewer.Run(treeviewer.Config{
				Source:   path,
				Load:     treeviewer.FileLoader(path, s.compileOptions(io.Discard), cache.New[*cminus.Result](cache.DefaultConfig())),
				Watch:    watchSource,
				Debounce: s.cfg.Watch.Debounce.Duration,
				Logger:   s.logger,
			})
		},
	}

	viewCmd.Flags().BoolVarP(&watchSource, "watch", "w", false, "Reload when the source file changes")

	return viewCmd
}
