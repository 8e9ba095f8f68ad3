// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     cmd
// Description: scan command, token listing without parsing
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/msto63/cminus/foundation/cminus"
	"github.com/msto63/cminus/foundation/cminus/token"
	mdwerror "github.com/msto63/cminus/foundation/core/error"
	"github.com/msto63/cminus/internal/store"
)

func newScanCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <file>",
		Short: "Scan a source file and list its tokens",
		Long: `Runs only the scanner over a source file.

The listing starts with "CMINUS COMPILATION:" and traces every
token up to and including EOF, one line per token. Illegal
characters show up as ERROR tokens.`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, o, args[0])
		},
	}
}

func runScan(cmd *cobra.Command, o *rootOptions, name string) error {
	s, err := newSession(cmd, o)
	if err != nil {
		return err
	}
	// Scanning without a trace would produce an empty listing
	s.cfg.Trace.TraceScan = true

	path := s.sourcePath(name)
	src, err := openSource(path)
	if err != nil {
		return err
	}
	defer src.Close()

	listingPath, listing, closeListing, err := s.openListing(path)
	if err != nil {
		return err
	}

	opts := s.compileOptions(listing)
	opts.RunID = uuid.New().String()

	start := time.Now()
	tokens, err := cminus.Scan(src, opts)
	if cerr := closeListing(); cerr != nil && err == nil {
		err = mdwerror.Wrap(cerr, "failed to close listing").
			WithCode(mdwerror.CodeListingWrite).
			WithDetail("path", listingPath)
	}
	if err != nil {
		return err
	}

	run := &store.Run{
		ID:       opts.RunID,
		Command:  store.CommandScan,
		Source:   path,
		Tokens:   len(tokens) - 1,
		Duration: time.Since(start),
	}
	for _, t := range tokens {
		if t.Kind == token.Error {
			if run.Errors == 0 {
				run.FirstErrorLine = t.Line
			}
			run.Errors++
			run.Messages = append(run.Messages, fmt.Sprintf("line %d:%d: %s", t.Line, t.Column, t.Describe()))
		}
	}
	s.record(run)

	if listingPath != "-" {
		status := okStyle.Render("✓")
		if run.Errors > 0 {
			status = warnStyle.Render("!")
		}
		fmt.Fprintf(s.out, "%s %s: %d tokens, %d illegal characters\n", status, path, run.Tokens, run.Errors)
		fmt.Fprintln(s.out, dimStyle.Render("  listing: "+listingPath))
	}
	return nil
}
