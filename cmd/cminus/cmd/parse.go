// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     cmd
// Description: parse command, the default action of the CLI
// Author:      Mike Stoffels
// Created:     2025-12-06
// Modified:    2026-10-17
// License:     MIT
// ============================================================================

package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/cminus/foundation/cminus"
	mdwerror "github.com/msto63/cminus/foundation/core/error"
	mdwlog "github.com/msto63/cminus/foundation/core/log"
	"github.com/msto63/cminus/internal/store"
)

func newParseCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and write the listing",
		Long: `Parses a C-minus source file and writes the listing.

The listing starts with "CMINUS PARSING:" and contains, depending
on the trace flags, the echoed source lines, the token trace,
every syntax error and finally the syntax tree.

Syntax errors do not change the exit status; only a missing
source file or an unwritable listing does.`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, o, args[0])
		},
	}
}

func runParse(cmd *cobra.Command, o *rootOptions, name string) error {
	s, err := newSession(cmd, o)
	if err != nil {
		return err
	}

	res, listing, err := s.compileFile(name, store.CommandParse)
	if err != nil {
		return err
	}

	printSummary(s.out, res, listing)
	return nil
}

// compileFile compiles one source file, writes its listing and records the run.
// It returns the result and the listing path ("-" for stdout).
func (s *session) compileFile(name, command string) (*cminus.Result, string, error) {
	path := s.sourcePath(name)

	src, err := openSource(path)
	if err != nil {
		return nil, "", err
	}
	defer src.Close()

	listingPath, listing, closeListing, err := s.openListing(path)
	if err != nil {
		return nil, "", err
	}

	res, err := cminus.Compile(path, src, s.compileOptions(listing))
	if cerr := closeListing(); cerr != nil && err == nil {
		err = mdwerror.Wrap(cerr, "failed to close listing").
			WithCode(mdwerror.CodeListingWrite).
			WithDetail("path", listingPath)
	}
	if err != nil {
		return nil, "", err
	}

	s.record(store.FromResult(command, res))
	s.logger.Debug("Listing written",
		mdwlog.Fields{"source": path, "listing": listingPath})

	return res, listingPath, nil
}

// openListing creates the listing destination for a source file
func (s *session) openListing(source string) (string, io.Writer, func() error, error) {
	if s.opts.output == "-" {
		return "-", s.out, func() error { return nil }, nil
	}

	path := s.opts.output
	if path == "" {
		path = cminus.ListingPath(source, s.cfg.Output.ListingSuffix)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", nil, nil, mdwerror.Wrap(err, "failed to create listing").
			WithCode(mdwerror.CodeListingWrite).
			WithDetail("path", path)
	}
	return path, f, f.Close, nil
}

func sourceNotFound(path string, cause error) error {
	return mdwerror.Newf("File %s not found", path).
		WithCode(mdwerror.CodeSourceNotFound).
		WithDetail("path", path).
		WithDetail("cause", cause.Error())
}
