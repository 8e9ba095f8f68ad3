// File: cminus.go
// Title: C-minus Front End Interface
// Description: High-level API that wires scanner, parser and listing
//              together: compile a source into a syntax tree, scan it into
//              a token list, and derive the source and listing file names
//              used by the command line tool.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial engine implementation
// - 2026-10-17 v0.2.0: Replaced command engine with the C-minus front end

package cminus

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/cminus/foundation/cminus/ast"
	"github.com/msto63/cminus/foundation/cminus/diag"
	"github.com/msto63/cminus/foundation/cminus/parser"
	"github.com/msto63/cminus/foundation/cminus/scanner"
	"github.com/msto63/cminus/foundation/cminus/token"
	mdwerror "github.com/msto63/cminus/foundation/core/error"
	mdwlog "github.com/msto63/cminus/foundation/core/log"
)

// Default file name suffixes
const (
	DefaultSourceSuffix  = ".c-"
	DefaultListingSuffix = ".txt"
)

// Listing section titles
const (
	ParseHeader = "CMINUS PARSING:"
	ScanHeader  = "CMINUS COMPILATION:"
	TreeSection = "Syntax tree:"
)

// Format selects how the syntax tree is written to the listing
type Format string

// Tree formats
const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	}
	return "", mdwerror.Newf("unknown tree format %q", s).
		WithCode(mdwerror.CodeInvalidInput).
		WithDetail("format", s)
}

// Options configures a compile or scan run
type Options struct {
	// Logger for front end diagnostics (optional, defaults to the default logger)
	Logger *mdwlog.Logger

	// Flags controls echo and trace output in the listing
	Flags diag.Flags

	// Listing receives the listing; nil discards it
	Listing io.Writer

	// Format of the syntax tree in the listing (default: text)
	Format Format

	// RunID correlates log entries and history records; generated when empty
	RunID string
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = mdwlog.GetDefault()
	}
	if o.Listing == nil {
		o.Listing = io.Discard
	}
	if o.Format == "" {
		o.Format = FormatText
	}
	if o.RunID == "" {
		o.RunID = uuid.New().String()
	}
	return o
}

// Result is the outcome of one compile run
type Result struct {
	// Name of the compiled source
	Name string

	// RunID of the run
	RunID string

	// Program is the syntax tree; never nil, possibly incomplete
	Program *ast.Program

	// Errors holds the syntax errors in source order
	Errors parser.ErrorList

	// Consumed reports whether the parser reached the end of input
	Consumed bool

	// UnterminatedComment reports whether the input ended inside a comment
	UnterminatedComment bool

	// Tokens is the number of tokens read, EOF excluded
	Tokens int

	// Nodes is the number of nodes in the tree, the root included
	Nodes int

	// Duration of the run
	Duration time.Duration
}

// OK reports whether the source parsed without syntax errors
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Err returns the syntax errors as a SYNTAX-coded error, or nil
func (r *Result) Err() error {
	return r.Errors.Err()
}

// Compile scans and parses the source read from r. Syntax errors do not
// make Compile fail; they are returned in the result. The returned error
// reports read failures and listing write failures.
func Compile(name string, r io.Reader, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	logger := opts.Logger.WithName("cminus").WithRunID(opts.RunID).WithSource(name)
	timer := logger.StartTimer("compile").WithLevel(mdwlog.LevelDebug)

	listing := diag.NewListing(opts.Listing, opts.Flags)
	listing.Header(ParseHeader)

	sc := scanner.New(r, scanner.Options{Logger: logger, Sink: listing})
	p := parser.New(sc, parser.Options{Logger: logger, Sink: listing})
	prog, errs := p.Parse()

	if err := sc.Err(); err != nil {
		timer.StopWithError(err)
		return nil, mdwerror.Wrap(err, "compile failed").
			WithOperation("cminus.Compile").
			WithDetail("source", name)
	}

	if opts.Flags.TraceParse {
		listing.Section(TreeSection)
		if err := writeTree(listing, prog, opts.Format); err != nil {
			timer.StopWithError(err)
			return nil, err
		}
	}

	if err := listing.Flush(); err != nil {
		timer.StopWithError(err)
		return nil, mdwerror.Wrap(err, "failed to write listing").
			WithCode(mdwerror.CodeListingWrite).
			WithOperation("cminus.Compile").
			WithDetail("source", name)
	}

	result := &Result{
		Name:                name,
		RunID:               opts.RunID,
		Program:             prog,
		Errors:              errs,
		Consumed:            p.Consumed(),
		UnterminatedComment: sc.UnterminatedComment(),
		Tokens:              p.Tokens(),
		Nodes:               ast.Count(prog),
	}
	result.Duration = timer.WithField("errors", len(errs)).Stop()

	if len(errs) > 0 {
		logger.Info("source has syntax errors", mdwlog.Fields{
			"errors":     len(errs),
			"first_line": errs[0].Line,
		})
	}
	return result, nil
}

// CompileString is Compile for in-memory source
func CompileString(name, src string, opts Options) (*Result, error) {
	return Compile(name, strings.NewReader(src), opts)
}

func writeTree(w io.Writer, prog *ast.Program, format Format) error {
	switch format {
	case FormatYAML:
		data, err := ast.MarshalYAML(prog)
		if err != nil {
			return mdwerror.Wrap(err, "failed to export syntax tree").
				WithCode(mdwerror.CodeInternal)
		}
		_, err = w.Write(data)
		return err
	default:
		return ast.Fprint(w, prog)
	}
}

// Scan reads the whole source and returns its tokens, the final EOF
// included. Lexical errors are Error tokens, not failures.
func Scan(r io.Reader, opts Options) ([]token.Token, error) {
	opts = opts.withDefaults()
	logger := opts.Logger.WithName("cminus").WithRunID(opts.RunID)

	listing := diag.NewListing(opts.Listing, opts.Flags)
	listing.Header(ScanHeader)

	sc := scanner.New(r, scanner.Options{Logger: logger, Sink: listing})
	var tokens []token.Token
	for {
		tok := sc.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	if err := sc.Err(); err != nil {
		return tokens, err
	}
	if err := listing.Flush(); err != nil {
		return tokens, mdwerror.Wrap(err, "failed to write listing").
			WithCode(mdwerror.CodeListingWrite).
			WithOperation("cminus.Scan")
	}

	logger.Debug("scan finished", mdwlog.Fields{"tokens": len(tokens) - 1})
	return tokens, nil
}

// RenderTree returns the syntax tree in the requested format
func RenderTree(prog *ast.Program, format Format) (string, error) {
	var buf bytes.Buffer
	if err := writeTree(&buf, prog, format); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ResolveSourcePath appends suffix to a file name that has no extension.
// An empty suffix means DefaultSourceSuffix.
func ResolveSourcePath(name, suffix string) string {
	if suffix == "" {
		suffix = DefaultSourceSuffix
	}
	if filepath.Ext(name) != "" {
		return name
	}
	return name + suffix
}

// ListingPath derives the listing file name from a source name by
// replacing its extension with suffix. An empty suffix means
// DefaultListingSuffix.
func ListingPath(source, suffix string) string {
	if suffix == "" {
		suffix = DefaultListingSuffix
	}
	return strings.TrimSuffix(source, filepath.Ext(source)) + suffix
}
