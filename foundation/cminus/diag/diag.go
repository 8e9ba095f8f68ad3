// File: diag.go
// Title: Diagnostics Sink
// Description: Write-only sink for source echo, token traces and syntax
//              error records, plus the Listing implementation that renders
//              them in the classic listing-file format.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package diag

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/msto63/cminus/foundation/cminus/token"
)

// Sink receives diagnostics from the scanner and the parser
type Sink interface {
	// EchoLine receives each physical source line as it is read
	EchoLine(line int, text string)
	// TraceToken receives each token as it is produced
	TraceToken(tok token.Token)
	// SyntaxError receives each syntax error record
	SyntaxError(line int, message string, tok token.Token)
}

// Discard is a Sink that drops everything
var Discard Sink = discard{}

type discard struct{}

func (discard) EchoLine(int, string) {}
func (discard) TraceToken(token.Token) {}
func (discard) SyntaxError(int, string, token.Token) {}

// Flags select which record kinds a Listing writes
type Flags struct {
	EchoSource bool
	TraceScan  bool
	TraceParse bool
}

// DefaultFlags matches the classic configuration: only parse output enabled
func DefaultFlags() Flags {
	return Flags{TraceParse: true}
}

// Listing writes diagnostics to a listing file. Syntax errors are always
// written; echo and scan trace follow the flags.
type Listing struct {
	mu    sync.Mutex
	w     *bufio.Writer
	flags Flags
	err   error
}

// NewListing creates a listing writer
func NewListing(w io.Writer, flags Flags) *Listing {
	return &Listing{w: bufio.NewWriter(w), flags: flags}
}

// Flags returns the listing flags
func (l *Listing) Flags() Flags {
	return l.flags
}

// EchoLine writes "%4d: <text>" when echo is enabled
func (l *Listing) EchoLine(line int, text string) {
	if !l.flags.EchoSource {
		return
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	l.printf("%4d: %s", line, text)
}

// TraceToken writes "\t%d: <token>" when scan tracing is enabled. The EOF
// record uses the echo layout instead.
func (l *Listing) TraceToken(tok token.Token) {
	if !l.flags.TraceScan {
		return
	}
	if tok.Kind == token.EOF {
		l.printf("%4d: %s\n", tok.Line, tok.Describe())
		return
	}
	l.printf("\t%d: %s\n", tok.Line, tok.Describe())
}

// SyntaxError writes "\n>>> Syntax error at line %d: <message> -> <token>"
func (l *Listing) SyntaxError(line int, message string, tok token.Token) {
	l.printf("\n>>> Syntax error at line %d: %s -> %s\n", line, message, tok.Describe())
}

// Header writes a section header line such as "CMINUS PARSING:"
func (l *Listing) Header(title string) {
	l.printf("%s\n", title)
}

// Section writes a blank line followed by a section title
func (l *Listing) Section(title string) {
	l.printf("\n%s\n", title)
}

// Write copies raw text, used for the printed syntax tree
func (l *Listing) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return 0, l.err
	}
	n, err := l.w.Write(p)
	if err != nil {
		l.err = err
	}
	return n, err
}

// Flush flushes buffered output and returns the first write error
func (l *Listing) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.err = l.w.Flush()
	return l.err
}

func (l *Listing) printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return
	}
	if _, err := fmt.Fprintf(l.w, format, args...); err != nil {
		l.err = err
	}
}

// Tee fans diagnostics out to several sinks
type Tee []Sink

// EchoLine implements Sink
func (t Tee) EchoLine(line int, text string) {
	for _, s := range t {
		s.EchoLine(line, text)
	}
}

// TraceToken implements Sink
func (t Tee) TraceToken(tok token.Token) {
	for _, s := range t {
		s.TraceToken(tok)
	}
}

// SyntaxError implements Sink
func (t Tee) SyntaxError(line int, message string, tok token.Token) {
	for _, s := range t {
		s.SyntaxError(line, message, tok)
	}
}
