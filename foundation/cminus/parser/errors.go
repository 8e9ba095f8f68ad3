// File: errors.go
// Title: C-minus Syntax Errors
// Description: Syntax error records collected by the parser. No syntax
//              error is fatal; the parser reports and keeps going.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package parser

import (
	"fmt"
	"strings"

	"github.com/msto63/cminus/foundation/cminus/token"
	mdwerror "github.com/msto63/cminus/foundation/core/error"
)

// Error messages
const (
	MsgUnexpectedToken = "unexpected token"
	MsgUnexpectedType  = "unexpected type token"
	MsgConstantRange   = "integer constant out of range"
	MsgTrailingInput   = "code ends before file"
)

// SyntaxError is a single syntax error with the offending token
type SyntaxError struct {
	Line    int
	Column  int
	Message string
	Token   token.Token
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d:%d: %s -> %s", e.Line, e.Column, e.Message, e.Token.Describe())
}

// ErrorList is the ordered list of syntax errors of one parse
type ErrorList []*SyntaxError

// Error implements the error interface
func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no syntax errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d syntax errors:", len(l))
	for _, e := range l {
		b.WriteString("\n  ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// Err returns nil for an empty list and a SYNTAX-coded error otherwise
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return mdwerror.Wrap(l, "syntax errors in source").
		WithCode(mdwerror.CodeSyntax).
		WithDetail("count", len(l)).
		WithDetail("first_line", l[0].Line)
}
