// File: doc.go
// Title: C-minus Front End Package Documentation
// Description: Scanner, parser and syntax tree for the C-minus teaching
//              language, with the classic listing output.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with parser and AST
// - 2026-10-17 v0.2.0: Rewritten as the C-minus front end

/*
Package cminus implements the front end of a C-minus compiler.

Package: cminus
Title: C-minus Front End
Description: Turns C-minus source text into a syntax tree. The scanner is a
             hand-written state machine with one character of pushback; the
             parser is recursive descent with one token of lookahead and
             reports syntax errors without stopping.

Key Features:
  • DFA scanner with line echo and token trace hooks
  • Recursive descent parser with single-token error recovery
  • Variant syntax tree with visitor, indented printer and YAML export
  • Classic listing layout ("CMINUS PARSING:", ">>> Syntax error at line ...")
  • Structured logging and coded errors from foundation/core

Sub-packages:

	token    token kinds, reserved words and listing descriptions
	scanner  the DFA scanner
	parser   the recursive descent parser and syntax errors
	ast      syntax tree nodes, traversal, printing and export
	diag     the diagnostics sink and the listing writer

Usage:

	result, err := cminus.Compile("prog.c-", file, cminus.Options{
		Flags:   diag.DefaultFlags(),
		Listing: out,
	})
	if err != nil {
		return err // the source could not be read or the listing written
	}
	for _, e := range result.Errors {
		fmt.Println(e)
	}

Syntax errors never fail Compile; they are collected in Result.Errors and
written to the listing as they are found.
*/
package cminus
