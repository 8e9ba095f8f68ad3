// File: codes.go
// Title: Error Code Definitions
// Description: Error codes used by the cminus front end and its tooling.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-17 v0.2.0: Replaced platform codes with front-end codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Source and listing files
	CodeSourceNotFound Code = "SOURCE_NOT_FOUND"
	CodeSourceRead     Code = "SOURCE_READ"
	CodeListingWrite   Code = "LISTING_WRITE"

	// Front end diagnostics
	CodeLexical Code = "LEXICAL"
	CodeSyntax  Code = "SYNTAX"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Tooling
	CodeStoreError Code = "STORE_ERROR"
	CodeWatchError Code = "WATCH_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsFileError reports whether the code concerns source or listing files
func (c Code) IsFileError() bool {
	switch c {
	case CodeSourceNotFound, CodeSourceRead, CodeListingWrite:
		return true
	default:
		return false
	}
}

// IsDiagnostic reports whether the code describes a problem in the
// compiled program rather than in the environment
func (c Code) IsDiagnostic() bool {
	return c == CodeLexical || c == CodeSyntax
}
