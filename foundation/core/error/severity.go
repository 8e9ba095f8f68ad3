// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels for errors and the default severity of each
//              error code.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-17 v0.2.0: Severity mapping for front-end codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a problem in the compiled program, not the tool
	SeverityLow Severity = iota

	// SeverityMedium indicates a failed operation that the user can retry
	SeverityMedium

	// SeverityHigh indicates the tool cannot continue with the current input
	SeverityHigh

	// SeverityCritical indicates a broken installation or a bug
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical

	case CodeSourceNotFound, CodeSourceRead, CodeListingWrite, CodeInvalidConfig:
		return SeverityHigh

	case CodeConfigError, CodeStoreError, CodeWatchError:
		return SeverityMedium

	case CodeLexical, CodeSyntax, CodeInvalidInput:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
