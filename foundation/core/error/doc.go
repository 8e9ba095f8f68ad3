// Package error provides the structured error type used across cminus.
//
// Package: error
// Title: cminus Error Handling
// Description: Structured errors with codes, severity, details and an
//              operation name. Infrastructure failures (opening sources,
//              writing listings, loading configuration, the history store)
//              are reported with this type. Syntax errors found while parsing
//              are not: they are diagnostics, collected by the parser.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-17 v0.2.0: Front-end error codes, dropped user/request context
//
// Usage:
//
//	import mdwerror "github.com/msto63/cminus/foundation/core/error"
//
//	err := mdwerror.Wrap(ioErr, "cannot open source").
//		WithCode(mdwerror.CodeSourceNotFound).
//		WithDetail("path", path).
//		WithOperation("cminus.Open")
//
//	if mdwerror.HasCode(err, mdwerror.CodeSourceNotFound) {
//		os.Exit(1)
//	}
package error
