// Package log provides structured logging for the cminus front end.
//
// Package: log
// Title: cminus Structured Logging
// Description: Structured logger with levels, persistent fields and
//              pluggable text, console and JSON formatters. Every compilation
//              run gets its own child logger that carries the run ID and the
//              source file name, so log lines of concurrent watch runs can be
//              told apart.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-17
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-17 v0.2.0: Run/source context, dropped async and audit logging
//
// Usage:
//
//	import mdwlog "github.com/msto63/cminus/foundation/core/log"
//
//	logger := mdwlog.New().
//		WithLevel(mdwlog.LevelDebug).
//		WithFormat(mdwlog.FormatConsole).
//		WithRunID(runID).
//		WithSource("prog.c-")
//
//	logger.Info("parse finished", mdwlog.Fields{"errors": 0})
//
//	timer := logger.StartTimer("scan")
//	// ... scan
//	timer.Stop()
package log
