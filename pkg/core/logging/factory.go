// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating foundation loggers from config
// Author:      Mike Stoffels
// Created:     2025-12-06
// Modified:    2026-10-17
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	mdwlog "github.com/msto63/cminus/foundation/core/log"
	"github.com/msto63/cminus/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Logger name shown in every entry
	Name string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format: "text", "console" or "json" (default: text)
	Format string

	// Output writer (default: stderr, so listings on stdout stay clean)
	Output io.Writer

	// Additional outputs
	AdditionalOutputs []io.Writer

	// EnableCaller adds file and line of the logging call
	EnableCaller bool
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "warn",
		Format: "text",
	}
}

// FromConfig builds a LoggerConfig from the [log] section of the tool config
func FromConfig(name string, cfg config.LogConfig) LoggerConfig {
	lc := DefaultLoggerConfig(name)
	if cfg.Level != "" {
		lc.Level = cfg.Level
	}
	if cfg.Format != "" {
		lc.Format = cfg.Format
	}
	return lc
}

// NewLogger creates a new foundation logger
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	// Unknown values fall back to the parser defaults (info, text)
	level, _ := mdwlog.ParseLevel(cfg.Level)
	format, _ := mdwlog.ParseFormat(cfg.Format)

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:        level,
		Format:       format,
		Output:       output,
		Name:         cfg.Name,
		EnableCaller: cfg.EnableCaller,
	})
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(name string) *mdwlog.Logger {
	return NewLogger(DefaultLoggerConfig(name))
}
