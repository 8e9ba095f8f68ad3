// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     config
// Description: TOML configuration for the cminus command line tool
// Author:      Mike Stoffels
// Created:     2025-12-06
// Modified:    2026-10-17
// License:     MIT
// ============================================================================

package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/msto63/cminus/foundation/cminus"
	"github.com/msto63/cminus/foundation/cminus/diag"
	mdwerror "github.com/msto63/cminus/foundation/core/error"
	mdwlog "github.com/msto63/cminus/foundation/core/log"
)

// EnvConfigPath names the environment variable that points to a config file
const EnvConfigPath = "CMINUS_CONFIG"

// Config holds the complete tool configuration
type Config struct {
	Trace   TraceConfig   `toml:"trace"`
	Output  OutputConfig  `toml:"output"`
	Log     LogConfig     `toml:"log"`
	History HistoryConfig `toml:"history"`
	Watch   WatchConfig   `toml:"watch"`

	// Source is the file the configuration was read from, empty for defaults
	Source string `toml:"-"`
}

// TraceConfig holds the listing flags
type TraceConfig struct {
	EchoSource bool `toml:"echo_source"`
	TraceScan  bool `toml:"trace_scan"`
	TraceParse bool `toml:"trace_parse"`
}

// OutputConfig holds file naming and tree format settings
type OutputConfig struct {
	SourceSuffix  string `toml:"source_suffix"`
	ListingSuffix string `toml:"listing_suffix"`
	Format        string `toml:"format"`
}

// LogConfig holds diagnostic logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// HistoryConfig holds run history settings
type HistoryConfig struct {
	Enabled bool     `toml:"enabled"`
	Path    string   `toml:"path"`
	Keep    Duration `toml:"keep"`
}

// WatchConfig holds file watcher settings
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{
		Trace: TraceConfig{TraceParse: true},
		History: HistoryConfig{
			Enabled: true,
		},
	}
	cfg.applyDefaults()
	cfg.expandPaths()
	return cfg
}

// Load loads configuration from a TOML file. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = expandPath(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mdwerror.Newf("config file not found: %s", path).
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandPaths()
	cfg.Source = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by CMINUS_CONFIG, or the first file
// found at the default locations. Without any file the defaults are used.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// DefaultPaths lists the locations searched by LoadFromEnv
func DefaultPaths() []string {
	paths := []string{"./cminus.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "cminus", "config.toml"))
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Output
	if c.Output.SourceSuffix == "" {
		c.Output.SourceSuffix = cminus.DefaultSourceSuffix
	}
	if c.Output.ListingSuffix == "" {
		c.Output.ListingSuffix = cminus.DefaultListingSuffix
	}
	if c.Output.Format == "" {
		c.Output.Format = string(cminus.FormatText)
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	// History
	if c.History.Path == "" {
		c.History.Path = "~/.cminus/history.db"
	}
	if c.History.Keep.Duration == 0 {
		c.History.Keep.Duration = 30 * 24 * time.Hour
	}

	// Watch
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 300 * time.Millisecond
	}
}

// expandPaths expands environment variables and a leading ~ in paths
func (c *Config) expandPaths() {
	c.History.Path = expandPath(c.History.Path)
}

func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// Validate checks the configuration for values the tool cannot use
func (c *Config) Validate() error {
	invalid := func(key string, value interface{}, reason string) error {
		return mdwerror.Newf("invalid config value for %s: %s", key, reason).
			WithCode(mdwerror.CodeInvalidConfig).
			WithDetail("key", key).
			WithDetail("value", value)
	}

	if _, err := cminus.ParseFormat(c.Output.Format); err != nil {
		return invalid("output.format", c.Output.Format, "expected text or yaml")
	}
	if !strings.HasPrefix(c.Output.SourceSuffix, ".") {
		return invalid("output.source_suffix", c.Output.SourceSuffix, "must start with a dot")
	}
	if !strings.HasPrefix(c.Output.ListingSuffix, ".") {
		return invalid("output.listing_suffix", c.Output.ListingSuffix, "must start with a dot")
	}
	if c.Output.SourceSuffix == c.Output.ListingSuffix {
		return invalid("output.listing_suffix", c.Output.ListingSuffix, "must differ from the source suffix")
	}
	if _, err := mdwlog.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", c.Log.Level, err.Error())
	}
	if _, err := mdwlog.ParseFormat(c.Log.Format); err != nil {
		return invalid("log.format", c.Log.Format, err.Error())
	}
	if c.History.Enabled && c.History.Path == "" {
		return invalid("history.path", c.History.Path, "required when history is enabled")
	}
	if c.History.Keep.Duration < 0 {
		return invalid("history.keep", c.History.Keep.String(), "must not be negative")
	}
	if c.Watch.Debounce.Duration < 0 {
		return invalid("watch.debounce", c.Watch.Debounce.String(), "must not be negative")
	}
	return nil
}

// Flags returns the listing flags of the configuration
func (c *Config) Flags() diag.Flags {
	return diag.Flags{
		EchoSource: c.Trace.EchoSource,
		TraceScan:  c.Trace.TraceScan,
		TraceParse: c.Trace.TraceParse,
	}
}

// TreeFormat returns the configured syntax tree format
func (c *Config) TreeFormat() cminus.Format {
	format, err := cminus.ParseFormat(c.Output.Format)
	if err != nil {
		return cminus.FormatText
	}
	return format
}
