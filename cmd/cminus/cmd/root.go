// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     cmd
// Description: Root command and shared setup of the cminus CLI
// Author:      Mike Stoffels
// Created:     2025-12-06
// Modified:    2026-10-17
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/cminus/foundation/cminus"
	mdwlog "github.com/msto63/cminus/foundation/core/log"
	"github.com/msto63/cminus/internal/store"
	"github.com/msto63/cminus/pkg/core/config"
	"github.com/msto63/cminus/pkg/core/logging"
)

// rootOptions holds the persistent flags shared by all commands
type rootOptions struct {
	cfgFile    string
	verbose    bool
	echoSource bool
	traceScan  bool
	traceParse bool
	format     string
	output     string
	noHistory  bool
}

// NewRootCommand builds the complete command tree
func NewRootCommand() *cobra.Command {
	o := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "cminus <file>",
		Short: "C-minus compiler front end",
		Long: `cminus scans and parses C-minus programs and writes a listing
with the echoed source, the token trace, syntax errors and the
syntax tree.

The source suffix (default .c-) is appended when the file name
has no extension. The listing is written next to the source
with the listing suffix (default .txt).

Called with a single file, cminus behaves like "cminus parse".`,
		Args:          exactlyOneFile,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, o, args[0])
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.cfgFile, "config", "", "Config file (default: $CMINUS_CONFIG, ./cminus.toml)")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Verbose diagnostics on stderr")
	flags.BoolVar(&o.echoSource, "echo-source", false, "Echo source lines into the listing")
	flags.BoolVar(&o.traceScan, "trace-scan", false, "Trace tokens into the listing")
	flags.BoolVar(&o.traceParse, "trace-parse", true, "Print the syntax tree into the listing")
	flags.StringVar(&o.format, "format", "", "Syntax tree format: text or yaml")
	flags.StringVarP(&o.output, "output", "o", "", "Listing file, - for stdout (default: <source>.txt)")
	flags.BoolVar(&o.noHistory, "no-history", false, "Do not record the run in the history")

	rootCmd.AddCommand(
		newParseCmd(o),
		newScanCmd(o),
		newWatchCmd(o),
		newViewCmd(o),
		newHistoryCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

// exactlyOneFile validates the argument count and prints the usage on mismatch
func exactlyOneFile(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		cmd.Usage()
		return fmt.Errorf("expected exactly one source file, got %d arguments", len(args))
	}
	return nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

// session carries the resolved configuration of one command invocation
type session struct {
	ctx    context.Context
	opts   *rootOptions
	cfg    *config.Config
	logger *mdwlog.Logger
	out    io.Writer
}

// newSession loads the configuration and applies flag overrides
func newSession(cmd *cobra.Command, o *rootOptions) (*session, error) {
	var cfg *config.Config
	var err error
	if o.cfgFile != "" {
		cfg, err = config.Load(o.cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	// Flags given on the command line win over the config file
	flags := cmd.Flags()
	if flags.Changed("echo-source") {
		cfg.Trace.EchoSource = o.echoSource
	}
	if flags.Changed("trace-scan") {
		cfg.Trace.TraceScan = o.traceScan
	}
	if flags.Changed("trace-parse") {
		cfg.Trace.TraceParse = o.traceParse
	}
	if flags.Changed("format") {
		cfg.Output.Format = o.format
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lc := logging.FromConfig("cminus", cfg.Log)
	lc.Output = cmd.ErrOrStderr()
	logger := logging.NewLogger(lc)
	if cfg.Source != "" {
		logger.Debug("Configuration loaded", mdwlog.Field("path", cfg.Source))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return &session{
		ctx:    ctx,
		opts:   o,
		cfg:    cfg,
		logger: logger,
		out:    cmd.OutOrStdout(),
	}, nil
}

// sourcePath resolves a command line file name against the source suffix
func (s *session) sourcePath(name string) string {
	return cminus.ResolveSourcePath(name, s.cfg.Output.SourceSuffix)
}

// compileOptions returns the front end options for one run
func (s *session) compileOptions(listing io.Writer) cminus.Options {
	return cminus.Options{
		Logger:  s.logger,
		Flags:   s.cfg.Flags(),
		Listing: listing,
		Format:  s.cfg.TreeFormat(),
	}
}

// record stores a run in the history; failures are logged, never fatal
func (s *session) record(run *store.Run) {
	if !s.cfg.History.Enabled || s.opts.noHistory {
		return
	}

	st, err := store.Open(store.Config{Path: s.cfg.History.Path})
	if err != nil {
		s.logger.WarnWithErr("History unavailable", err)
		return
	}
	defer st.Close()

	if err := st.Record(s.ctx, run); err != nil {
		s.logger.WarnWithErr("Failed to record run", err, mdwlog.Field("run_id", run.ID))
	}
}

// openStore opens the history store for the history commands
func (s *session) openStore() (*store.RunStore, error) {
	return store.Open(store.Config{Path: s.cfg.History.Path})
}

// openSource opens a source file or reports it as not found
func openSource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, sourceNotFound(path, err)
	}
	return f, nil
}
