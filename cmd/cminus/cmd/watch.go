// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     cmd
// Description: watch command, re-parses a source file whenever it changes
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/cminus/foundation/core/log"
	"github.com/msto63/cminus/internal/store"
	"github.com/msto63/cminus/internal/watch"
)

func newWatchCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-parse a source file on every change",
		Long: `Parses a source file, then watches it and parses it again
whenever it is written. Each run rewrites the listing and prints
a summary. Stop with Ctrl+C.`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, o, args[0])
		},
	}
}

func runWatch(ctx context.Context, cmd *cobra.Command, o *rootOptions, name string) error {
	s, err := newSession(cmd, o)
	if err != nil {
		return err
	}
	path := s.sourcePath(name)

	parseOnce := func() {
		res, listing, err := s.compileFile(path, store.CommandWatch)
		if err != nil {
			s.logger.WarnWithErr("Parse failed", err, mdwlog.Field("source", path))
			fmt.Fprintf(s.out, "%s %v\n", failStyle.Render("✗"), err)
			return
		}
		printSummary(s.out, res, listing)
	}

	// The file has to exist before it can be watched
	if _, err := os.Stat(path); err != nil {
		return sourceNotFound(path, err)
	}
	parseOnce()

	w, err := watch.New(path, func(string) { parseOnce() }, watch.Options{
		Debounce: s.cfg.Watch.Debounce.Duration,
		Logger:   s.logger,
	})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Fprintln(s.out, titleStyle.Render("Watching "+w.Path()+" (Ctrl+C to stop)"))

	select {
	case <-ctx.Done():
	case <-w.Done():
	}
	return nil
}
