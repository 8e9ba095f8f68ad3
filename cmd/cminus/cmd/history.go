// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     cmd
// Description: history commands for the recorded compile runs
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/cminus/internal/store"
)

func newHistoryCmd(o *rootOptions) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show and maintain the history of compile runs",
		Long: `Every parse, scan and watch run is recorded in a local SQLite
database (default: ~/.cminus/history.db) unless --no-history is
given or history is disabled in the config.`,
	}

	historyCmd.AddCommand(
		newHistoryListCmd(o),
		newHistoryStatsCmd(o),
		newHistoryPruneCmd(o),
	)
	return historyCmd
}

func newHistoryListCmd(o *rootOptions) *cobra.Command {
	var (
		limit   int
		source  string
		command string
		failed  bool
		since   time.Duration
	)

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent runs, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, o)
			if err != nil {
				return err
			}
			st, err := s.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			filter := store.RunFilter{
				Command:    command,
				FailedOnly: failed,
				Limit:      limit,
			}
			if source != "" {
				filter.Source = s.sourcePath(source)
			}
			if since > 0 {
				filter.Since = time.Now().Add(-since)
			}

			runs, err := st.Query(s.ctx, filter)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(s.out, dimStyle.Render("No runs recorded."))
				return nil
			}

			fmt.Fprintln(s.out, titleStyle.Render(fmt.Sprintf("%-19s  %-5s  %6s  %6s  %6s  %s",
				"TIME", "CMD", "TOKENS", "NODES", "ERRORS", "SOURCE")))
			for _, r := range runs {
				errors := okStyle.Render(fmt.Sprintf("%6d", r.Errors))
				if !r.OK() {
					errors = failStyle.Render(fmt.Sprintf("%6d", r.Errors))
				}
				fmt.Fprintf(s.out, "%-19s  %-5s  %6d  %6d  %s  %s\n",
					r.Timestamp.Local().Format("2006-01-02 15:04:05"),
					r.Command, r.Tokens, r.Nodes, errors, r.Source)
			}
			return nil
		},
	}

	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs")
	listCmd.Flags().StringVar(&source, "source", "", "Only runs of this source file")
	listCmd.Flags().StringVar(&command, "command", "", "Only runs of this command (parse, scan, watch)")
	listCmd.Flags().BoolVar(&failed, "failed", false, "Only runs with errors")
	listCmd.Flags().DurationVar(&since, "since", 0, "Only runs within this duration, e.g. 24h")

	return listCmd
}

func newHistoryStatsCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, o)
			if err != nil {
				return err
			}
			st, err := s.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			stats, err := st.Stats(s.ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(s.out, titleStyle.Render("Run history"))
			fmt.Fprintf(s.out, "  Runs:    %d (%d with errors)\n", stats.TotalRuns, stats.FailedRuns)
			fmt.Fprintf(s.out, "  Errors:  %d\n", stats.TotalErrors)
			fmt.Fprintf(s.out, "  Sources: %d\n", stats.Sources)
			if !stats.LastRun.IsZero() {
				fmt.Fprintf(s.out, "  Last:    %s\n", stats.LastRun.Local().Format(time.RFC3339))
			}

			sources := make([]string, 0, len(stats.RunsBySource))
			for src := range stats.RunsBySource {
				sources = append(sources, src)
			}
			sort.Strings(sources)
			for _, src := range sources {
				fmt.Fprintf(s.out, "    %5d  %s\n", stats.RunsBySource[src], src)
			}
			return nil
		},
	}
}

func newHistoryPruneCmd(o *rootOptions) *cobra.Command {
	var olderThan time.Duration

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old runs",
		Long: `Deletes runs older than --older-than. Without the flag the
history.keep value of the config is used (default 720h).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, o)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("older-than") {
				olderThan = s.cfg.History.Keep.Duration
			}

			st, err := s.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			deleted, err := st.Prune(s.ctx, olderThan)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Deleted %d runs older than %s\n", deleted, olderThan)
			return nil
		},
	}

	pruneCmd.Flags().DurationVar(&olderThan, "older-than", 0, "Age limit, e.g. 168h")
	return pruneCmd
}
