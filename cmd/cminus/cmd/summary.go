// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     cmd
// Description: Styled terminal summaries for CLI commands
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/cminus/foundation/cminus"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
)

// maxSummaryErrors limits the errors repeated in the summary
const maxSummaryErrors = 10

// printSummary prints the one-run summary after a parse
func printSummary(w io.Writer, res *cminus.Result, listing string) {
	if listing == "-" {
		// The listing already went to stdout
		return
	}

	if res.OK() {
		fmt.Fprintf(w, "%s %s: %d tokens, %d nodes, no syntax errors\n",
			okStyle.Render("✓"), res.Name, res.Tokens, res.Nodes)
	} else {
		fmt.Fprintf(w, "%s %s: %d syntax errors, first at line %d\n",
			failStyle.Render("✗"), res.Name, len(res.Errors), res.Errors[0].Line)
		for i, e := range res.Errors {
			if i == maxSummaryErrors {
				fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  ... %d more in the listing", len(res.Errors)-maxSummaryErrors)))
				break
			}
			fmt.Fprintf(w, "  %s\n", e.Error())
		}
	}

	if res.UnterminatedComment {
		fmt.Fprintln(w, warnStyle.Render("  warning: input ends inside a comment"))
	}
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  listing: %s (%s)", listing, res.Duration.Round(time.Microsecond))))
}
