package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ryotapoi/linkconv/internal/index"
	"github.com/ryotapoi/linkconv/internal/vault"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A9DC76"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FC9867"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#727072"))
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6188"))
)

// validateFormat checks that format is "json" or "text".
func validateFormat(format string) error {
	if format != "json" && format != "text" {
		return fmt.Errorf("invalid format: %q (must be json or text)", format)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --- Run report ---

func printReport(w io.Writer, rep *vault.Report, format string) error {
	if format == "json" {
		return printJSON(w, rep)
	}
	return printReportText(w, rep)
}

func printReportText(w io.Writer, rep *vault.Report) error {
	for _, f := range rep.Files {
		if f.Skipped != "" {
			fmt.Fprintf(w, "%s %s\n", warningStyle.Render("skipped"), f.Path+dimStyle.Render(" ("+f.Skipped+")"))
			continue
		}
		fmt.Fprintln(w, titleStyle.Render(f.Path))
		for _, c := range f.Changes {
			fmt.Fprintf(w, "  %s %s %s\n", c.Before, dimStyle.Render("->"), successStyle.Render(c.After))
		}
		if f.Diff != "" {
			fmt.Fprint(w, f.Diff)
		}
	}

	verb := "changed"
	if rep.DryRun {
		verb = "would change"
	}
	summary := fmt.Sprintf("%d files %s, %d links, %d skipped", rep.Changed, verb, rep.Links, rep.Skipped)
	fmt.Fprintf(w, "%s %s\n", summary, dimStyle.Render("[run "+rep.RunID+"]"))
	return nil
}

// --- Index output ---

func printStats(w io.Writer, st index.Stats, format string) error {
	if format == "json" {
		return printJSON(w, st)
	}
	fmt.Fprintf(w, "files: %d\n", st.Files)
	fmt.Fprintf(w, "notes: %d\n", st.Notes)
	fmt.Fprintf(w, "links: %d\n", st.Links)
	fmt.Fprintf(w, "unresolved: %d\n", st.Unresolved)
	return nil
}

func printPaths(w io.Writer, paths []string, format string) error {
	if format == "json" {
		if paths == nil {
			paths = []string{}
		}
		return printJSON(w, map[string][]string{"paths": paths})
	}
	for _, p := range paths {
		fmt.Fprintln(w, p)
	}
	return nil
}
