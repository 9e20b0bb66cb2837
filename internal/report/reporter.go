// Package report renders comparison results for terminals.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/impresslabs/impression"
)

// Reporter writes human-readable comparison summaries.
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter. forceColors overrides auto-detection.
func NewReporter(w io.Writer, forceColors bool) *Reporter {
	return &Reporter{w: w, useColors: forceColors || shouldUseColors()}
}

// shouldUseColors enables color for TTYs and CI environments that support
// ANSI output.
func shouldUseColors() bool {
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// UseColors reports whether styling is active.
func (r *Reporter) UseColors() bool { return r.useColors }

// PrintSummary writes the per-category score table.
func (r *Reporter) PrintSummary(result impression.ComparisonResult) {
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Design token comparison", r.useColors))
	r.printScore("colors", result.Colors.Score)
	r.printScore("typography", result.Typography.Score)
	r.printScore("spacing", result.Spacing.Score)
	r.printScore("border-radius", result.BorderRadius.Score)
	fmt.Fprintf(r.w, "  %-14s %s\n", "overall", r.styledScore(result.Overall))
}

func (r *Reporter) printScore(name string, score int) {
	fmt.Fprintf(r.w, "  %-14s %s\n", name, r.styledScore(score))
}

func (r *Reporter) styledScore(score int) string {
	text := fmt.Sprintf("%3d%%", score)
	switch {
	case score >= 80:
		return RenderStyle(StyleGreen, text, r.useColors)
	case score >= 50:
		return RenderStyle(StyleYellow, text, r.useColors)
	}
	return RenderStyle(StyleRed, text, r.useColors)
}

// PrintFindings writes missing and extra tokens per category, capped so an
// enormous drift does not flood the terminal.
func (r *Reporter) PrintFindings(result impression.ComparisonResult, limit int) {
	if limit <= 0 {
		limit = 10
	}
	r.printCategoryFindings("colors", result.Colors, limit)
	r.printCategoryFindings("typography", result.Typography, limit)
	r.printCategoryFindings("spacing", result.Spacing, limit)
	r.printCategoryFindings("border-radius", result.BorderRadius, limit)
}

func (r *Reporter) printCategoryFindings(name string, cat impression.CategoryResult, limit int) {
	if len(cat.Missing) == 0 && len(cat.Extra) == 0 {
		return
	}
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, name+":", r.useColors))
	for i, v := range cat.Missing {
		if i == limit {
			fmt.Fprintf(r.w, "  %s\n", RenderStyle(StyleGray, fmt.Sprintf("… %d more missing", len(cat.Missing)-limit), r.useColors))
			break
		}
		fmt.Fprintf(r.w, "  %s %s\n", RenderStyle(StyleRed, "missing", r.useColors), v)
	}
	for i, v := range cat.Extra {
		if i == limit {
			fmt.Fprintf(r.w, "  %s\n", RenderStyle(StyleGray, fmt.Sprintf("… %d more extra", len(cat.Extra)-limit), r.useColors))
			break
		}
		fmt.Fprintf(r.w, "  %s %s\n", RenderStyle(StyleYellow, "extra", r.useColors), v)
	}
}

// PrintChanges writes a snapshot diff, one line per change.
func (r *Reporter) PrintChanges(changes []impression.Change) {
	if len(changes) == 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, "No changes", r.useColors))
		return
	}
	for _, c := range changes {
		switch c.Type {
		case impression.ChangeAdded:
			fmt.Fprintf(r.w, "  %s %s = %v\n", RenderStyle(StyleGreen, "+", r.useColors), c.Path, c.After)
		case impression.ChangeRemoved:
			fmt.Fprintf(r.w, "  %s %s = %v\n", RenderStyle(StyleRed, "-", r.useColors), c.Path, c.Before)
		default:
			fmt.Fprintf(r.w, "  %s %s: %v → %v\n", RenderStyle(StyleYellow, "~", r.useColors), c.Path, c.Before, c.After)
		}
	}
	severity := impression.CalculateSeverity(changes)
	fmt.Fprintf(r.w, "%d changes (severity: %s)\n", len(changes), severity)
}
