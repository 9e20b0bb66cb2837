package impression

import (
	"fmt"
	"io"
)

// WriteComparisonMarkdown renders a shareable markdown report for a
// comparison: per-category score plus the exact/similar/missing/extra
// breakdown.
func WriteComparisonMarkdown(w io.Writer, result ComparisonResult, projectDir, referencePath string) error {
	fmt.Fprintf(w, "# Design Token Comparison Report\n\n")
	if projectDir != "" {
		fmt.Fprintf(w, "- Project: `%s`\n", projectDir)
	}
	if referencePath != "" {
		fmt.Fprintf(w, "- Reference: `%s`\n", referencePath)
	}
	fmt.Fprintf(w, "- Overall score: **%d%%**\n", result.Overall)

	writeCategory(w, "Colors", result.Colors)
	writeCategory(w, "Typography", result.Typography)
	writeCategory(w, "Spacing", result.Spacing)
	writeCategory(w, "Border Radius", result.BorderRadius)
	return nil
}

func writeCategory(w io.Writer, title string, cat CategoryResult) {
	fmt.Fprintf(w, "\n## %s — %d%%\n\n", title, cat.Score)

	if len(cat.Exact) == 0 && len(cat.Similar) == 0 && len(cat.Missing) == 0 && len(cat.Extra) == 0 {
		fmt.Fprintf(w, "_No tokens in this category._\n")
		return
	}

	if len(cat.Exact) > 0 {
		fmt.Fprintf(w, "| Exact match | Reference |\n|---|---|\n")
		for _, m := range cat.Exact {
			fmt.Fprintf(w, "| `%s` | `%s` |\n", m.Project, m.Reference)
		}
		fmt.Fprintln(w)
	}
	if len(cat.Similar) > 0 {
		fmt.Fprintf(w, "| Similar | Reference | Distance |\n|---|---|---|\n")
		for _, m := range cat.Similar {
			fmt.Fprintf(w, "| `%s` | `%s` | %.2f |\n", m.Project, m.Reference, m.Distance)
		}
		fmt.Fprintln(w)
	}
	if len(cat.Missing) > 0 {
		fmt.Fprintf(w, "**Missing from project:**\n\n")
		for _, v := range cat.Missing {
			fmt.Fprintf(w, "- `%s`\n", v)
		}
		fmt.Fprintln(w)
	}
	if len(cat.Extra) > 0 {
		fmt.Fprintf(w, "**Not in reference:**\n\n")
		for _, v := range cat.Extra {
			fmt.Fprintf(w, "- `%s`\n", v)
		}
	}
}
