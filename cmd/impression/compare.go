package main

import (
	"fmt"
	"os"

	"github.com/impresslabs/impression"
	"github.com/impresslabs/impression/internal/report"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <projectPath> <reference> [output.md]",
	Short: "Compare a project's tokens against a reference system",
	Long: `Scan a project directory for stylesheets, extract its design tokens, and
score them against a reference token file. With an output path, a markdown
report is written alongside the terminal summary.`,
	Args: cobra.RangeArgs(2, 3),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.Int("limit", 10, "Max missing/extra tokens to show per category")
}

func runCompare(_ *cobra.Command, args []string) error {
	result, scan, err := impression.CompareProject(args[0], args[1])
	if err != nil {
		return err
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	verbose := getBoolWithFallback("verbose", "verbose", false)

	if !quiet {
		if verbose {
			fmt.Printf("Scanned %d stylesheets (%d skipped)\n", scan.Stats.FilesScanned, scan.Stats.FilesSkipped)
			for _, w := range scan.Warnings {
				fmt.Fprintf(os.Stderr, "  Warning: %s\n", w)
			}
		}
		r := report.NewReporter(os.Stdout, getBoolWithFallback("color", "color", false))
		r.PrintSummary(*result)
		r.PrintFindings(*result, getIntWithFallback("limit", "compare.limit", 10))
	}

	if len(args) == 3 {
		out, err := os.Create(args[2])
		if err != nil {
			return fmt.Errorf("creating report %s: %w", args[2], err)
		}
		defer out.Close()
		if err := impression.WriteComparisonMarkdown(out, *result, args[0], args[1]); err != nil {
			return err
		}
		if !quiet {
			fmt.Printf("Wrote report to %s\n", args[2])
		}
	}
	return nil
}
