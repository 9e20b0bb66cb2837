package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/impresslabs/impression"
	"github.com/spf13/cobra"
)

var blendCmd = &cobra.Command{
	Use:   "blend <a.json> <b.json> [more.json...]",
	Short: "Merge multiple token systems into one hybrid",
	Long: `Blend two or more token files into a hybrid system. With --strategy=merge
(the default) categories are unioned and near-identical colors deduplicated;
with --strategy=prefer the first input wins and later inputs only fill
categories it left empty.`,
	Args: cobra.MinimumNArgs(2),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBlend,
}

func init() {
	f := blendCmd.Flags()
	f.String("weights", "", "Comma-separated relative weights, one per input")
	f.String("strategy", "merge", "Blend strategy: merge|prefer")
	f.String("output", "", "Output file (default: stdout)")
}

func runBlend(_ *cobra.Command, args []string) error {
	systems := make([]*impression.DesignSystem, 0, len(args))
	for _, path := range args {
		ds, err := impression.LoadReference(path)
		if err != nil {
			return err
		}
		systems = append(systems, ds)
	}

	weights, err := parseWeights(getStringWithFallback("weights", "blend.weights", ""))
	if err != nil {
		return err
	}

	hybrid, err := impression.Blend(systems, impression.BlendOptions{
		Weights:  weights,
		Strategy: impression.BlendStrategy(getStringWithFallback("strategy", "blend.strategy", "merge")),
	})
	if err != nil {
		return err
	}

	out, err := impression.GenerateImpression(hybrid)
	if err != nil {
		return err
	}

	if outputPath := getStringWithFallback("output", "blend.output", ""); outputPath != "" {
		if err := os.WriteFile(outputPath, out, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outputPath, err)
		}
		if !getBoolWithFallback("quiet", "quiet", false) {
			fmt.Printf("Blended %d systems into %s (%d palette colors)\n",
				len(systems), outputPath, len(hybrid.Colors.Palette))
		}
		return nil
	}
	os.Stdout.Write(out)
	return nil
}

// parseWeights parses "2,1" into []float64{2, 1}.
func parseWeights(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	weights := make([]float64, 0, len(parts))
	for _, p := range parts {
		w, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q", p)
		}
		weights = append(weights, w)
	}
	return weights, nil
}
