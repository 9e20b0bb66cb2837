package main

import (
	"os"

	"github.com/impresslabs/impression"
	"github.com/spf13/cobra"
)

var ciCompareCmd = &cobra.Command{
	Use:   "ci-compare <projectPath> <reference>",
	Short: "Compare tokens as a CI gate with machine-readable output",
	Long: `Run the comparison as a CI gate. Exit codes: 0 pass, 1 fail (criticals,
overall score below --threshold, or major findings with --fail-on=major or
stricter), 2 warnings with --fail-on=warning.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCICompare,
}

func init() {
	f := ciCompareCmd.Flags()
	f.Int("threshold", impression.DefaultThreshold, "Minimum overall score to pass")
	f.String("format", "text", "Output format: text|json|github|gitlab|markdown")
	f.String("fail-on", "critical", "Findings that fail the gate: critical|major|warning")
}

func runCICompare(_ *cobra.Command, args []string) error {
	format, err := impression.ParseOutputFormat(getStringWithFallback("format", "ci.format", "text"))
	if err != nil {
		return err
	}

	result, _, err := impression.CompareProject(args[0], args[1])
	if err != nil {
		return err
	}

	gate := impression.EvaluateGate(*result, impression.GateConfig{
		Threshold: getIntWithFallback("threshold", "ci.threshold", impression.DefaultThreshold),
		FailOn:    impression.FailOn(getStringWithFallback("fail-on", "ci.fail-on", "critical")),
	})

	if !getBoolWithFallback("quiet", "quiet", false) {
		if err := impression.WriteGateReport(os.Stdout, gate, format); err != nil {
			return err
		}
	}

	// The gate status maps directly onto the process exit code.
	if gate.Status != impression.GatePass {
		os.Exit(int(gate.Status))
	}
	return nil
}
