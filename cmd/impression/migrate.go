package main

import (
	"fmt"
	"os"

	"github.com/impresslabs/impression"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <input> [output]",
	Short: "Convert a token file between formats",
	Long: `Parse a token file in any supported format and regenerate it in another.
The input format is detected automatically unless --from is given.`,
	Args: cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runMigrate,
}

func init() {
	f := migrateCmd.Flags()
	f.String("from", "", "Input format (default: detect)")
	f.String("to", "", "Target format: impression|w3c|style-dictionary|figma|tailwind|css|shadcn")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	toName := getStringWithFallback("to", "migrate.to", "")
	if toName == "" {
		return fmt.Errorf("--to is required")
	}
	to, err := impression.ParseFormat(toName)
	if err != nil {
		return err
	}

	var from impression.Format
	if fromName := getStringWithFallback("from", "migrate.from", ""); fromName != "" {
		if from, err = impression.ParseFormat(fromName); err != nil {
			return err
		}
	}

	config := impression.MigrateConfig{
		InputPath: args[0],
		From:      from,
		To:        to,
	}
	if len(args) == 2 {
		config.OutputPath = args[1]
	}

	result, err := impression.Migrate(config)
	if err != nil {
		return err
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if config.OutputPath == "" {
		os.Stdout.Write(result.Output)
	} else if !quiet {
		fmt.Printf("Converted %s (%s) to %s (%s)\n", args[0], result.From, config.OutputPath, result.To)
	}
	if !quiet {
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "  Warning: %s\n", w)
		}
	}
	return nil
}
