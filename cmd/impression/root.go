package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "impression",
	Short: "Design token converter, comparator, and version tracker",
	Long: `Convert design tokens between interchange formats, compare a project
against a reference system, blend multiple systems into a hybrid, and
track token changes over time with content-addressed snapshots.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".impression.yaml", "Config file path")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(ciCompareCmd)
	rootCmd.AddCommand(blendCmd)
	rootCmd.AddCommand(versioningCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
