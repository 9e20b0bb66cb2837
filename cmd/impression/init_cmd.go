package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .impression.yaml config file",
	Long:  `Create a .impression.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".impression.yaml"); err == nil && !force {
			return fmt.Errorf(".impression.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".impression.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .impression.yaml")
		return nil
	},
}

const defaultConfig = `# impression configuration
# Docs: https://github.com/impresslabs/impression

# Shared settings
verbose: false
color: false

# Migration settings
migrate:
  to: impression           # impression | w3c | style-dictionary | figma | tailwind | css | shadcn

# Comparison settings
compare:
  limit: 10                # max missing/extra tokens shown per category

# CI gate settings
ci:
  threshold: 80            # minimum overall score to pass
  format: text             # text | json | github | gitlab | markdown
  fail-on: critical        # critical | major | warning

# Blend settings
blend:
  strategy: merge          # merge | prefer

# Versioning settings
versioning:
  store: .impression/versions
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
