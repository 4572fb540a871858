package cmd

import (
	"fmt"
	"os"

	"github.com/arcanaland/blackjack/internal/validator"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a save slot file",
	Long: `Validate checks that a save slot file holds exactly three slots, each with a
non-empty name and a non-negative balance. Without a path the configured file is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		statePath := cfg.StateFile
		if len(args) == 1 {
			statePath = args[0]
		}

		if info, err := os.Stat(statePath); err == nil && info.IsDir() {
			return fmt.Errorf("%s is a directory", statePath)
		}

		v := validator.NewValidator(statePath)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if results.Valid() {
			fmt.Fprintf(out, "✅ '%s' is a valid save slot file.\n", statePath)
		} else {
			fmt.Fprintf(out, "❌ '%s' has %d validation errors:\n", statePath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
