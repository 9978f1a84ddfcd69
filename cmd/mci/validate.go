package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mci-hq/mci/pkg/cli"
	"mci-hq/mci/pkg/validate"
)

var validateFlags struct {
	file   string
	env    []string
	format string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an MCI schema file",
	Long: `Validate an MCI schema file for correctness.

Validation checks schema structure, required fields and tool definitions,
and additionally warns about:
  - referenced toolset files that do not exist
  - MCP server commands not found in PATH

Warnings never fail validation; they flag deployment concerns on the
current machine.

Examples:
  # Validate default mci.json/mci.yaml
  mci validate

  # Validate a specific file
  mci validate --file custom.mci.json

  # Provide environment variables for template substitution
  mci validate -e API_KEY=123 -e REGION=eu

  # JSON output for CI/CD
  mci validate --format json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.file, "file", "f", "", "schema file (default: auto-discover mci.json/mci.yaml)")
	validateCmd.Flags().StringArrayVarP(&validateFlags.env, "env", "e", nil, "environment variables in KEY=VALUE format (repeatable)")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
}

func runValidate(cmd *cobra.Command, args []string) error {
	env, err := resolveEnvironment(validateFlags.env)
	if err != nil {
		return err
	}

	file, err := findSchemaFile(validateFlags.file)
	if err != nil {
		return err
	}

	result := validate.New(file, env).Validate()

	if validateFlags.format == "json" {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, result); err != nil {
			return err
		}
	} else {
		printValidationResult(file, result)
	}

	if !result.Valid {
		// The rendered result already carries the details; the error
		// only sets the exit code.
		cmd.SilenceUsage = true
		return cli.NewCommandError("validate", errors.New("validation failed"))
	}
	return nil
}

func printValidationResult(file string, result validate.ValidationResult) {
	fmt.Printf("Validating %s...\n", file)

	if len(result.Errors) > 0 {
		fmt.Println()
		fmt.Println("Validation errors:")
		for i, e := range result.Errors {
			if e.Location != "" {
				fmt.Printf("  %d. [%s] %s\n", i+1, e.Location, e.Message)
			} else {
				fmt.Printf("  %d. %s\n", i+1, e.Message)
			}
		}
		fmt.Println()
		fmt.Println("Fix the errors above and run 'mci validate' again.")
		return
	}

	if len(result.Warnings) > 0 {
		fmt.Println()
		fmt.Println("Warnings:")
		for i, w := range result.Warnings {
			fmt.Printf("  %d. %s\n", i+1, w.Message)
			if w.Suggestion != "" {
				fmt.Printf("     hint: %s\n", w.Suggestion)
			}
		}
	}

	fmt.Println()
	fmt.Printf("✓ Schema is valid: %s\n", file)
}
