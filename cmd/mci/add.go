package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mci-hq/mci/pkg/cli"
	"mci-hq/mci/pkg/schema"
)

var addFlags struct {
	file   string
	filter string
}

var addCmd = &cobra.Command{
	Use:   "add <toolset>",
	Short: "Add a toolset reference to an MCI schema",
	Long: `Add a toolset reference to the schema's toolsets list.

If the toolset is already declared, its entry is replaced, which updates
the filter. The document's original format (JSON or YAML) is preserved.

Filters use the format 'type:value1,value2' where type is one of:
only, except, tags, without-tags.

Examples:
  # Add a toolset without a filter
  mci add weather-tools

  # Add a toolset exposing only two tools
  mci add analytics --filter only:report,export

  # Add a toolset filtered by tags
  mci add api-tools --filter tags:api,database

  # Add to a specific file
  mci add weather-tools --file custom.mci.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addFlags.file, "file", "f", "", "schema file (default: auto-discover mci.json/mci.yaml)")
	addCmd.Flags().StringVar(&addFlags.filter, "filter", "", "tool filter for the reference (format: type:value1,value2)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	toolset := args[0]

	file, err := findSchemaFile(addFlags.file)
	if err != nil {
		return err
	}

	var filterType schema.FilterType
	var filterValue string
	if addFlags.filter != "" {
		filterType, filterValue, err = schema.ParseAddFilter(addFlags.filter)
		if err != nil {
			return cli.NewFlagError("filter", err.Error())
		}
	}

	editor, err := schema.NewEditor(file)
	if err != nil {
		cmd.SilenceUsage = true
		return cli.NewCommandError("add", err)
	}
	if err := editor.AddToolset(toolset, filterType, filterValue); err != nil {
		cmd.SilenceUsage = true
		return cli.NewCommandError("add", err)
	}
	if err := editor.Save(); err != nil {
		cmd.SilenceUsage = true
		return cli.NewCommandError("add", err)
	}

	fmt.Printf("✓ Added toolset %q to %s\n", toolset, file)
	if addFlags.filter != "" {
		fmt.Printf("  filter: %s:%s\n", filterType, filterValue)
	}
	return nil
}
