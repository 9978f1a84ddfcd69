package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mci-hq/mci/pkg/cli"
	"mci-hq/mci/pkg/schema"
)

var listFlags struct {
	file    string
	filter  string
	format  string
	env     []string
	details bool
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available tools",
	Long: `List the tools defined in an MCI schema, including toolset tools.

Filters use the format 'type:value1,value2' where type is one of:
only, except, tags, without-tags, toolsets.

Examples:
  # List all tools as a table
  mci list

  # List tools from a specific file
  mci list --file ./custom.mci.json

  # List only tools tagged api or database
  mci list --filter tags:api,database

  # Machine-readable output
  mci list --format json
  mci list --format yaml`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFlags.file, "file", "f", "", "schema file (default: auto-discover mci.json/mci.yaml)")
	listCmd.Flags().StringVar(&listFlags.filter, "filter", "", "tool filter (format: type:value1,value2)")
	listCmd.Flags().StringVar(&listFlags.format, "format", "table", "output format: table, json, yaml")
	listCmd.Flags().StringArrayVarP(&listFlags.env, "env", "e", nil, "environment variables in KEY=VALUE format (repeatable)")
	listCmd.Flags().BoolVar(&listFlags.details, "details", false, "include descriptions and tags in table output")
}

func runList(cmd *cobra.Command, args []string) error {
	env, err := resolveEnvironment(listFlags.env)
	if err != nil {
		return err
	}

	file, err := findSchemaFile(listFlags.file)
	if err != nil {
		return err
	}

	client, err := schema.NewClient(file, env)
	if err != nil {
		cmd.SilenceUsage = true
		return cli.NewCommandError("list", err)
	}

	var tools []schema.Tool
	if listFlags.filter != "" {
		tools, err = schema.ApplyFilterSpec(client, listFlags.filter)
		if err != nil {
			return err
		}
	} else {
		tools = client.Tools()
	}

	switch listFlags.format {
	case "json":
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, tools)
	case "yaml":
		return cli.NewFormatter(cli.FormatYAML).FormatTo(os.Stdout, tools)
	default:
		return printToolTable(tools)
	}
}

func printToolTable(tools []schema.Tool) error {
	var table *cli.Table
	if listFlags.details {
		table = cli.NewTable("NAME", "TAGS", "DESCRIPTION")
		for _, t := range tools {
			table.AddRow(t.Name, strings.Join(t.Tags, ","), t.Description)
		}
	} else {
		table = cli.NewTable("NAME")
		for _, t := range tools {
			table.AddRow(t.Name)
		}
	}
	return table.Render(os.Stdout)
}
