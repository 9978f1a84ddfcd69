package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var installFlags struct {
	format string
	force  bool
}

const starterSchemaJSON = `{
  "schemaVersion": "1.0",
  "metadata": {
    "name": "my-tools",
    "description": "MCI tool definitions"
  },
  "tools": [
    {
      "name": "example_tool",
      "description": "An example tool definition",
      "tags": ["example"],
      "inputSchema": {
        "type": "object",
        "properties": {
          "message": {"type": "string"}
        }
      }
    }
  ]
}
`

const starterSchemaYAML = `schemaVersion: "1.0"
metadata:
  name: my-tools
  description: MCI tool definitions
tools:
  - name: example_tool
    description: An example tool definition
    tags: [example]
    inputSchema:
      type: object
      properties:
        message:
          type: string
`

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Create a starter MCI schema in the current directory",
	Long: `Create a starter MCI schema file and the ./mci/ toolset directory.

Existing files are left alone unless --force is given.

Examples:
  # Create mci.json and ./mci/
  mci install

  # Create mci.yaml instead
  mci install --format yaml`,
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().StringVar(&installFlags.format, "format", "json", "schema format: json, yaml")
	installCmd.Flags().BoolVar(&installFlags.force, "force", false, "overwrite an existing schema file")
}

func runInstall(cmd *cobra.Command, args []string) error {
	filename, content := "mci.json", starterSchemaJSON
	if installFlags.format == "yaml" {
		filename, content = "mci.yaml", starterSchemaYAML
	}

	if _, err := os.Stat(filename); err == nil && !installFlags.force {
		fmt.Printf("%s already exists, skipping (use --force to overwrite)\n", filename)
	} else {
		if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", filename, err)
		}
		fmt.Printf("✓ Created %s\n", filename)
	}

	if err := os.MkdirAll("mci", 0755); err != nil {
		return fmt.Errorf("failed to create mci directory: %w", err)
	}
	fmt.Println("✓ Created ./mci/ directory")

	gitignore := filepath.Join("mci", ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		if err := os.WriteFile(gitignore, []byte(".env\n.env.mci\n"), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", gitignore, err)
		}
		fmt.Println("✓ Created mci/.gitignore")
	}

	fmt.Println()
	fmt.Println("Run 'mci validate' to check the schema.")
	return nil
}
