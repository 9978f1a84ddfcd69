package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mci-hq/mci/pkg/cli"
	"mci-hq/mci/pkg/dotenv"
	"mci-hq/mci/pkg/schema"
	"mci-hq/mci/pkg/telemetry/logging"
)

var (
	// Global flags
	logLevel string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "mci",
	Short: "MCI - tool-definition schema toolkit",
	Long: `mci works with MCI tool-definition schemas (mci.json / mci.yaml).

It validates schema documents, lists and filters their tools, and serves
tool sets over HTTP. Environment variables for template substitution are
resolved from layered .env files, the process environment, and explicit
--env flags.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logLevel
		if verbose {
			level = "debug"
		}
		slog.SetDefault(logging.New(logging.Options{Level: level, Format: logging.FormatText}))
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// resolveEnvironment builds the effective environment from layered .env
// files, the process environment, and --env flags.
func resolveEnvironment(envFlags []string) (map[string]string, error) {
	overrides := make(map[string]string, len(envFlags))
	for _, pair := range envFlags {
		idx := strings.Index(pair, "=")
		if idx <= 0 {
			return nil, cli.NewFlagError("env", fmt.Sprintf("%q is not in KEY=VALUE format", pair))
		}
		overrides[pair[:idx]] = pair[idx+1:]
	}
	return dotenv.Resolve("", overrides), nil
}

// findSchemaFile returns the explicit path when given, otherwise
// discovers the schema in the current directory.
func findSchemaFile(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	found := schema.FindSchemaFile(".")
	if found == "" {
		return "", fmt.Errorf("no MCI schema file found in current directory; run 'mci install' to create one or pass --file")
	}
	return found, nil
}
