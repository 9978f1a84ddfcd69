package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"mci-hq/mci/pkg/cli"
	"mci-hq/mci/pkg/server"
)

var serveFlags struct {
	file       string
	filter     string
	env        []string
	addr       string
	watch      bool
	revalidate string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the schema's tool set over HTTP",
	Long: `Serve the tools of an MCI schema over HTTP.

Endpoints:
  GET /tools       the (optionally filtered) tool set
  GET /validation  latest validation result for the document
  GET /healthz     liveness probe
  GET /metrics     Prometheus metrics

With --watch the schema is reloaded when the file changes. A failed
reload keeps the last good tool set serving. --revalidate takes a cron
expression for periodic revalidation, which catches toolset files or
PATH contents changing without the document itself being edited.

Examples:
  # Serve the default schema
  mci serve

  # Serve filtered tools, reloading on change
  mci serve --filter tags:api --watch

  # Revalidate every ten minutes
  mci serve --watch --revalidate "*/10 * * * *"`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.file, "file", "f", "", "schema file (default: auto-discover mci.json/mci.yaml)")
	serveCmd.Flags().StringVar(&serveFlags.filter, "filter", "", "tool filter (format: type:value1,value2)")
	serveCmd.Flags().StringArrayVarP(&serveFlags.env, "env", "e", nil, "environment variables in KEY=VALUE format (repeatable)")
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", ":8080", "listen address")
	serveCmd.Flags().BoolVar(&serveFlags.watch, "watch", false, "reload when the schema file changes")
	serveCmd.Flags().StringVar(&serveFlags.revalidate, "revalidate", "", "cron expression for scheduled revalidation")
}

func runServe(cmd *cobra.Command, args []string) error {
	env, err := resolveEnvironment(serveFlags.env)
	if err != nil {
		return err
	}

	file, err := findSchemaFile(serveFlags.file)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Options{
		SchemaPath:     file,
		FilterSpec:     serveFlags.filter,
		Env:            env,
		Addr:           serveFlags.addr,
		Watch:          serveFlags.watch,
		RevalidateSpec: serveFlags.revalidate,
		Logger:         slog.Default(),
	})
	if err != nil {
		cmd.SilenceUsage = true
		return err
	}

	ctx, cancel := cli.SignalContext(context.Background())
	defer cancel()
	return srv.Start(ctx)
}
