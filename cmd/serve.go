package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/giantswarm/serverconf/internal/app"

	"github.com/spf13/cobra"
)

// newServeCmd creates the command that exposes the configuration operations
// as MCP tools over stdio.
func newServeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the configuration operations as MCP tools over stdio",
		Long: `Starts an MCP server on standard input and output. Every configuration
operation is available as a tool named serverconf_<operation>, for example
serverconf_addEngine or serverconf_getServerConfig.

When metrics.address is set in config.yaml, Prometheus metrics are served on
that address under /metrics while the MCP server runs.

Logs are written to standard error so they never interleave with the MCP
protocol on standard output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.NewConfig(opts.debug, opts.configPath)
			cfg.StoreBackend = opts.storeBackend
			cfg.Version = rootCmd.Version

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.NewApplication(ctx, cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer application.Close()

			if err := application.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
