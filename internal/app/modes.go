package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/server"
	"github.com/giantswarm/serverconf/pkg/logging"
)

// runServe serves every registered tool provider over MCP stdio and, when
// metricsAddr is set, Prometheus metrics over HTTP.
func runServe(ctx context.Context, serverVersion, metricsAddr string, services *Services) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if metricsAddr != "" {
		g.Go(func() error {
			return server.ServeMetrics(ctx, metricsAddr, services.Registry)
		})
	}

	mcpServer := server.NewMCPServer("serverconf", serverVersion, api.GetToolProviders()...)
	g.Go(func() error {
		defer cancel()
		err := mcpServer.Start(ctx)
		if err == nil {
			logging.Info("Serve", "MCP client disconnected")
		}
		return err
	})

	return g.Wait()
}
