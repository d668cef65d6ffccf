package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/giantswarm/serverconf/internal/config"
	"github.com/giantswarm/serverconf/pkg/logging"
)

// Application represents the bootstrapped serverconf process.
type Application struct {
	config   *Config
	services *Services
}

// LogOutput is where application logs are written. Standard output is kept
// free for command results and the MCP stdio transport.
var LogOutput io.Writer = os.Stderr

// NewApplication loads the configuration, initializes logging and builds the
// services. The returned application must be closed.
func NewApplication(ctx context.Context, cfg *Config) (*Application, error) {
	var settings config.Config
	if cfg.Settings != nil {
		settings = *cfg.Settings
	} else {
		loaded, err := config.LoadConfig(cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load serverconf configuration: %w", err)
		}
		settings = loaded
	}
	if cfg.StoreBackend != "" {
		settings.Store.Backend = cfg.StoreBackend
		if err := config.Validate(settings); err != nil {
			return nil, fmt.Errorf("invalid store backend override: %w", err)
		}
	}
	cfg.Settings = &settings

	level := logging.ParseLevel(settings.Logging.Level)
	if cfg.Debug {
		level = logging.LevelDebug
	}
	logging.Init(level, settings.Logging.Format, LogOutput)

	services, err := InitializeServices(ctx, settings)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{config: cfg, services: services}, nil
}

// Services returns the initialized services.
func (a *Application) Services() *Services {
	return a.services
}

// Settings returns the effective configuration.
func (a *Application) Settings() config.Config {
	return *a.config.Settings
}

// Serve runs the MCP server until ctx is cancelled or the client disconnects.
func (a *Application) Serve(ctx context.Context) error {
	return runServe(ctx, a.config.Version, a.config.Settings.Metrics.Address, a.services)
}

// Close releases the store and trace file.
func (a *Application) Close() error {
	return a.services.Close()
}
