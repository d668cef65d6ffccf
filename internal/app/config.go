package app

import (
	"github.com/giantswarm/serverconf/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug forces debug logging regardless of logging.level.
	Debug bool

	// ConfigPath is the configuration directory. Empty uses ~/.config/serverconf.
	ConfigPath string

	// StoreBackend overrides store.backend when set.
	StoreBackend string

	// Version is reported to MCP clients.
	Version string

	// Settings is populated by NewApplication from the loaded configuration.
	Settings *config.Config
}

// NewConfig creates a new application configuration
func NewConfig(debug bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
	}
}
