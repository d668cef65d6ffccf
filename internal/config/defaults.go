package config

import (
	"os/user"
	"path/filepath"

	"github.com/giantswarm/serverconf/internal/document"
)

const (
	// DefaultBucket is the NATS key-value bucket used when none is configured.
	DefaultBucket = "serverconf"

	// DefaultNamespace is the Kubernetes namespace used when none is configured.
	DefaultNamespace = "default"

	// DefaultConflictRetries bounds reload-and-reapply attempts on store conflicts.
	DefaultConflictRetries = 5
)

// GetDefaultConfig returns the default configuration for a configuration
// directory. Store paths are placed inside configDir.
func GetDefaultConfig(configDir string) Config {
	return Config{
		Store: StoreConfig{
			Backend:    BackendFile,
			Path:       filepath.Join(configDir, "servers"),
			SQLitePath: filepath.Join(configDir, "serverconf.db"),
			Namespace:  DefaultNamespace,
			Bucket:     DefaultBucket,
		},
		Identity: IdentityConfig{
			LocalUserID: currentUserName(),
		},
		Defaults: DefaultsConfig{
			MaxPageSize:           document.DefaultMaxPageSize,
			ConformanceServerType: document.DefaultConformanceServerType,
			LocalRepositoryMode:   document.LocalRepositoryModeInMemory,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		ConflictRetries: DefaultConflictRetries,
	}
}

var currentUserName = func() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	return u.Username
}
