package config

// Config is the top-level application configuration.
type Config struct {
	Store           StoreConfig    `mapstructure:"store" yaml:"store"`
	Identity        IdentityConfig `mapstructure:"identity" yaml:"identity"`
	Defaults        DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
	Logging         LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Metrics         MetricsConfig  `mapstructure:"metrics" yaml:"metrics"`
	Trace           TraceConfig    `mapstructure:"trace" yaml:"trace"`
	ConflictRetries int            `mapstructure:"conflictRetries" yaml:"conflictRetries"`
}

// Store backends.
const (
	BackendMemory     = "memory"
	BackendFile       = "file"
	BackendSQLite     = "sqlite"
	BackendKubernetes = "kubernetes"
	BackendNATS       = "nats"
)

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Backend    string `mapstructure:"backend" yaml:"backend"`
	Path       string `mapstructure:"path" yaml:"path,omitempty"`             // file backend directory
	SQLitePath string `mapstructure:"sqlitePath" yaml:"sqlitePath,omitempty"` // sqlite database file
	Namespace  string `mapstructure:"namespace" yaml:"namespace,omitempty"`   // kubernetes namespace
	Kubeconfig string `mapstructure:"kubeconfig" yaml:"kubeconfig,omitempty"` // empty uses in-cluster or default loading rules
	NATSURL    string `mapstructure:"natsURL" yaml:"natsURL,omitempty"`
	Bucket     string `mapstructure:"bucket" yaml:"bucket,omitempty"`
}

// IdentityConfig controls who is recorded as the acting user and who may
// change server configurations.
type IdentityConfig struct {
	LocalUserID    string   `mapstructure:"localUserId" yaml:"localUserId,omitempty"`
	Administrators []string `mapstructure:"administrators" yaml:"administrators,omitempty"`
}

// DefaultsConfig parametrizes automatically provisioned sections.
type DefaultsConfig struct {
	MaxPageSize           int    `mapstructure:"maxPageSize" yaml:"maxPageSize"`
	ConformanceServerType string `mapstructure:"conformanceServerType" yaml:"conformanceServerType"`
	LocalRepositoryMode   string `mapstructure:"localRepositoryMode" yaml:"localRepositoryMode"`
}

// LoggingConfig configures pkg/logging.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig configures the Prometheus listener of the serve command.
type MetricsConfig struct {
	Address string `mapstructure:"address" yaml:"address,omitempty"`
}

// TraceConfig configures the optional JSON-lines trace file.
type TraceConfig struct {
	File string `mapstructure:"file" yaml:"file,omitempty"`
}
