package config

import (
	"strings"

	"github.com/giantswarm/serverconf/internal/document"
	"github.com/giantswarm/serverconf/internal/validation"
)

var knownBackends = map[string]bool{
	BackendMemory:     true,
	BackendFile:       true,
	BackendSQLite:     true,
	BackendKubernetes: true,
	BackendNATS:       true,
}

// Validate checks cfg and reports every problem at once.
func Validate(cfg Config) error {
	var errs validation.ValidationErrors

	switch backend := cfg.Store.Backend; {
	case !knownBackends[backend]:
		errs.Add("store.backend", "must be one of memory, file, sqlite, kubernetes, nats", backend)
	case backend == BackendFile && strings.TrimSpace(cfg.Store.Path) == "":
		errs.Add("store.path", "is required for the file backend")
	case backend == BackendSQLite && strings.TrimSpace(cfg.Store.SQLitePath) == "":
		errs.Add("store.sqlitePath", "is required for the sqlite backend")
	case backend == BackendNATS && strings.TrimSpace(cfg.Store.NATSURL) == "":
		errs.Add("store.natsURL", "is required for the nats backend")
	}

	if cfg.Defaults.MaxPageSize <= 0 {
		errs.Add("defaults.maxPageSize", "must be positive", cfg.Defaults.MaxPageSize)
	}
	switch cfg.Defaults.LocalRepositoryMode {
	case "", document.LocalRepositoryModeInMemory, document.LocalRepositoryModeNoRepository:
	default:
		errs.Add("defaults.localRepositoryMode", "must be in-memory-repository or no-repository", cfg.Defaults.LocalRepositoryMode)
	}

	for i, admin := range cfg.Identity.Administrators {
		if strings.TrimSpace(admin) == "" {
			errs.Add("identity.administrators", "must not contain blank entries", i)
		}
	}

	switch cfg.Logging.Format {
	case "", "text", "json":
	default:
		errs.Add("logging.format", "must be text or json", cfg.Logging.Format)
	}

	if cfg.ConflictRetries < 0 {
		errs.Add("conflictRetries", "must not be negative", cfg.ConflictRetries)
	}
	return errs.Err()
}
