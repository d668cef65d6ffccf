package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/giantswarm/serverconf/internal/validation"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*Config)
		wantFields []string
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:   "memory needs nothing",
			modify: func(c *Config) { c.Store = StoreConfig{Backend: BackendMemory} },
		},
		{
			name:   "kubernetes without kubeconfig falls back to ambient config",
			modify: func(c *Config) { c.Store.Backend = BackendKubernetes },
		},
		{
			name:       "file without path",
			modify:     func(c *Config) { c.Store.Path = " " },
			wantFields: []string{"store.path"},
		},
		{
			name:       "sqlite without path",
			modify:     func(c *Config) { c.Store = StoreConfig{Backend: BackendSQLite} },
			wantFields: []string{"store.sqlitePath"},
		},
		{
			name: "several problems at once",
			modify: func(c *Config) {
				c.Defaults.MaxPageSize = -1
				c.Defaults.LocalRepositoryMode = "graph"
				c.Identity.Administrators = []string{"garygeeke", ""}
				c.Logging.Format = "xml"
				c.ConflictRetries = -2
			},
			wantFields: []string{"defaults.maxPageSize", "defaults.localRepositoryMode", "identity.administrators", "logging.format", "conflictRetries"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig("/etc/serverconf")
			tt.modify(&cfg)

			err := Validate(cfg)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			errs, ok := err.(validation.ValidationErrors)
			if assert.True(t, ok, "expected ValidationErrors, got %T", err) {
				var fields []string
				for _, e := range errs {
					fields = append(fields, e.Field)
				}
				assert.Equal(t, tt.wantFields, fields)
			}
		})
	}
}
