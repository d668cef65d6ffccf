package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0644))
}

func TestLoadConfig_DefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	want := GetDefaultConfig(dir)
	want.Identity.Administrators = []string{}
	assert.Equal(t, want, cfg)
	assert.Equal(t, filepath.Join(dir, "servers"), cfg.Store.Path)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
store:
  backend: sqlite
  sqlitePath: /var/lib/serverconf/registry.db
identity:
  localUserId: garygeeke
  administrators:
    - garygeeke
    - erinoverview
defaults:
  maxPageSize: 100
logging:
  level: debug
  format: json
metrics:
  address: ":9090"
conflictRetries: 3
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/var/lib/serverconf/registry.db", cfg.Store.SQLitePath)
	assert.Equal(t, filepath.Join(dir, "servers"), cfg.Store.Path)
	assert.Equal(t, "garygeeke", cfg.Identity.LocalUserID)
	assert.Equal(t, []string{"garygeeke", "erinoverview"}, cfg.Identity.Administrators)
	assert.Equal(t, 100, cfg.Defaults.MaxPageSize)
	assert.Equal(t, "Conformance Suite Services", cfg.Defaults.ConformanceServerType)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, ":9090", cfg.Metrics.Address)
	assert.Equal(t, 3, cfg.ConflictRetries)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "store:\n  backend: file\n")

	t.Setenv("SERVERCONF_STORE_BACKEND", "nats")
	t.Setenv("SERVERCONF_STORE_NATSURL", "nats://localhost:4222")
	t.Setenv("SERVERCONF_DEFAULTS_MAXPAGESIZE", "25")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, BackendNATS, cfg.Store.Backend)
	assert.Equal(t, "nats://localhost:4222", cfg.Store.NATSURL)
	assert.Equal(t, 25, cfg.Defaults.MaxPageSize)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "store: [unclosed",
			wantErr: "error loading config",
		},
		{
			name:    "unknown backend",
			content: "store:\n  backend: etcd\n",
			wantErr: "store.backend",
		},
		{
			name:    "nats without url",
			content: "store:\n  backend: nats\n",
			wantErr: "store.natsURL",
		},
		{
			name:    "non-positive page size",
			content: "defaults:\n  maxPageSize: 0\n",
			wantErr: "defaults.maxPageSize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := LoadConfig(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
