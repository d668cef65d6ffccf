package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/giantswarm/serverconf/pkg/logging"
)

const (
	userConfigDir  = ".config/serverconf"
	configName     = "config"
	configFileName = configName + ".yaml"
	envPrefix      = "SERVERCONF"
)

// GetDefaultConfigPath returns ~/.config/serverconf.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// LoadConfig loads config.yaml from configPath, or from the default
// directory when configPath is empty, applies environment overrides and
// validates the result.
func LoadConfig(configPath string) (Config, error) {
	if configPath == "" {
		var err error
		if configPath, err = GetDefaultConfigPath(); err != nil {
			return Config{}, err
		}
	}

	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error loading config from %s: %w", filepath.Join(configPath, configFileName), err)
		}
		logging.Info("ConfigLoader", "No %s found in %s, using defaults", configFileName, configPath)
	} else {
		logging.Info("ConfigLoader", "Loaded configuration from %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding configuration: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// newViper returns a viper instance seeded with the defaults of configPath.
// Defaults are registered key by key so that AutomaticEnv can override every
// one of them.
func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.AddConfigPath(configPath)
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := GetDefaultConfig(configPath)
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.sqlitePath", d.Store.SQLitePath)
	v.SetDefault("store.namespace", d.Store.Namespace)
	v.SetDefault("store.kubeconfig", d.Store.Kubeconfig)
	v.SetDefault("store.natsURL", d.Store.NATSURL)
	v.SetDefault("store.bucket", d.Store.Bucket)
	v.SetDefault("identity.localUserId", d.Identity.LocalUserID)
	v.SetDefault("identity.administrators", []string{})
	v.SetDefault("defaults.maxPageSize", d.Defaults.MaxPageSize)
	v.SetDefault("defaults.conformanceServerType", d.Defaults.ConformanceServerType)
	v.SetDefault("defaults.localRepositoryMode", d.Defaults.LocalRepositoryMode)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("metrics.address", d.Metrics.Address)
	v.SetDefault("trace.file", d.Trace.File)
	v.SetDefault("conflictRetries", d.ConflictRetries)
	return v
}
