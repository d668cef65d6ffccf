// Package config loads the application configuration of serverconf.
//
// Configuration is read from config.yaml in a single directory. The default
// directory is ~/.config/serverconf; commands accept --config-path to use
// another one. A missing file is not an error: the defaults returned by
// GetDefaultConfig apply.
//
// Every key can be overridden from the environment with the SERVERCONF_
// prefix, dots replaced by underscores:
//
//	SERVERCONF_STORE_BACKEND=sqlite
//	SERVERCONF_IDENTITY_ADMINISTRATORS=garygeeke,erinoverview
//
// # File Format
//
//	store:
//	  backend: file
//	  path: /var/lib/serverconf/servers
//	identity:
//	  localUserId: garygeeke
//	  administrators: [garygeeke]
//	defaults:
//	  maxPageSize: 50
//	logging:
//	  level: info
//	  format: text
//	metrics:
//	  address: ":9090"
//	trace:
//	  file: /var/log/serverconf/trace.jsonl
//	conflictRetries: 5
package config
