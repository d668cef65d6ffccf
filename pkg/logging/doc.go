// Package logging provides subsystem-keyed structured logging for serverconf.
//
// The package wraps Go's log/slog with a small set of package-level helpers so
// that every component logs the same way:
//
//	logging.Init(logging.LevelInfo, logging.FormatText, os.Stderr)
//
//	logging.Info("Store", "Saved configuration for %s", serverName)
//	logging.Debug("ServerConfig", "Provisioned %v for %s", sections, serverName)
//	logging.Error("Store", err, "Failed to save configuration for %s", serverName)
//
// Every record carries a "subsystem" attribute, and Error records additionally
// carry an "error" attribute. Init also routes controller-runtime logging
// through the same handler, so the Kubernetes-backed store does not complain
// about an uninitialised logger.
//
// Before Init is called the helpers write to stderr at info level.
package logging
