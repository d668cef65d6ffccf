package api

import (
	"sync"

	"github.com/giantswarm/serverconf/pkg/logging"
)

var (
	serverConfigHandler ServerConfigHandler
	toolProviders       []ToolProvider

	// handlerMutex protects all handler registry operations.
	handlerMutex sync.RWMutex
)

// RegisterServerConfig registers the configuration service implementation.
// A later registration replaces the earlier one.
func RegisterServerConfig(h ServerConfigHandler) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	logging.Debug("API", "Registering server config handler: %v", h != nil)
	serverConfigHandler = h
}

// GetServerConfig returns the registered configuration service, or nil.
func GetServerConfig() ServerConfigHandler {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	return serverConfigHandler
}

// RegisterToolProvider adds a tool provider to the set exposed by transports.
func RegisterToolProvider(p ToolProvider) {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	toolProviders = append(toolProviders, p)
}

// GetToolProviders returns a snapshot of the registered tool providers.
func GetToolProviders() []ToolProvider {
	handlerMutex.RLock()
	defer handlerMutex.RUnlock()
	out := make([]ToolProvider, len(toolProviders))
	copy(out, toolProviders)
	return out
}

// ResetHandlers clears every registration. Intended for tests.
func ResetHandlers() {
	handlerMutex.Lock()
	defer handlerMutex.Unlock()
	serverConfigHandler = nil
	toolProviders = nil
}
