// Package api is the transport-agnostic operation surface of serverconf.
//
// It holds the contracts shared by every caller of the configuration service:
//
//   - ServerConfigHandler: one method per configuration change or read, all
//     taking a Request (server name and optional delegating user)
//   - error kinds: InvalidParameter, UserNotAuthorized and ConfigurationError,
//     carried by *OperationError together with the name of the operation
//   - Response: the object returned to remote callers, carrying either a
//     success marker (optionally with payload) or an error kind and message
//   - ToolProvider / ToolMetadata / CallToolResult: the tool-style surface used
//     by the MCP server and the CLI
//
// Handlers are registered once during bootstrap and looked up with
// GetServerConfig. Registration and lookup are safe for concurrent use.
package api
