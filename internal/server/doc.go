// Package server exposes the configuration operations over the Model Context
// Protocol.
//
// Every tool registered by an api.ToolProvider becomes an MCP tool with the
// same name and parameters. Tool results are passed through unchanged: the
// serverconf adapter encodes each operation response as JSON text and marks
// failed operations as tool errors.
//
// The server speaks MCP over stdio, so it can be launched directly by an MCP
// client:
//
//	serverconf serve --store-backend sqlite
//
// When a metrics address is configured the serve command also runs a
// Prometheus /metrics listener through ServeMetrics.
package server
