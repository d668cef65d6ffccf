package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/pkg/logging"
)

// MCPServer serves the tools of one or more providers over MCP.
type MCPServer struct {
	mcpServer *server.MCPServer
	tools     int
}

// NewMCPServer creates a server named name that registers every tool of providers.
func NewMCPServer(name, version string, providers ...api.ToolProvider) *MCPServer {
	mcpServer := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	m := &MCPServer{mcpServer: mcpServer}
	for _, p := range providers {
		for _, meta := range p.GetTools() {
			m.mcpServer.AddTool(toolFromMetadata(meta), bridge(p, meta.Name))
			m.tools++
		}
	}
	logging.Info("MCPServer", "Registered %d tools from %d providers", m.tools, len(providers))
	return m
}

// Start serves MCP over stdin and stdout until the client disconnects or ctx
// is done.
func (m *MCPServer) Start(ctx context.Context) error {
	return m.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve reads JSON-RPC messages from in and writes responses to out. It
// returns nil when in reaches EOF and ctx.Err() once ctx is done.
func (m *MCPServer) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	logging.Info("MCPServer", "Serving %d tools over stdio", m.tools)
	return server.NewStdioServer(m.mcpServer).Listen(ctx, in, out)
}

// toolFromMetadata converts provider metadata into an MCP tool definition.
func toolFromMetadata(meta api.ToolMetadata) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(meta.Description)}
	for _, p := range meta.Parameters {
		propOpts := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		switch p.Type {
		case "object":
			opts = append(opts, mcp.WithObject(p.Name, propOpts...))
		case "array":
			propOpts = append(propOpts, mcp.Items(map[string]interface{}{"type": "object"}))
			opts = append(opts, mcp.WithArray(p.Name, propOpts...))
		case "number":
			opts = append(opts, mcp.WithNumber(p.Name, propOpts...))
		case "boolean":
			opts = append(opts, mcp.WithBoolean(p.Name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		}
	}
	return mcp.NewTool(meta.Name, opts...)
}

// bridge returns the MCP handler that forwards a call to the provider.
func bridge(p api.ToolProvider, toolName string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := p.ExecuteTool(ctx, toolName, request.GetArguments())
		if err != nil {
			logging.Warn("MCPServer", "Tool %s failed: %v", toolName, err)
			return mcp.NewToolResultError(fmt.Sprintf("Tool execution failed: %v", err)), nil
		}
		return convertResult(result), nil
	}
}

func convertResult(result *api.CallToolResult) *mcp.CallToolResult {
	contents := make([]mcp.Content, 0, len(result.Content))
	for _, c := range result.Content {
		switch v := c.(type) {
		case string:
			contents = append(contents, mcp.NewTextContent(v))
		default:
			data, err := json.Marshal(v)
			if err != nil {
				data = []byte(fmt.Sprintf("%v", v))
			}
			contents = append(contents, mcp.NewTextContent(string(data)))
		}
	}
	return &mcp.CallToolResult{Content: contents, IsError: result.IsError}
}
