package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/serverconf/internal/api"
)

type stubProvider struct {
	lastArgs map[string]interface{}
}

func (p *stubProvider) GetTools() []api.ToolMetadata {
	return []api.ToolMetadata{
		{
			Name:        "serverconf_addEngine",
			Description: "Add or replace a governance engine",
			Parameters: []api.ParameterMetadata{
				{Name: "serverName", Type: "string", Required: true},
				{Name: "engine", Type: "object", Required: true},
			},
		},
		{
			Name:        "serverconf_setEngineConfiguration",
			Description: "Replace all governance engines",
			Parameters: []api.ParameterMetadata{
				{Name: "engines", Type: "array", Required: true},
			},
		},
		{Name: "serverconf_broken", Description: "Always fails"},
	}
}

func (p *stubProvider) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	p.lastArgs = args
	switch toolName {
	case "serverconf_broken":
		return nil, errors.New("backend unavailable")
	case "serverconf_setEngineConfiguration":
		return &api.CallToolResult{Content: []interface{}{map[string]string{"outcome": "noop"}}}, nil
	}
	return &api.CallToolResult{Content: []interface{}{`{"outcome":"applied"}`}, IsError: args["serverName"] == ""}, nil
}

func TestToolFromMetadata(t *testing.T) {
	tool := toolFromMetadata((&stubProvider{}).GetTools()[0])

	assert.Equal(t, "serverconf_addEngine", tool.Name)
	assert.Equal(t, "Add or replace a governance engine", tool.Description)
	assert.ElementsMatch(t, []string{"serverName", "engine"}, tool.InputSchema.Required)

	engine, ok := tool.InputSchema.Properties["engine"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "object", engine["type"])
	serverName, ok := tool.InputSchema.Properties["serverName"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "string", serverName["type"])
}

func TestNewMCPServerRegistersProviderTools(t *testing.T) {
	m := NewMCPServer("serverconf", "test", &stubProvider{})
	assert.Equal(t, 3, m.tools)
	assert.NotNil(t, m.mcpServer)
}

func TestBridge(t *testing.T) {
	p := &stubProvider{}

	call := func(tool string, args map[string]interface{}) *mcp.CallToolResult {
		req := mcp.CallToolRequest{}
		req.Params.Name = tool
		req.Params.Arguments = args
		result, err := bridge(p, tool)(context.Background(), req)
		require.NoError(t, err)
		return result
	}

	result := call("serverconf_addEngine", map[string]interface{}{"serverName": "cts"})
	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.JSONEq(t, `{"outcome":"applied"}`, text.Text)
	assert.Equal(t, "cts", p.lastArgs["serverName"])

	result = call("serverconf_addEngine", map[string]interface{}{"serverName": ""})
	assert.True(t, result.IsError)

	result = call("serverconf_setEngineConfiguration", nil)
	text, ok = mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.JSONEq(t, `{"outcome":"noop"}`, text.Text)

	result = call("serverconf_broken", nil)
	assert.True(t, result.IsError)
	text, ok = mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Contains(t, text.Text, "backend unavailable")
}

func TestServe(t *testing.T) {
	t.Run("answers until input ends", func(t *testing.T) {
		m := NewMCPServer("serverconf", "test", &stubProvider{})
		in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1"}}}` + "\n")
		var out bytes.Buffer

		require.NoError(t, m.Serve(context.Background(), in, &out))
		assert.Contains(t, out.String(), `"name":"serverconf"`)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		m := NewMCPServer("serverconf", "test", &stubProvider{})
		in, w := io.Pipe()
		defer w.Close()

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- m.Serve(ctx, in, io.Discard) }()
		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("Serve did not return after cancel")
		}
	})
}
