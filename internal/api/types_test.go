package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewResponse(t *testing.T) {
	t.Run("success with payload", func(t *testing.T) {
		resp := NewResponse("getEngineConfiguration", "s1", "", []string{"A"}, nil)
		assert.False(t, resp.Failed())
		assert.Equal(t, http.StatusOK, resp.RelatedHTTPCode)
		assert.Equal(t, []string{"A"}, resp.Payload)
	})

	t.Run("noop", func(t *testing.T) {
		resp := NewResponse("clearEngineConfiguration", "s1", OutcomeNoOp, nil, nil)
		assert.False(t, resp.Failed())
		assert.Equal(t, OutcomeNoOp, resp.Outcome)
	})

	t.Run("typed error", func(t *testing.T) {
		resp := NewResponse("addEngine", "", "", nil, NewInvalidParameterError("addEngine", "", "serverName must not be blank"))
		assert.True(t, resp.Failed())
		assert.Equal(t, KindInvalidParameter, resp.ExceptionKind)
		assert.Equal(t, http.StatusBadRequest, resp.RelatedHTTPCode)
		assert.Nil(t, resp.Payload)
	})

	t.Run("untyped error becomes configuration error", func(t *testing.T) {
		resp := NewResponse("addEngine", "s1", "", nil, errors.New("boom"))
		assert.Equal(t, KindConfigurationError, resp.ExceptionKind)
		assert.Equal(t, http.StatusInternalServerError, resp.RelatedHTTPCode)
		assert.Contains(t, resp.ExceptionMessage, "boom")
	})
}

type stubProvider struct{}

func (stubProvider) GetTools() []ToolMetadata { return []ToolMetadata{{Name: "stub"}} }

func (stubProvider) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*CallToolResult, error) {
	return &CallToolResult{}, nil
}

func TestToolProviderRegistry(t *testing.T) {
	ResetHandlers()
	t.Cleanup(ResetHandlers)

	assert.Nil(t, GetServerConfig())
	assert.Empty(t, GetToolProviders())

	RegisterToolProvider(stubProvider{})
	providers := GetToolProviders()
	if assert.Len(t, providers, 1) {
		assert.Equal(t, "stub", providers[0].GetTools()[0].Name)
	}
}
