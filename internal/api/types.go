package api

import (
	"context"
	"errors"
	"net/http"
)

// Request identifies the target of a configuration call.
type Request struct {
	// ServerName is the key of the configuration document. Required.
	ServerName string `json:"serverName"`

	// DelegatingUserID is the user on whose behalf an internal caller acts.
	// When set it is recorded in the audit trail instead of the resolved caller.
	DelegatingUserID string `json:"delegatingUserId,omitempty"`
}

// Outcome is the success signal of a mutating operation.
type Outcome string

const (
	// OutcomeApplied means the document was updated, audited and saved.
	OutcomeApplied Outcome = "applied"

	// OutcomeNoOp means the document was already in the requested state; nothing was written.
	OutcomeNoOp Outcome = "noop"
)

// Response is the object handed back to remote callers.
// Exactly one of Payload (optional on success) or ExceptionKind is meaningful.
type Response struct {
	Operation        string      `json:"operation"`
	ServerName       string      `json:"serverName,omitempty"`
	RelatedHTTPCode  int         `json:"relatedHTTPCode"`
	Outcome          Outcome     `json:"outcome,omitempty"`
	Payload          interface{} `json:"payload,omitempty"`
	ExceptionKind    ErrorKind   `json:"exceptionKind,omitempty"`
	ExceptionMessage string      `json:"exceptionMessage,omitempty"`
}

// Failed reports whether the response carries an error.
func (r Response) Failed() bool {
	return r.ExceptionKind != ""
}

// NewResponse builds the response for an operation result.
func NewResponse(operation, serverName string, outcome Outcome, payload interface{}, err error) Response {
	resp := Response{
		Operation:       operation,
		ServerName:      serverName,
		RelatedHTTPCode: http.StatusOK,
	}
	if err != nil {
		var opErr *OperationError
		if !errors.As(err, &opErr) {
			opErr = NewConfigurationError(operation, serverName, err)
		}
		resp.RelatedHTTPCode = opErr.Kind.HTTPStatus()
		resp.ExceptionKind = opErr.Kind
		resp.ExceptionMessage = opErr.Error()
		return resp
	}
	resp.Outcome = outcome
	resp.Payload = payload
	return resp
}

// CallToolResult represents the result of a tool call.
type CallToolResult struct {
	Content []interface{} `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// ToolMetadata describes a tool that can be exposed.
type ToolMetadata struct {
	Name        string
	Description string
	Parameters  []ParameterMetadata
}

// ParameterMetadata describes a tool parameter.
type ParameterMetadata struct {
	Name        string
	Type        string // "string", "number", "boolean", "object", "array"
	Required    bool
	Description string
}

// ToolProvider is implemented by components that expose operations as tools.
type ToolProvider interface {
	// GetTools returns all tools this provider offers.
	GetTools() []ToolMetadata

	// ExecuteTool executes a tool by name.
	ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*CallToolResult, error)
}
