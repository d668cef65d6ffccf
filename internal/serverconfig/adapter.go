package serverconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/document"
)

// ToolPrefix is prepended to every operation name to form its tool name.
const ToolPrefix = "serverconf_"

// Adapter exposes a ServerConfigHandler as tools. Every tool result is a
// JSON encoded api.Response.
type Adapter struct {
	handler api.ServerConfigHandler
	tools   map[string]toolSpec
}

type toolSpec struct {
	meta api.ToolMetadata
	run  func(ctx context.Context, h api.ServerConfigHandler, req api.Request, args map[string]interface{}) (api.Outcome, interface{}, error)
}

// NewAdapter returns an Adapter for h.
func NewAdapter(h api.ServerConfigHandler) *Adapter {
	a := &Adapter{handler: h, tools: make(map[string]toolSpec)}
	a.registerTools()
	return a
}

// Register makes the adapter available through the api package.
func (a *Adapter) Register() {
	api.RegisterToolProvider(a)
}

var requestParams = []api.ParameterMetadata{
	{Name: "serverName", Type: "string", Required: true, Description: "Name of the server whose configuration is changed"},
	{Name: "delegatingUserId", Type: "string", Description: "User on whose behalf the call is made"},
}

func (a *Adapter) add(operation, description string, params []api.ParameterMetadata, run func(context.Context, api.ServerConfigHandler, api.Request, map[string]interface{}) (api.Outcome, interface{}, error)) {
	name := ToolPrefix + operation
	a.tools[name] = toolSpec{
		meta: api.ToolMetadata{
			Name:        name,
			Description: description,
			Parameters:  append(append([]api.ParameterMetadata{}, requestParams...), params...),
		},
		run: run,
	}
}

// outcomeOnly adapts a mutating call without payload.
func outcomeOnly(fn func(context.Context, api.Request) (api.Outcome, error)) func(context.Context, api.ServerConfigHandler, api.Request, map[string]interface{}) (api.Outcome, interface{}, error) {
	return func(ctx context.Context, _ api.ServerConfigHandler, req api.Request, _ map[string]interface{}) (api.Outcome, interface{}, error) {
		outcome, err := fn(ctx, req)
		return outcome, nil, err
	}
}

func (a *Adapter) registerTools() {
	h := a.handler

	a.add(OpEnableRepositoryConformanceWorkbench, "Enable the repository conformance workbench",
		[]api.ParameterMetadata{{Name: "workbench", Type: "object", Required: true, Description: "Repository workbench configuration (tutRepositoryServerName, maxSearchResults)"}},
		func(ctx context.Context, h api.ServerConfigHandler, req api.Request, args map[string]interface{}) (api.Outcome, interface{}, error) {
			var wb document.RepositoryConformanceWorkbenchConfig
			if err := decodeArg(args, "workbench", &wb); err != nil {
				return "", nil, invalidArg(OpEnableRepositoryConformanceWorkbench, req, err)
			}
			outcome, err := h.EnableRepositoryConformanceWorkbench(ctx, req, wb)
			return outcome, nil, err
		})
	a.add(OpEnablePlatformConformanceWorkbench, "Enable the platform conformance workbench",
		[]api.ParameterMetadata{{Name: "tutPlatformRootURL", Type: "string", Required: true, Description: "Root URL of the platform under test"}},
		func(ctx context.Context, h api.ServerConfigHandler, req api.Request, args map[string]interface{}) (api.Outcome, interface{}, error) {
			outcome, err := h.EnablePlatformConformanceWorkbench(ctx, req, stringArg(args, "tutPlatformRootURL"))
			return outcome, nil, err
		})
	a.add(OpEnableRepositoryPerformanceWorkbench, "Enable the repository performance workbench",
		[]api.ParameterMetadata{{Name: "workbench", Type: "object", Required: true, Description: "Performance workbench configuration"}},
		func(ctx context.Context, h api.ServerConfigHandler, req api.Request, args map[string]interface{}) (api.Outcome, interface{}, error) {
			var wb document.RepositoryPerformanceWorkbenchConfig
			if err := decodeArg(args, "workbench", &wb); err != nil {
				return "", nil, invalidArg(OpEnableRepositoryPerformanceWorkbench, req, err)
			}
			outcome, err := h.EnableRepositoryPerformanceWorkbench(ctx, req, wb)
			return outcome, nil, err
		})
	a.add(OpDisableRepositoryConformanceWorkbench, "Disable the repository conformance workbench", nil, outcomeOnly(h.DisableRepositoryConformanceWorkbench))
	a.add(OpDisablePlatformConformanceWorkbench, "Disable the platform conformance workbench", nil, outcomeOnly(h.DisablePlatformConformanceWorkbench))
	a.add(OpDisableAllConformanceWorkbenches, "Reset conformance workbenches, repository services and server type", nil, outcomeOnly(h.DisableAllConformanceWorkbenches))

	a.add(OpAddEngine, "Add or replace a governance engine",
		[]api.ParameterMetadata{{Name: "engine", Type: "object", Required: true, Description: "Engine configuration; engineQualifiedName is required"}},
		func(ctx context.Context, h api.ServerConfigHandler, req api.Request, args map[string]interface{}) (api.Outcome, interface{}, error) {
			var engine document.EngineConfig
			if err := decodeArg(args, "engine", &engine); err != nil {
				return "", nil, invalidArg(OpAddEngine, req, err)
			}
			outcome, err := h.AddEngine(ctx, req, engine)
			return outcome, nil, err
		})
	a.add(OpGetEngineConfiguration, "List the governance engines", nil,
		func(ctx context.Context, h api.ServerConfigHandler, req api.Request, _ map[string]interface{}) (api.Outcome, interface{}, error) {
			engines, err := h.GetEngineConfiguration(ctx, req)
			return "", engines, err
		})
	a.add(OpSetEngineConfiguration, "Replace all governance engines",
		[]api.ParameterMetadata{{Name: "engines", Type: "array", Required: true, Description: "Complete list of engine configurations"}},
		func(ctx context.Context, h api.ServerConfigHandler, req api.Request, args map[string]interface{}) (api.Outcome, interface{}, error) {
			var engines []document.EngineConfig
			if err := decodeArg(args, "engines", &engines); err != nil {
				return "", nil, invalidArg(OpSetEngineConfiguration, req, err)
			}
			outcome, err := h.SetEngineConfiguration(ctx, req, engines)
			return outcome, nil, err
		})
	a.add(OpClearEngineConfiguration, "Remove all governance engines", nil, outcomeOnly(h.ClearEngineConfiguration))

	a.add(OpSetServerSecurityConnection, "Set the server security connector",
		[]api.ParameterMetadata{{Name: "connection", Type: "object", Required: true, Description: "Connection descriptor with connectorType"}},
		func(ctx context.Context, h api.ServerConfigHandler, req api.Request, args map[string]interface{}) (api.Outcome, interface{}, error) {
			var conn document.Connection
			if err := decodeArg(args, "connection", &conn); err != nil {
				return "", nil, invalidArg(OpSetServerSecurityConnection, req, err)
			}
			outcome, err := h.SetServerSecurityConnection(ctx, req, conn)
			return outcome, nil, err
		})
	a.add(OpGetServerSecurityConnection, "Show the server security connector", nil,
		func(ctx context.Context, h api.ServerConfigHandler, req api.Request, _ map[string]interface{}) (api.Outcome, interface{}, error) {
			conn, err := h.GetServerSecurityConnection(ctx, req)
			return "", conn, err
		})
	a.add(OpClearServerSecurityConnection, "Remove the server security connector", nil, outcomeOnly(h.ClearServerSecurityConnection))

	a.add(OpConfigureAccessService, "Add or replace an access service",
		[]api.ParameterMetadata{{Name: "accessService", Type: "object", Required: true, Description: "Access service configuration; accessServiceName is required"}},
		func(ctx context.Context, h api.ServerConfigHandler, req api.Request, args map[string]interface{}) (api.Outcome, interface{}, error) {
			var svc document.AccessServiceConfig
			if err := decodeArg(args, "accessService", &svc); err != nil {
				return "", nil, invalidArg(OpConfigureAccessService, req, err)
			}
			outcome, err := h.ConfigureAccessService(ctx, req, svc)
			return outcome, nil, err
		})
	a.add(OpRemoveAccessService, "Remove an access service",
		[]api.ParameterMetadata{{Name: "accessServiceName", Type: "string", Required: true, Description: "Name of the access service"}},
		func(ctx context.Context, h api.ServerConfigHandler, req api.Request, args map[string]interface{}) (api.Outcome, interface{}, error) {
			outcome, err := h.RemoveAccessService(ctx, req, stringArg(args, "accessServiceName"))
			return outcome, nil, err
		})
	a.add(OpGetAccessServices, "List the access services", nil,
		func(ctx context.Context, h api.ServerConfigHandler, req api.Request, _ map[string]interface{}) (api.Outcome, interface{}, error) {
			svcs, err := h.GetAccessServices(ctx, req)
			return "", svcs, err
		})
	a.add(OpClearAccessServices, "Remove all access services", nil, outcomeOnly(h.ClearAccessServices))

	a.add(OpConfigureViewService, "Add or replace a view service",
		[]api.ParameterMetadata{{Name: "viewService", Type: "object", Required: true, Description: "View service configuration; viewServiceName is required"}},
		func(ctx context.Context, h api.ServerConfigHandler, req api.Request, args map[string]interface{}) (api.Outcome, interface{}, error) {
			var svc document.ViewServiceConfig
			if err := decodeArg(args, "viewService", &svc); err != nil {
				return "", nil, invalidArg(OpConfigureViewService, req, err)
			}
			outcome, err := h.ConfigureViewService(ctx, req, svc)
			return outcome, nil, err
		})
	a.add(OpRemoveViewService, "Remove a view service",
		[]api.ParameterMetadata{{Name: "viewServiceName", Type: "string", Required: true, Description: "Name of the view service"}},
		func(ctx context.Context, h api.ServerConfigHandler, req api.Request, args map[string]interface{}) (api.Outcome, interface{}, error) {
			outcome, err := h.RemoveViewService(ctx, req, stringArg(args, "viewServiceName"))
			return outcome, nil, err
		})
	a.add(OpGetViewServices, "List the view services", nil,
		func(ctx context.Context, h api.ServerConfigHandler, req api.Request, _ map[string]interface{}) (api.Outcome, interface{}, error) {
			svcs, err := h.GetViewServices(ctx, req)
			return "", svcs, err
		})
	a.add(OpClearViewServices, "Remove all view services", nil, outcomeOnly(h.ClearViewServices))

	a.add(OpSetServerType, "Set the server type label",
		[]api.ParameterMetadata{{Name: "serverType", Type: "string", Required: true, Description: "New server type"}},
		func(ctx context.Context, h api.ServerConfigHandler, req api.Request, args map[string]interface{}) (api.Outcome, interface{}, error) {
			outcome, err := h.SetServerType(ctx, req, stringArg(args, "serverType"))
			return outcome, nil, err
		})
	a.add(OpGetServerConfig, "Show the whole configuration document", nil,
		func(ctx context.Context, h api.ServerConfigHandler, req api.Request, _ map[string]interface{}) (api.Outcome, interface{}, error) {
			doc, err := h.GetServerConfig(ctx, req)
			return "", doc, err
		})

	name := ToolPrefix + OpListServers
	a.tools[name] = toolSpec{
		meta: api.ToolMetadata{Name: name, Description: "List every configured server"},
		run: func(ctx context.Context, h api.ServerConfigHandler, _ api.Request, _ map[string]interface{}) (api.Outcome, interface{}, error) {
			names, err := h.ListServers(ctx)
			return "", names, err
		},
	}
}

// GetTools implements api.ToolProvider.
func (a *Adapter) GetTools() []api.ToolMetadata {
	tools := make([]api.ToolMetadata, 0, len(a.tools))
	for _, spec := range a.tools {
		tools = append(tools, spec.meta)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools
}

// ExecuteTool implements api.ToolProvider. Operation failures are reported
// in the result; the error return is reserved for unknown tools.
func (a *Adapter) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*api.CallToolResult, error) {
	spec, ok := a.tools[toolName]
	if !ok {
		return nil, fmt.Errorf("tool '%s' not found", toolName)
	}
	operation := toolName[len(ToolPrefix):]

	req := api.Request{
		ServerName:       stringArg(args, "serverName"),
		DelegatingUserID: stringArg(args, "delegatingUserId"),
	}
	outcome, payload, err := spec.run(ctx, a.handler, req, args)
	resp := api.NewResponse(operation, req.ServerName, outcome, payload, err)

	data, merr := json.MarshalIndent(resp, "", "  ")
	if merr != nil {
		return &api.CallToolResult{
			Content: []interface{}{fmt.Sprintf("Failed to encode response: %v", merr)},
			IsError: true,
		}, nil
	}
	return &api.CallToolResult{Content: []interface{}{string(data)}, IsError: resp.Failed()}, nil
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

// decodeArg converts a loosely typed argument into dst through JSON.
func decodeArg(args map[string]interface{}, key string, dst interface{}) error {
	raw, ok := args[key]
	if !ok || raw == nil {
		return fmt.Errorf("%s is required", key)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%s is malformed: %w", key, err)
	}
	return nil
}

func invalidArg(operation string, req api.Request, err error) error {
	return api.NewInvalidParameterError(operation, req.ServerName, err.Error())
}
