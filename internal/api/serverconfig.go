package api

import (
	"context"

	"github.com/giantswarm/serverconf/internal/document"
)

// ServerConfigHandler is the configuration operation surface.
//
// Mutating operations return OutcomeNoOp when the document already is in the
// requested state. Errors are always *OperationError.
type ServerConfigHandler interface {
	// Conformance suite workbenches
	EnableRepositoryConformanceWorkbench(ctx context.Context, req Request, workbench document.RepositoryConformanceWorkbenchConfig) (Outcome, error)
	EnablePlatformConformanceWorkbench(ctx context.Context, req Request, tutPlatformRootURL string) (Outcome, error)
	EnableRepositoryPerformanceWorkbench(ctx context.Context, req Request, workbench document.RepositoryPerformanceWorkbenchConfig) (Outcome, error)
	DisableRepositoryConformanceWorkbench(ctx context.Context, req Request) (Outcome, error)
	DisablePlatformConformanceWorkbench(ctx context.Context, req Request) (Outcome, error)
	DisableAllConformanceWorkbenches(ctx context.Context, req Request) (Outcome, error)

	// Governance engines
	AddEngine(ctx context.Context, req Request, engine document.EngineConfig) (Outcome, error)
	GetEngineConfiguration(ctx context.Context, req Request) ([]document.EngineConfig, error)
	SetEngineConfiguration(ctx context.Context, req Request, engines []document.EngineConfig) (Outcome, error)
	ClearEngineConfiguration(ctx context.Context, req Request) (Outcome, error)

	// Security connector
	SetServerSecurityConnection(ctx context.Context, req Request, conn document.Connection) (Outcome, error)
	GetServerSecurityConnection(ctx context.Context, req Request) (*document.Connection, error)
	ClearServerSecurityConnection(ctx context.Context, req Request) (Outcome, error)

	// Access and view services
	ConfigureAccessService(ctx context.Context, req Request, svc document.AccessServiceConfig) (Outcome, error)
	RemoveAccessService(ctx context.Context, req Request, accessServiceName string) (Outcome, error)
	GetAccessServices(ctx context.Context, req Request) ([]document.AccessServiceConfig, error)
	ClearAccessServices(ctx context.Context, req Request) (Outcome, error)
	ConfigureViewService(ctx context.Context, req Request, svc document.ViewServiceConfig) (Outcome, error)
	RemoveViewService(ctx context.Context, req Request, viewServiceName string) (Outcome, error)
	GetViewServices(ctx context.Context, req Request) ([]document.ViewServiceConfig, error)
	ClearViewServices(ctx context.Context, req Request) (Outcome, error)

	// Whole document
	SetServerType(ctx context.Context, req Request, serverType string) (Outcome, error)
	GetServerConfig(ctx context.Context, req Request) (*document.ServerConfig, error)
	ListServers(ctx context.Context) ([]string, error)
}
