package serverconfig

import (
	"context"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/audit"
	"github.com/giantswarm/serverconf/internal/dependency"
	"github.com/giantswarm/serverconf/internal/document"
	"github.com/giantswarm/serverconf/internal/merge"
	"github.com/giantswarm/serverconf/internal/validation"
)

// ConfigureAccessService inserts or replaces one access service by name.
func (s *Service) ConfigureAccessService(ctx context.Context, req api.Request, svc document.AccessServiceConfig) (api.Outcome, error) {
	return s.mutate(ctx, req, mutation{
		operation: OpConfigureAccessService,
		action:    audit.ActionConfigureAccessService,
		data:      audit.Data{Subject: svc.AccessServiceName},
		validate:  func() error { return validation.ValidateAccessService(svc) },
		rule: merge.Rule{
			Section: dependency.SectionAccessServices,
			Enables: true,
			Apply: func(doc *document.ServerConfig) bool {
				doc.AccessServices = merge.MergeAccessServices(doc.AccessServices, svc)
				return true
			},
		},
	})
}

// RemoveAccessService removes one access service; absent services are a no-op.
func (s *Service) RemoveAccessService(ctx context.Context, req api.Request, accessServiceName string) (api.Outcome, error) {
	return s.mutate(ctx, req, mutation{
		operation: OpRemoveAccessService,
		action:    audit.ActionRemoveAccessService,
		data:      audit.Data{Subject: accessServiceName},
		validate:  func() error { return validation.ValidateRequired("accessServiceName", accessServiceName) },
		rule: merge.Rule{
			Section: dependency.SectionAccessServices,
			Apply: func(doc *document.ServerConfig) bool {
				remaining, removed := merge.RemoveAccessService(doc.AccessServices, accessServiceName)
				if !removed {
					return false
				}
				doc.AccessServices = nilIfEmpty(remaining)
				return true
			},
		},
	})
}

// GetAccessServices returns the configured access services, possibly none.
func (s *Service) GetAccessServices(ctx context.Context, req api.Request) ([]document.AccessServiceConfig, error) {
	doc, err := s.read(ctx, OpGetAccessServices, req)
	if err != nil {
		return nil, err
	}
	if len(doc.AccessServices) == 0 {
		return []document.AccessServiceConfig{}, nil
	}
	return doc.AccessServices, nil
}

// ClearAccessServices removes every access service.
func (s *Service) ClearAccessServices(ctx context.Context, req api.Request) (api.Outcome, error) {
	return s.mutate(ctx, req, mutation{
		operation: OpClearAccessServices,
		action:    audit.ActionClearAccessServices,
		rule: merge.Rule{
			Section: dependency.SectionAccessServices,
			Apply: func(doc *document.ServerConfig) bool {
				if len(doc.AccessServices) == 0 {
					return false
				}
				doc.AccessServices = nil
				return true
			},
		},
	})
}

// ConfigureViewService inserts or replaces one view service by name.
func (s *Service) ConfigureViewService(ctx context.Context, req api.Request, svc document.ViewServiceConfig) (api.Outcome, error) {
	return s.mutate(ctx, req, mutation{
		operation: OpConfigureViewService,
		action:    audit.ActionConfigureViewService,
		data:      audit.Data{Subject: svc.ViewServiceName},
		validate:  func() error { return validation.ValidateViewService(svc) },
		rule: merge.Rule{
			Section: dependency.SectionViewServices,
			Enables: true,
			Apply: func(doc *document.ServerConfig) bool {
				doc.ViewServices = merge.MergeViewServices(doc.ViewServices, svc)
				return true
			},
		},
	})
}

// RemoveViewService removes one view service; absent services are a no-op.
func (s *Service) RemoveViewService(ctx context.Context, req api.Request, viewServiceName string) (api.Outcome, error) {
	return s.mutate(ctx, req, mutation{
		operation: OpRemoveViewService,
		action:    audit.ActionRemoveViewService,
		data:      audit.Data{Subject: viewServiceName},
		validate:  func() error { return validation.ValidateRequired("viewServiceName", viewServiceName) },
		rule: merge.Rule{
			Section: dependency.SectionViewServices,
			Apply: func(doc *document.ServerConfig) bool {
				remaining, removed := merge.RemoveViewService(doc.ViewServices, viewServiceName)
				if !removed {
					return false
				}
				doc.ViewServices = nilIfEmpty(remaining)
				return true
			},
		},
	})
}

// GetViewServices returns the configured view services, possibly none.
func (s *Service) GetViewServices(ctx context.Context, req api.Request) ([]document.ViewServiceConfig, error) {
	doc, err := s.read(ctx, OpGetViewServices, req)
	if err != nil {
		return nil, err
	}
	if len(doc.ViewServices) == 0 {
		return []document.ViewServiceConfig{}, nil
	}
	return doc.ViewServices, nil
}

// ClearViewServices removes every view service.
func (s *Service) ClearViewServices(ctx context.Context, req api.Request) (api.Outcome, error) {
	return s.mutate(ctx, req, mutation{
		operation: OpClearViewServices,
		action:    audit.ActionClearViewServices,
		rule: merge.Rule{
			Section: dependency.SectionViewServices,
			Apply: func(doc *document.ServerConfig) bool {
				if len(doc.ViewServices) == 0 {
					return false
				}
				doc.ViewServices = nil
				return true
			},
		},
	})
}

func nilIfEmpty[T any](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	return in
}
