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

// EnableRepositoryConformanceWorkbench records the repository workbench.
func (s *Service) EnableRepositoryConformanceWorkbench(ctx context.Context, req api.Request, workbench document.RepositoryConformanceWorkbenchConfig) (api.Outcome, error) {
	return s.mutate(ctx, req, mutation{
		operation: OpEnableRepositoryConformanceWorkbench,
		action:    audit.ActionEnableRepositoryWorkbench,
		data:      audit.Data{Subject: workbench.TutRepositoryServerName},
		validate:  func() error { return validation.ValidateRepositoryWorkbench(workbench) },
		rule: merge.Rule{
			Section: dependency.SectionConformanceSuite,
			Enables: true,
			Apply: func(doc *document.ServerConfig) bool {
				doc.ConformanceSuite = merge.SetRepositoryWorkbench(doc.ConformanceSuite, workbench)
				return true
			},
		},
	})
}

// EnablePlatformConformanceWorkbench records the platform workbench.
func (s *Service) EnablePlatformConformanceWorkbench(ctx context.Context, req api.Request, tutPlatformRootURL string) (api.Outcome, error) {
	return s.mutate(ctx, req, mutation{
		operation: OpEnablePlatformConformanceWorkbench,
		action:    audit.ActionEnablePlatformWorkbench,
		data:      audit.Data{Subject: tutPlatformRootURL},
		validate:  func() error { return validation.ValidateRootURL("tutPlatformRootURL", tutPlatformRootURL) },
		rule: merge.Rule{
			Section: dependency.SectionConformanceSuite,
			Enables: true,
			Apply: func(doc *document.ServerConfig) bool {
				doc.ConformanceSuite = merge.SetPlatformWorkbench(doc.ConformanceSuite, tutPlatformRootURL)
				return true
			},
		},
	})
}

// EnableRepositoryPerformanceWorkbench records the performance workbench.
// Provisioning follows the same gate as the conformance workbenches.
func (s *Service) EnableRepositoryPerformanceWorkbench(ctx context.Context, req api.Request, workbench document.RepositoryPerformanceWorkbenchConfig) (api.Outcome, error) {
	return s.mutate(ctx, req, mutation{
		operation: OpEnableRepositoryPerformanceWorkbench,
		action:    audit.ActionEnablePerformanceWorkbench,
		data:      audit.Data{Subject: workbench.TutRepositoryServerName},
		validate:  func() error { return validation.ValidatePerformanceWorkbench(workbench) },
		rule: merge.Rule{
			Section: dependency.SectionConformanceSuite,
			Enables: true,
			Apply: func(doc *document.ServerConfig) bool {
				doc.ConformanceSuite = merge.SetPerformanceWorkbench(doc.ConformanceSuite, workbench)
				return true
			},
		},
	})
}

// DisableRepositoryConformanceWorkbench removes the repository workbench only.
func (s *Service) DisableRepositoryConformanceWorkbench(ctx context.Context, req api.Request) (api.Outcome, error) {
	return s.mutate(ctx, req, mutation{
		operation: OpDisableRepositoryConformanceWorkbench,
		action:    audit.ActionDisableRepositoryWorkbench,
		rule: merge.Rule{
			Section: dependency.SectionConformanceSuite,
			Apply: func(doc *document.ServerConfig) bool {
				var changed bool
				doc.ConformanceSuite, changed = merge.ClearRepositoryWorkbench(doc.ConformanceSuite)
				return changed
			},
		},
	})
}

// DisablePlatformConformanceWorkbench removes the platform workbench only.
func (s *Service) DisablePlatformConformanceWorkbench(ctx context.Context, req api.Request) (api.Outcome, error) {
	return s.mutate(ctx, req, mutation{
		operation: OpDisablePlatformConformanceWorkbench,
		action:    audit.ActionDisablePlatformWorkbench,
		rule: merge.Rule{
			Section: dependency.SectionConformanceSuite,
			Apply: func(doc *document.ServerConfig) bool {
				var changed bool
				doc.ConformanceSuite, changed = merge.ClearPlatformWorkbench(doc.ConformanceSuite)
				return changed
			},
		},
	})
}

// DisableAllConformanceWorkbenches resets the conformance suite, the
// repository services and the server type together. It is a no-op when all
// three are already absent.
func (s *Service) DisableAllConformanceWorkbenches(ctx context.Context, req api.Request) (api.Outcome, error) {
	return s.mutate(ctx, req, mutation{
		operation: OpDisableAllConformanceWorkbenches,
		action:    audit.ActionDisableAllWorkbenches,
		rule: merge.Rule{
			Section: dependency.SectionConformanceSuite,
			Apply: func(doc *document.ServerConfig) bool {
				if doc.ConformanceSuite == nil && doc.RepositoryServices == nil && doc.ServerType == "" {
					return false
				}
				doc.ConformanceSuite = nil
				doc.RepositoryServices = nil
				doc.ServerType = ""
				return true
			},
		},
	})
}
