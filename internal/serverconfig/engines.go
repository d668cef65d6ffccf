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

// AddEngine inserts or replaces one engine by qualified name.
func (s *Service) AddEngine(ctx context.Context, req api.Request, engine document.EngineConfig) (api.Outcome, error) {
	return s.mutate(ctx, req, mutation{
		operation: OpAddEngine,
		action:    audit.ActionAddEngine,
		data:      audit.Data{Subject: engine.EngineQualifiedName},
		validate:  func() error { return validation.ValidateEngine(engine) },
		rule: merge.Rule{
			Section: dependency.SectionGovernanceEngines,
			Enables: true,
			Apply: func(doc *document.ServerConfig) bool {
				previous := doc.GovernanceEngines
				doc.GovernanceEngines = merge.AssignEngineIDs(merge.MergeEngines(previous, engine), previous, s.provisioner.Defaults().NewID)
				return true
			},
		},
	})
}

// GetEngineConfiguration returns the engines of the server, possibly none.
func (s *Service) GetEngineConfiguration(ctx context.Context, req api.Request) ([]document.EngineConfig, error) {
	doc, err := s.read(ctx, OpGetEngineConfiguration, req)
	if err != nil {
		return nil, err
	}
	if len(doc.GovernanceEngines) == 0 {
		return []document.EngineConfig{}, nil
	}
	return doc.GovernanceEngines, nil
}

// SetEngineConfiguration replaces the whole engine collection. Entries
// without a qualified name are dropped and duplicates collapse to the last one.
func (s *Service) SetEngineConfiguration(ctx context.Context, req api.Request, engines []document.EngineConfig) (api.Outcome, error) {
	replacement := merge.ReplaceEngines(engines)
	names := make([]string, len(replacement))
	for i, e := range replacement {
		names[i] = e.EngineQualifiedName
	}

	return s.mutate(ctx, req, mutation{
		operation: OpSetEngineConfiguration,
		action:    audit.ActionSetEngines,
		data:      audit.Data{Names: names},
		rule: merge.Rule{
			Section: dependency.SectionGovernanceEngines,
			Enables: true,
			Apply: func(doc *document.ServerConfig) bool {
				engines := merge.AssignEngineIDs(merge.ReplaceEngines(replacement), doc.GovernanceEngines, s.provisioner.Defaults().NewID)
				doc.GovernanceEngines = nilIfEmpty(engines)
				return true
			},
		},
	})
}

// ClearEngineConfiguration removes every engine.
func (s *Service) ClearEngineConfiguration(ctx context.Context, req api.Request) (api.Outcome, error) {
	return s.mutate(ctx, req, mutation{
		operation: OpClearEngineConfiguration,
		action:    audit.ActionClearEngines,
		rule: merge.Rule{
			Section: dependency.SectionGovernanceEngines,
			Apply: func(doc *document.ServerConfig) bool {
				if len(doc.GovernanceEngines) == 0 {
					return false
				}
				doc.GovernanceEngines = nil
				return true
			},
		},
	})
}
