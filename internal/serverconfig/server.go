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

// SetServerType replaces the server type label. Setting the current label
// again is a no-op.
func (s *Service) SetServerType(ctx context.Context, req api.Request, serverType string) (api.Outcome, error) {
	return s.mutate(ctx, req, mutation{
		operation: OpSetServerType,
		action:    audit.ActionSetServerType,
		data:      audit.Data{Subject: serverType},
		validate:  func() error { return validation.ValidateRequired("serverType", serverType) },
		rule: merge.Rule{
			Section: dependency.SectionServerType,
			Enables: true,
			Apply: func(doc *document.ServerConfig) bool {
				if doc.ServerType == serverType {
					return false
				}
				doc.ServerType = serverType
				return true
			},
		},
	})
}

// GetServerConfig returns the whole document. A server that has never been
// configured yields an empty document carrying only its name.
func (s *Service) GetServerConfig(ctx context.Context, req api.Request) (*document.ServerConfig, error) {
	doc, err := s.read(ctx, OpGetServerConfig, req)
	if err != nil {
		return nil, err
	}
	doc.Revision = ""
	return doc, nil
}
