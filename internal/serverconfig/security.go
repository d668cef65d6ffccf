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

// SetServerSecurityConnection replaces the security connector.
func (s *Service) SetServerSecurityConnection(ctx context.Context, req api.Request, conn document.Connection) (api.Outcome, error) {
	subject := conn.QualifiedName
	if subject == "" {
		subject = conn.DisplayName
	}
	replacement := merge.ReplaceConnection(conn)

	return s.mutate(ctx, req, mutation{
		operation: OpSetServerSecurityConnection,
		action:    audit.ActionSetSecurityConnection,
		data:      audit.Data{Subject: subject},
		validate:  func() error { return validation.ValidateConnection(conn) },
		rule: merge.Rule{
			Section: dependency.SectionSecurityConnector,
			Enables: true,
			Apply: func(doc *document.ServerConfig) bool {
				doc.SecurityConnection = replacement.Clone()
				return true
			},
		},
	})
}

// GetServerSecurityConnection returns the security connector, or nil if none is set.
func (s *Service) GetServerSecurityConnection(ctx context.Context, req api.Request) (*document.Connection, error) {
	doc, err := s.read(ctx, OpGetServerSecurityConnection, req)
	if err != nil {
		return nil, err
	}
	return doc.SecurityConnection, nil
}

// ClearServerSecurityConnection removes the security connector.
func (s *Service) ClearServerSecurityConnection(ctx context.Context, req api.Request) (api.Outcome, error) {
	return s.mutate(ctx, req, mutation{
		operation: OpClearServerSecurityConnection,
		action:    audit.ActionClearSecurityConnection,
		rule: merge.Rule{
			Section: dependency.SectionSecurityConnector,
			Apply: func(doc *document.ServerConfig) bool {
				if doc.SecurityConnection == nil {
					return false
				}
				doc.SecurityConnection = nil
				return true
			},
		},
	})
}
