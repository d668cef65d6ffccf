package merge

import (
	"github.com/giantswarm/serverconf/internal/dependency"
	"github.com/giantswarm/serverconf/internal/document"
)

// Rule is one section update. Apply mutates the working copy and reports
// whether anything changed; returning false marks the update as a no-op.
type Rule struct {
	Section dependency.SectionID
	// Enables is true for updates that add or replace content. Only enabling
	// rules trigger provisioning.
	Enables bool
	Apply   func(doc *document.ServerConfig) bool
}

// Result describes what Run did to the document.
type Result struct {
	Changed     bool
	Provisioned []dependency.SectionID
}

// Run provisions prerequisites for an enabling rule and then applies it.
func (p *Provisioner) Run(doc *document.ServerConfig, rule Rule) (Result, error) {
	var res Result
	if rule.Enables {
		provisioned, err := p.Provision(doc, rule.Section)
		if err != nil {
			return res, err
		}
		res.Provisioned = provisioned
	}
	changed := rule.Apply(doc)
	res.Changed = changed || len(res.Provisioned) > 0
	return res, nil
}
