// Package merge implements the per-section update logic of a configuration
// document.
//
// Section functions are pure: they take the existing section (possibly nil)
// and the update, and return a new section without modifying their inputs.
// Keyed collections (governance engines, access services, view services)
// collapse by key with last-write-wins; every other section is replaced as a
// whole value.
//
// Provisioning of prerequisite sections is a separate step. A Provisioner
// looks up the provisioning policy of the section an enabling rule touches
// and creates missing prerequisites before the rule is applied:
//
//	p := merge.NewProvisioner(merge.DefaultDefaults())
//	res, err := p.Run(doc, merge.Rule{
//	    Section: dependency.SectionGovernanceEngines,
//	    Enables: true,
//	    Apply: func(d *document.ServerConfig) bool {
//	        d.GovernanceEngines = merge.MergeEngines(d.GovernanceEngines, engine)
//	        return true
//	    },
//	})
package merge
