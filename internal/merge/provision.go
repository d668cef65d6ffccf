package merge

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/giantswarm/serverconf/internal/dependency"
	"github.com/giantswarm/serverconf/internal/document"
	"github.com/giantswarm/serverconf/pkg/logging"
)

// Policy says what happens to missing prerequisites when an enabling rule
// touches a section.
type Policy int

const (
	// PolicyNone never provisions anything.
	PolicyNone Policy = iota
	// PolicyIfAbsent creates each missing prerequisite with defaults and
	// leaves existing ones untouched.
	PolicyIfAbsent
	// PolicyConformance resets the repository services to their defaults
	// and labels the server as a conformance server, but only when no
	// conformance workbench has been enabled yet.
	PolicyConformance
)

func (p Policy) String() string {
	switch p {
	case PolicyIfAbsent:
		return "if-absent"
	case PolicyConformance:
		return "conformance"
	default:
		return "none"
	}
}

// policies is the single table of provisioning rules per section.
var policies = map[dependency.SectionID]Policy{
	dependency.SectionConformanceSuite:  PolicyConformance,
	dependency.SectionGovernanceEngines: PolicyIfAbsent,
}

// PolicyFor returns the provisioning policy of a section.
func PolicyFor(section dependency.SectionID) Policy {
	return policies[section]
}

// Defaults parametrize provisioned sections.
type Defaults struct {
	MaxPageSize           int
	ConformanceServerType string
	LocalRepositoryMode   string
	// NewID generates metadata collection identifiers.
	NewID func() string
}

// DefaultDefaults returns the built-in provisioning defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		MaxPageSize:           document.DefaultMaxPageSize,
		ConformanceServerType: document.DefaultConformanceServerType,
		LocalRepositoryMode:   document.LocalRepositoryModeInMemory,
		NewID:                 uuid.NewString,
	}
}

// Provisioner creates prerequisite sections before a rule is applied.
type Provisioner struct {
	graph    *dependency.Graph
	defaults Defaults
}

// NewProvisioner returns a provisioner that uses the standard section graph.
// Zero fields in defaults fall back to DefaultDefaults.
func NewProvisioner(defaults Defaults) *Provisioner {
	base := DefaultDefaults()
	if defaults.MaxPageSize <= 0 {
		defaults.MaxPageSize = base.MaxPageSize
	}
	if defaults.ConformanceServerType == "" {
		defaults.ConformanceServerType = base.ConformanceServerType
	}
	if defaults.LocalRepositoryMode == "" {
		defaults.LocalRepositoryMode = base.LocalRepositoryMode
	}
	if defaults.NewID == nil {
		defaults.NewID = base.NewID
	}
	return &Provisioner{graph: SectionGraph(), defaults: defaults}
}

// SectionGraph returns the prerequisite graph of a configuration document.
func SectionGraph() *dependency.Graph {
	g := dependency.New()
	g.AddNode(dependency.Node{ID: dependency.SectionRepositoryServices, FriendlyName: "repository services"})
	g.AddNode(dependency.Node{
		ID:           dependency.SectionConformanceSuite,
		FriendlyName: "conformance suite services",
		DependsOn:    []dependency.SectionID{dependency.SectionRepositoryServices},
	})
	g.AddNode(dependency.Node{
		ID:           dependency.SectionGovernanceEngines,
		FriendlyName: "governance engines",
		DependsOn:    []dependency.SectionID{dependency.SectionRepositoryServices},
	})
	g.AddNode(dependency.Node{ID: dependency.SectionSecurityConnector, FriendlyName: "server security connector"})
	g.AddNode(dependency.Node{ID: dependency.SectionAccessServices, FriendlyName: "access services"})
	g.AddNode(dependency.Node{ID: dependency.SectionViewServices, FriendlyName: "view services"})
	g.AddNode(dependency.Node{ID: dependency.SectionServerType, FriendlyName: "server type"})
	return g
}

// Defaults returns the effective provisioning defaults.
func (p *Provisioner) Defaults() Defaults {
	return p.defaults
}

// Provision applies the policy of section to doc and returns the sections it
// created or reset.
func (p *Provisioner) Provision(doc *document.ServerConfig, section dependency.SectionID) ([]dependency.SectionID, error) {
	policy := PolicyFor(section)
	if policy == PolicyNone {
		return nil, nil
	}

	if policy == PolicyConformance {
		if doc.ConformanceSuite != nil &&
			(doc.ConformanceSuite.RepositoryWorkbench != nil || doc.ConformanceSuite.PlatformWorkbench != nil) {
			return nil, nil
		}
	}

	order, err := p.graph.ProvisionOrder(section)
	if err != nil {
		return nil, fmt.Errorf("resolving prerequisites of %s: %w", section, err)
	}

	var provisioned []dependency.SectionID
	for _, prereq := range order {
		if policy == PolicyIfAbsent && p.present(doc, prereq) {
			continue
		}
		if err := p.provide(doc, prereq); err != nil {
			return provisioned, err
		}
		provisioned = append(provisioned, prereq)
	}

	if policy == PolicyConformance {
		doc.ServerType = p.defaults.ConformanceServerType
		provisioned = append(provisioned, dependency.SectionServerType)
	}

	if len(provisioned) > 0 {
		logging.Debug("Merge", "Provisioned %v for %s on server %s (policy %s)", provisioned, section, doc.ServerName, policy)
	}
	return provisioned, nil
}

func (p *Provisioner) present(doc *document.ServerConfig, section dependency.SectionID) bool {
	switch section {
	case dependency.SectionRepositoryServices:
		return doc.RepositoryServices != nil
	case dependency.SectionConformanceSuite:
		return !doc.ConformanceSuite.IsEmpty()
	case dependency.SectionGovernanceEngines:
		return len(doc.GovernanceEngines) > 0
	case dependency.SectionSecurityConnector:
		return doc.SecurityConnection != nil
	case dependency.SectionAccessServices:
		return len(doc.AccessServices) > 0
	case dependency.SectionViewServices:
		return len(doc.ViewServices) > 0
	case dependency.SectionServerType:
		return doc.ServerType != ""
	}
	return false
}

func (p *Provisioner) provide(doc *document.ServerConfig, section dependency.SectionID) error {
	switch section {
	case dependency.SectionRepositoryServices:
		doc.RepositoryServices = p.defaultRepositoryServices(doc.ServerName)
		if doc.MaxPageSize <= 0 {
			doc.MaxPageSize = p.defaults.MaxPageSize
		}
		return nil
	}
	return fmt.Errorf("no default available for section %s", section)
}

func (p *Provisioner) defaultRepositoryServices(serverName string) *document.RepositoryServicesConfig {
	return &document.RepositoryServicesConfig{
		LocalRepository: &document.LocalRepositoryConfig{
			MetadataCollectionID:   p.defaults.NewID(),
			MetadataCollectionName: serverName + " local metadata collection",
			Mode:                   p.defaults.LocalRepositoryMode,
		},
		EnterpriseAccess: &document.EnterpriseAccessConfig{
			EnterpriseMetadataCollectionID:   p.defaults.NewID(),
			EnterpriseMetadataCollectionName: serverName + " enterprise metadata collection",
		},
	}
}
