package dependency

import (
	"fmt"
	"sort"
)

// SectionID is the unique identifier of a configuration section.
type SectionID string

// Sections of a server configuration document.
const (
	SectionRepositoryServices SectionID = "repository-services"
	SectionConformanceSuite   SectionID = "conformance-suite"
	SectionGovernanceEngines  SectionID = "governance-engines"
	SectionSecurityConnector  SectionID = "security-connector"
	SectionAccessServices     SectionID = "access-services"
	SectionViewServices       SectionID = "view-services"
	SectionServerType         SectionID = "server-type"
)

// Node is a section together with the sections it requires.
type Node struct {
	ID           SectionID
	FriendlyName string
	DependsOn    []SectionID
}

// Graph answers prerequisite queries. It is not safe for concurrent writes;
// callers build it once and only read afterwards.
type Graph struct {
	nodes map[SectionID]*Node
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[SectionID]*Node)}
}

// AddNode adds (or replaces) a node in the graph.
func (g *Graph) AddNode(n Node) {
	if g.nodes == nil {
		g.nodes = make(map[SectionID]*Node)
	}
	copied := n
	copied.DependsOn = append([]SectionID(nil), n.DependsOn...)
	g.nodes[n.ID] = &copied
}

// Get returns the stored node or nil if it does not exist.
func (g *Graph) Get(id SectionID) *Node {
	return g.nodes[id]
}

// Dependencies returns the immediate prerequisites of a section.
func (g *Graph) Dependencies(id SectionID) []SectionID {
	if n, ok := g.nodes[id]; ok {
		deps := make([]SectionID, len(n.DependsOn))
		copy(deps, n.DependsOn)
		return deps
	}
	return nil
}

// Dependents returns all sections that directly require the given section, sorted.
func (g *Graph) Dependents(id SectionID) []SectionID {
	var res []SectionID
	for _, n := range g.nodes {
		for _, dep := range n.DependsOn {
			if dep == id {
				res = append(res, n.ID)
				break
			}
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// ProvisionOrder returns every transitive prerequisite of id, deepest first,
// without id itself. It fails if the prerequisites form a cycle.
func (g *Graph) ProvisionOrder(id SectionID) ([]SectionID, error) {
	var order []SectionID
	visited := make(map[SectionID]bool)
	onPath := make(map[SectionID]bool)

	var visit func(SectionID) error
	visit = func(cur SectionID) error {
		if onPath[cur] {
			return fmt.Errorf("dependency cycle through section %s", cur)
		}
		if visited[cur] {
			return nil
		}
		onPath[cur] = true
		for _, dep := range g.Dependencies(cur) {
			if err := visit(dep); err != nil {
				return err
			}
		}
		onPath[cur] = false
		visited[cur] = true
		if cur != id {
			order = append(order, cur)
		}
		return nil
	}

	if err := visit(id); err != nil {
		return nil, err
	}
	return order, nil
}
