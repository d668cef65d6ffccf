package merge

import (
	"strings"

	"github.com/giantswarm/serverconf/internal/document"
)

// KeyedMerge collapses existing followed by incoming into one entry per key.
// A later entry replaces an earlier one with the same key, keeping the
// position of the first occurrence. Entries with a blank key are dropped.
func KeyedMerge[T any](existing, incoming []T, key func(T) string) []T {
	index := make(map[string]int, len(existing)+len(incoming))
	out := make([]T, 0, len(existing)+len(incoming))

	add := func(item T) {
		k := strings.TrimSpace(key(item))
		if k == "" {
			return
		}
		if i, ok := index[k]; ok {
			out[i] = item
			return
		}
		index[k] = len(out)
		out = append(out, item)
	}
	for _, item := range existing {
		add(item)
	}
	for _, item := range incoming {
		add(item)
	}
	return out
}

// RemoveKeyed returns the collection without the entry whose key equals name,
// and whether such an entry existed. Keys compare the way KeyedMerge stores
// them, ignoring surrounding whitespace.
func RemoveKeyed[T any](existing []T, name string, key func(T) string) ([]T, bool) {
	name = strings.TrimSpace(name)
	out := make([]T, 0, len(existing))
	removed := false
	for _, item := range existing {
		if strings.TrimSpace(key(item)) == name {
			removed = true
			continue
		}
		out = append(out, item)
	}
	return out, removed
}

func engineKey(e document.EngineConfig) string { return e.EngineQualifiedName }
func accessServiceKey(s document.AccessServiceConfig) string { return s.AccessServiceName }
func viewServiceKey(s document.ViewServiceConfig) string { return s.ViewServiceName }

// MergeEngines inserts or replaces engines by qualified name.
func MergeEngines(existing []document.EngineConfig, add ...document.EngineConfig) []document.EngineConfig {
	return KeyedMerge(existing, add, engineKey)
}

// ReplaceEngines returns engines as the new collection, ignoring any prior
// entries but still enforcing one entry per qualified name.
func ReplaceEngines(engines []document.EngineConfig) []document.EngineConfig {
	return KeyedMerge(nil, engines, engineKey)
}

// AssignEngineIDs fills blank engine IDs in place. An engine that replaces a
// previous entry of the same qualified name inherits that entry's ID; any
// other blank ID is taken from newID.
func AssignEngineIDs(engines, previous []document.EngineConfig, newID func() string) []document.EngineConfig {
	known := make(map[string]string, len(previous))
	for _, e := range previous {
		if e.EngineID != "" {
			known[strings.TrimSpace(engineKey(e))] = e.EngineID
		}
	}
	for i := range engines {
		if strings.TrimSpace(engines[i].EngineID) != "" {
			continue
		}
		if id, ok := known[strings.TrimSpace(engineKey(engines[i]))]; ok {
			engines[i].EngineID = id
			continue
		}
		engines[i].EngineID = newID()
	}
	return engines
}

// MergeAccessServices inserts or replaces access services by name.
func MergeAccessServices(existing []document.AccessServiceConfig, add ...document.AccessServiceConfig) []document.AccessServiceConfig {
	return KeyedMerge(existing, cloneAccessServices(add), accessServiceKey)
}

// RemoveAccessService drops one access service by name.
func RemoveAccessService(existing []document.AccessServiceConfig, name string) ([]document.AccessServiceConfig, bool) {
	return RemoveKeyed(existing, name, accessServiceKey)
}

// MergeViewServices inserts or replaces view services by name.
func MergeViewServices(existing []document.ViewServiceConfig, add ...document.ViewServiceConfig) []document.ViewServiceConfig {
	return KeyedMerge(existing, cloneViewServices(add), viewServiceKey)
}

// RemoveViewService drops one view service by name.
func RemoveViewService(existing []document.ViewServiceConfig, name string) ([]document.ViewServiceConfig, bool) {
	return RemoveKeyed(existing, name, viewServiceKey)
}

// SetRepositoryWorkbench returns the section with the repository workbench replaced.
func SetRepositoryWorkbench(existing *document.ConformanceSuiteConfig, wb document.RepositoryConformanceWorkbenchConfig) *document.ConformanceSuiteConfig {
	out := cloneOrNew(existing)
	out.RepositoryWorkbench = &wb
	return out
}

// SetPlatformWorkbench returns the section with the platform workbench replaced.
func SetPlatformWorkbench(existing *document.ConformanceSuiteConfig, tutPlatformRootURL string) *document.ConformanceSuiteConfig {
	out := cloneOrNew(existing)
	out.PlatformWorkbench = &document.PlatformConformanceWorkbenchConfig{TutPlatformRootURL: tutPlatformRootURL}
	return out
}

// SetPerformanceWorkbench returns the section with the performance workbench replaced.
func SetPerformanceWorkbench(existing *document.ConformanceSuiteConfig, wb document.RepositoryPerformanceWorkbenchConfig) *document.ConformanceSuiteConfig {
	out := cloneOrNew(existing)
	out.RepositoryPerformance = wb.Clone()
	return out
}

// ClearRepositoryWorkbench removes the repository workbench. The second result
// is false when there was nothing to remove.
func ClearRepositoryWorkbench(existing *document.ConformanceSuiteConfig) (*document.ConformanceSuiteConfig, bool) {
	if existing == nil || existing.RepositoryWorkbench == nil {
		return existing, false
	}
	out := existing.Clone()
	out.RepositoryWorkbench = nil
	return out, true
}

// ClearPlatformWorkbench removes the platform workbench. The second result
// is false when there was nothing to remove.
func ClearPlatformWorkbench(existing *document.ConformanceSuiteConfig) (*document.ConformanceSuiteConfig, bool) {
	if existing == nil || existing.PlatformWorkbench == nil {
		return existing, false
	}
	out := existing.Clone()
	out.PlatformWorkbench = nil
	return out, true
}

// ReplaceConnection returns an independent copy of conn as the new security connector section.
func ReplaceConnection(conn document.Connection) *document.Connection {
	return conn.Clone()
}

func cloneOrNew(existing *document.ConformanceSuiteConfig) *document.ConformanceSuiteConfig {
	if existing == nil {
		return &document.ConformanceSuiteConfig{}
	}
	return existing.Clone()
}

func cloneAccessServices(in []document.AccessServiceConfig) []document.AccessServiceConfig {
	doc := document.ServerConfig{AccessServices: in}
	return doc.Clone().AccessServices
}

func cloneViewServices(in []document.ViewServiceConfig) []document.ViewServiceConfig {
	doc := document.ServerConfig{ViewServices: in}
	return doc.Clone().ViewServices
}
