package merge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/serverconf/internal/document"
)

func engine(name, server string) document.EngineConfig {
	return document.EngineConfig{EngineQualifiedName: name, OMAGServerName: server}
}

func TestMergeEngines(t *testing.T) {
	tests := []struct {
		name     string
		existing []document.EngineConfig
		add      []document.EngineConfig
		want     []document.EngineConfig
	}{
		{
			name: "add to empty",
			add:  []document.EngineConfig{engine("a", "s1")},
			want: []document.EngineConfig{engine("a", "s1")},
		},
		{
			name:     "replace by name keeps position",
			existing: []document.EngineConfig{engine("a", "s1"), engine("b", "s1")},
			add:      []document.EngineConfig{engine("a", "s2")},
			want:     []document.EngineConfig{engine("a", "s2"), engine("b", "s1")},
		},
		{
			name:     "duplicates in input collapse last write wins",
			existing: []document.EngineConfig{engine("a", "s1")},
			add:      []document.EngineConfig{engine("c", "s1"), engine("c", "s3")},
			want:     []document.EngineConfig{engine("a", "s1"), engine("c", "s3")},
		},
		{
			name:     "blank names dropped",
			existing: []document.EngineConfig{engine("", "s1")},
			add:      []document.EngineConfig{engine("  ", "s2"), engine("b", "s1")},
			want:     []document.EngineConfig{engine("b", "s1")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeEngines(tt.existing, tt.add...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeEnginesDoesNotModifyInput(t *testing.T) {
	existing := []document.EngineConfig{engine("a", "s1")}
	_ = MergeEngines(existing, engine("a", "s2"))
	assert.Equal(t, "s1", existing[0].OMAGServerName)
}

func TestMergeEnginesUniqueNames(t *testing.T) {
	var engines []document.EngineConfig
	for i, name := range []string{"x", "y", "x", "z", "y", "x"} {
		engines = MergeEngines(engines, engine(name, string(rune('a'+i))))
	}

	seen := map[string]bool{}
	for _, e := range engines {
		assert.False(t, seen[e.EngineQualifiedName], "duplicate %s", e.EngineQualifiedName)
		seen[e.EngineQualifiedName] = true
	}
	require.Len(t, engines, 3)
	assert.Equal(t, "f", engines[0].OMAGServerName)
	assert.Equal(t, "e", engines[1].OMAGServerName)
}

func TestReplaceEngines(t *testing.T) {
	got := ReplaceEngines([]document.EngineConfig{engine("b", "1"), engine("", "2"), engine("b", "3")})
	assert.Equal(t, []document.EngineConfig{engine("b", "3")}, got)
	assert.Empty(t, ReplaceEngines(nil))
}

func TestAssignEngineIDs(t *testing.T) {
	n := 0
	newID := func() string { n++; return fmt.Sprintf("id-%d", n) }

	previous := []document.EngineConfig{{EngineQualifiedName: "a", EngineID: "kept"}}
	engines := []document.EngineConfig{
		{EngineQualifiedName: " a "},
		{EngineQualifiedName: "b"},
		{EngineQualifiedName: "c", EngineID: "given"},
	}

	got := AssignEngineIDs(engines, previous, newID)
	assert.Equal(t, []string{"kept", "id-1", "given"}, []string{got[0].EngineID, got[1].EngineID, got[2].EngineID})
	assert.Equal(t, 1, n)
}

func TestRemoveKeyedIgnoresWhitespace(t *testing.T) {
	merged := MergeAccessServices(nil, document.AccessServiceConfig{AccessServiceName: " asset-manager"})
	require.Len(t, merged, 1)

	remaining, removed := RemoveAccessService(merged, "asset-manager")
	assert.True(t, removed)
	assert.Empty(t, remaining)

	views := MergeViewServices(nil, document.ViewServiceConfig{ViewServiceName: "glossary"})
	_, removed = RemoveViewService(views, " glossary ")
	assert.True(t, removed)
}

func TestAccessServices(t *testing.T) {
	opts := map[string]string{"k": "v"}
	svc := document.AccessServiceConfig{AccessServiceName: "asset-manager", AccessServiceOptions: opts}

	merged := MergeAccessServices(nil, svc)
	require.Len(t, merged, 1)
	opts["k"] = "changed"
	assert.Equal(t, "v", merged[0].AccessServiceOptions["k"])

	merged = MergeAccessServices(merged, document.AccessServiceConfig{AccessServiceName: "governance"})
	assert.Len(t, merged, 2)

	remaining, removed := RemoveAccessService(merged, "asset-manager")
	assert.True(t, removed)
	assert.Len(t, remaining, 1)

	_, removed = RemoveAccessService(remaining, "asset-manager")
	assert.False(t, removed)
}

func TestViewServices(t *testing.T) {
	merged := MergeViewServices(nil,
		document.ViewServiceConfig{ViewServiceName: "glossary", OMAGServerName: "a"},
		document.ViewServiceConfig{ViewServiceName: "glossary", OMAGServerName: "b"},
	)
	require.Len(t, merged, 1)
	assert.Equal(t, "b", merged[0].OMAGServerName)

	remaining, removed := RemoveViewService(merged, "glossary")
	assert.True(t, removed)
	assert.Empty(t, remaining)
}

func TestWorkbenchesAreIndependent(t *testing.T) {
	suite := SetRepositoryWorkbench(nil, document.RepositoryConformanceWorkbenchConfig{TutRepositoryServerName: "tut"})
	suite = SetPlatformWorkbench(suite, "https://localhost:9443")
	suite = SetPerformanceWorkbench(suite, document.RepositoryPerformanceWorkbenchConfig{TutRepositoryServerName: "perf"})

	cleared, changed := ClearRepositoryWorkbench(suite)
	assert.True(t, changed)
	assert.Nil(t, cleared.RepositoryWorkbench)
	assert.NotNil(t, cleared.PlatformWorkbench)
	assert.NotNil(t, cleared.RepositoryPerformance)
	assert.NotNil(t, suite.RepositoryWorkbench, "input must not be modified")

	cleared, changed = ClearPlatformWorkbench(cleared)
	assert.True(t, changed)
	assert.Nil(t, cleared.PlatformWorkbench)
	assert.Equal(t, "perf", cleared.RepositoryPerformance.TutRepositoryServerName)
}

func TestClearAbsentWorkbench(t *testing.T) {
	_, changed := ClearRepositoryWorkbench(nil)
	assert.False(t, changed)

	suite := &document.ConformanceSuiteConfig{PlatformWorkbench: &document.PlatformConformanceWorkbenchConfig{}}
	out, changed := ClearRepositoryWorkbench(suite)
	assert.False(t, changed)
	assert.Same(t, suite, out)
}

func TestReplaceConnectionCopies(t *testing.T) {
	conn := document.Connection{
		ConnectorType:           &document.ConnectorType{ConnectorProviderClassName: "p"},
		ConfigurationProperties: map[string]string{"a": "1"},
	}
	got := ReplaceConnection(conn)
	conn.ConnectorType.ConnectorProviderClassName = "q"
	conn.ConfigurationProperties["a"] = "2"

	assert.Equal(t, "p", got.ConnectorType.ConnectorProviderClassName)
	assert.Equal(t, "1", got.ConfigurationProperties["a"])
}
