package merge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/serverconf/internal/dependency"
	"github.com/giantswarm/serverconf/internal/document"
)

func testProvisioner() *Provisioner {
	n := 0
	return NewProvisioner(Defaults{
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
}

func TestPolicyFor(t *testing.T) {
	assert.Equal(t, PolicyConformance, PolicyFor(dependency.SectionConformanceSuite))
	assert.Equal(t, PolicyIfAbsent, PolicyFor(dependency.SectionGovernanceEngines))
	assert.Equal(t, PolicyNone, PolicyFor(dependency.SectionAccessServices))
	assert.Equal(t, "none", PolicyNone.String())
}

func TestNewProvisionerFillsDefaults(t *testing.T) {
	p := NewProvisioner(Defaults{})
	d := p.Defaults()
	assert.Equal(t, document.DefaultMaxPageSize, d.MaxPageSize)
	assert.Equal(t, document.DefaultConformanceServerType, d.ConformanceServerType)
	assert.Equal(t, document.LocalRepositoryModeInMemory, d.LocalRepositoryMode)
	assert.NotEmpty(t, d.NewID())
}

func TestProvisionConformanceOnFreshServer(t *testing.T) {
	p := testProvisioner()
	doc := document.New("cts")

	got, err := p.Provision(doc, dependency.SectionConformanceSuite)
	require.NoError(t, err)

	assert.Equal(t, []dependency.SectionID{dependency.SectionRepositoryServices, dependency.SectionServerType}, got)
	require.NotNil(t, doc.RepositoryServices)
	assert.Equal(t, "id-1", doc.RepositoryServices.LocalRepository.MetadataCollectionID)
	assert.Equal(t, document.LocalRepositoryModeInMemory, doc.RepositoryServices.LocalRepository.Mode)
	assert.Equal(t, document.DefaultMaxPageSize, doc.MaxPageSize)
	assert.Equal(t, document.DefaultConformanceServerType, doc.ServerType)
}

func TestProvisionConformanceReplacesRepositoryServices(t *testing.T) {
	p := testProvisioner()
	doc := document.New("cts")
	doc.ServerType = "Metadata Server"
	doc.RepositoryServices = &document.RepositoryServicesConfig{
		LocalRepository: &document.LocalRepositoryConfig{MetadataCollectionID: "custom"},
	}

	_, err := p.Provision(doc, dependency.SectionConformanceSuite)
	require.NoError(t, err)
	assert.Equal(t, "id-1", doc.RepositoryServices.LocalRepository.MetadataCollectionID)
	assert.Equal(t, document.DefaultConformanceServerType, doc.ServerType)
}

func TestProvisionConformanceSkippedWhenWorkbenchEnabled(t *testing.T) {
	tests := []struct {
		name  string
		suite *document.ConformanceSuiteConfig
		skip  bool
	}{
		{"repository workbench", &document.ConformanceSuiteConfig{RepositoryWorkbench: &document.RepositoryConformanceWorkbenchConfig{}}, true},
		{"platform workbench", &document.ConformanceSuiteConfig{PlatformWorkbench: &document.PlatformConformanceWorkbenchConfig{}}, true},
		{"performance only", &document.ConformanceSuiteConfig{RepositoryPerformance: &document.RepositoryPerformanceWorkbenchConfig{}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProvisioner()
			doc := document.New("cts")
			doc.ServerType = "custom"
			doc.ConformanceSuite = tt.suite

			got, err := p.Provision(doc, dependency.SectionConformanceSuite)
			require.NoError(t, err)
			if tt.skip {
				assert.Empty(t, got)
				assert.Equal(t, "custom", doc.ServerType)
				assert.Nil(t, doc.RepositoryServices)
			} else {
				assert.NotEmpty(t, got)
				assert.Equal(t, document.DefaultConformanceServerType, doc.ServerType)
			}
		})
	}
}

func TestProvisionEnginesIfAbsent(t *testing.T) {
	p := testProvisioner()
	doc := document.New("engine-host")
	doc.ServerType = "Engine Host"

	got, err := p.Provision(doc, dependency.SectionGovernanceEngines)
	require.NoError(t, err)
	assert.Equal(t, []dependency.SectionID{dependency.SectionRepositoryServices}, got)
	assert.Equal(t, "Engine Host", doc.ServerType)
	first := doc.RepositoryServices.LocalRepository.MetadataCollectionID

	got, err = p.Provision(doc, dependency.SectionGovernanceEngines)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, first, doc.RepositoryServices.LocalRepository.MetadataCollectionID)
}

func TestProvisionKeepsExplicitPageSize(t *testing.T) {
	p := testProvisioner()
	doc := document.New("s")
	doc.MaxPageSize = 10

	_, err := p.Provision(doc, dependency.SectionGovernanceEngines)
	require.NoError(t, err)
	assert.Equal(t, 10, doc.MaxPageSize)
}

func TestRun(t *testing.T) {
	p := testProvisioner()

	t.Run("enabling rule provisions", func(t *testing.T) {
		doc := document.New("s")
		res, err := p.Run(doc, Rule{
			Section: dependency.SectionGovernanceEngines,
			Enables: true,
			Apply: func(d *document.ServerConfig) bool {
				d.GovernanceEngines = MergeEngines(d.GovernanceEngines, engine("e", "x"))
				return true
			},
		})
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, []dependency.SectionID{dependency.SectionRepositoryServices}, res.Provisioned)
		assert.Len(t, doc.GovernanceEngines, 1)
	})

	t.Run("disabling rule never provisions", func(t *testing.T) {
		doc := document.New("s")
		res, err := p.Run(doc, Rule{
			Section: dependency.SectionConformanceSuite,
			Apply: func(d *document.ServerConfig) bool {
				var changed bool
				d.ConformanceSuite, changed = ClearRepositoryWorkbench(d.ConformanceSuite)
				return changed
			},
		})
		require.NoError(t, err)
		assert.False(t, res.Changed)
		assert.Empty(t, res.Provisioned)
		assert.Nil(t, doc.RepositoryServices)
	})
}
