package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/serverconf/internal/document"
)

func sampleDocument(name string) *document.ServerConfig {
	doc := document.New(name)
	doc.ServerType = "Engine Host"
	doc.MaxPageSize = 50
	doc.AuditTrail = []string{"2024-01-01T00:00:00Z garygeeke added governance engine \"a\""}
	doc.GovernanceEngines = []document.EngineConfig{{EngineQualifiedName: "a", OMAGServerName: "mds1"}}
	doc.AccessServices = []document.AccessServiceConfig{{
		AccessServiceName:    "asset-manager",
		AccessServiceOptions: map[string]string{"supportedZones": "quarantine"},
	}}
	return doc
}

// testStoreContract exercises the behaviour every backend must share.
func testStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("load missing", func(t *testing.T) {
		_, err := s.Load(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("create and load", func(t *testing.T) {
		doc := sampleDocument("cocoMDS1")
		require.NoError(t, s.Save(ctx, doc))
		require.NotEmpty(t, doc.Revision)

		loaded, err := s.Load(ctx, "cocoMDS1")
		require.NoError(t, err)
		assert.Equal(t, doc.Revision, loaded.Revision)
		assert.Equal(t, doc.ServerType, loaded.ServerType)
		assert.Equal(t, doc.AuditTrail, loaded.AuditTrail)
		assert.Equal(t, doc.GovernanceEngines, loaded.GovernanceEngines)
		assert.Equal(t, doc.AccessServices, loaded.AccessServices)
	})

	t.Run("create over existing conflicts", func(t *testing.T) {
		err := s.Save(ctx, sampleDocument("cocoMDS1"))
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("update with current revision", func(t *testing.T) {
		loaded, err := s.Load(ctx, "cocoMDS1")
		require.NoError(t, err)
		before := loaded.Revision

		loaded.ServerType = "Metadata Server"
		require.NoError(t, s.Save(ctx, loaded))
		assert.NotEqual(t, before, loaded.Revision)

		reloaded, err := s.Load(ctx, "cocoMDS1")
		require.NoError(t, err)
		assert.Equal(t, "Metadata Server", reloaded.ServerType)
	})

	t.Run("update with stale revision conflicts", func(t *testing.T) {
		first, err := s.Load(ctx, "cocoMDS1")
		require.NoError(t, err)
		second, err := s.Load(ctx, "cocoMDS1")
		require.NoError(t, err)

		first.ServerType = "first"
		require.NoError(t, s.Save(ctx, first))

		second.ServerType = "second"
		assert.ErrorIs(t, s.Save(ctx, second), ErrConflict)

		reloaded, err := s.Load(ctx, "cocoMDS1")
		require.NoError(t, err)
		assert.Equal(t, "first", reloaded.ServerType)
	})

	t.Run("loaded copies are independent", func(t *testing.T) {
		loaded, err := s.Load(ctx, "cocoMDS1")
		require.NoError(t, err)
		loaded.AuditTrail = append(loaded.AuditTrail, "local only")
		loaded.AccessServices[0].AccessServiceOptions["supportedZones"] = "changed"

		reloaded, err := s.Load(ctx, "cocoMDS1")
		require.NoError(t, err)
		assert.Len(t, reloaded.AuditTrail, 1)
		assert.Equal(t, "quarantine", reloaded.AccessServices[0].AccessServiceOptions["supportedZones"])
	})

	t.Run("list sorted", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, sampleDocument("a.server/with odd:name")))
		require.NoError(t, s.Save(ctx, sampleDocument("Alpha")))

		names, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "a.server/with odd:name", "cocoMDS1"}, names)

		odd, err := s.Load(ctx, "a.server/with odd:name")
		require.NoError(t, err)
		assert.Equal(t, "a.server/with odd:name", odd.ServerName)
	})
}
