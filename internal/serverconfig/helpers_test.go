package serverconfig

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/audit"
	"github.com/giantswarm/serverconf/internal/document"
	"github.com/giantswarm/serverconf/internal/events"
	"github.com/giantswarm/serverconf/internal/identity"
	"github.com/giantswarm/serverconf/internal/merge"
	"github.com/giantswarm/serverconf/internal/store"
)

var testTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	svc   *Service
	store store.Store
	sink  *events.RecordingSink
}

func newTestEnv(t *testing.T, s store.Store, opts ...func(*Options)) *testEnv {
	t.Helper()
	if s == nil {
		s = store.NewMemory()
	}
	sink := &events.RecordingSink{}
	var ids, calls int64
	newID := func() string { return fmt.Sprintf("collection-%d", atomic.AddInt64(&ids, 1)) }
	newCallID := func() string { return fmt.Sprintf("call-%d", atomic.AddInt64(&calls, 1)) }
	clock := func() time.Time { return testTime }

	o := Options{
		Store:       s,
		Resolver:    identity.StaticResolver("garygeeke"),
		Trail:       audit.NewTrail(audit.WithClock(clock)),
		Provisioner: merge.NewProvisioner(merge.Defaults{NewID: newID}),
		Sink:        sink,
		NewCallID:   newCallID,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &testEnv{svc: NewService(o), store: s, sink: sink}
}

func req(server string) api.Request {
	return api.Request{ServerName: server}
}

func (e *testEnv) stored(t *testing.T, server string) *document.ServerConfig {
	t.Helper()
	doc, err := e.store.Load(context.Background(), server)
	require.NoError(t, err)
	return doc
}

// failingStore fails every operation with err.
type failingStore struct {
	err error
}

func (f failingStore) Load(context.Context, string) (*document.ServerConfig, error) { return nil, f.err }
func (f failingStore) Save(context.Context, *document.ServerConfig) error { return f.err }
func (f failingStore) List(context.Context) ([]string, error) { return nil, f.err }
func (f failingStore) Close() error { return nil }

// saveFailingStore loads from a real store but fails every save.
type saveFailingStore struct {
	store.Store
}

func (s saveFailingStore) Save(context.Context, *document.ServerConfig) error {
	return errors.New("disk full")
}

// panickingStore panics on load.
type panickingStore struct {
	store.Store
}

func (panickingStore) Load(context.Context, string) (*document.ServerConfig, error) {
	panic("corrupt index")
}

// racingStore lets another writer win before the first n saves.
type racingStore struct {
	store.Store
	mu      sync.Mutex
	races   int
	rivalry func(doc *document.ServerConfig)
}

func (r *racingStore) Save(ctx context.Context, doc *document.ServerConfig) error {
	r.mu.Lock()
	if r.races > 0 {
		r.races--
		r.mu.Unlock()

		rival, err := r.Store.Load(ctx, doc.ServerName)
		if store.IsNotFound(err) {
			rival = document.New(doc.ServerName)
		} else if err != nil {
			return err
		}
		r.rivalry(rival)
		if err := r.Store.Save(ctx, rival); err != nil {
			return err
		}
	} else {
		r.mu.Unlock()
	}
	return r.Store.Save(ctx, doc)
}
