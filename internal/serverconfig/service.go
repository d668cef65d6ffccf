package serverconfig

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/util/retry"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/audit"
	"github.com/giantswarm/serverconf/internal/dependency"
	"github.com/giantswarm/serverconf/internal/document"
	"github.com/giantswarm/serverconf/internal/events"
	"github.com/giantswarm/serverconf/internal/identity"
	"github.com/giantswarm/serverconf/internal/merge"
	"github.com/giantswarm/serverconf/internal/store"
	"github.com/giantswarm/serverconf/internal/validation"
	"github.com/giantswarm/serverconf/pkg/logging"
)

// DefaultConflictRetries is the number of reload-and-reapply attempts made
// when the store reports a revision conflict.
const DefaultConflictRetries = 5

// Options configure a Service. Store is required; every other field has a default.
type Options struct {
	Store       store.Store
	Resolver    identity.Resolver
	Authorizer  *identity.Authorizer
	Trail       *audit.Trail
	Provisioner *merge.Provisioner
	Sink        events.Sink

	// ConflictRetries bounds the attempts on revision conflicts.
	ConflictRetries int
	// NewCallID generates trace call identifiers.
	NewCallID func() string
}

// Service implements api.ServerConfigHandler.
type Service struct {
	store       store.Store
	resolver    identity.Resolver
	authorizer  *identity.Authorizer
	trail       *audit.Trail
	provisioner *merge.Provisioner
	sink        events.Sink
	backoff     wait.Backoff
	newCallID   func() string

	locks *lockTable
	reads singleflight.Group
}

var _ api.ServerConfigHandler = (*Service)(nil)

// NewService returns a Service for opts.
func NewService(opts Options) *Service {
	s := &Service{
		store:       opts.Store,
		resolver:    opts.Resolver,
		authorizer:  opts.Authorizer,
		trail:       opts.Trail,
		provisioner: opts.Provisioner,
		sink:        opts.Sink,
		newCallID:   opts.NewCallID,
		locks:       newLockTable(),
	}
	if s.resolver == nil {
		s.resolver = identity.ContextResolver{}
	}
	if s.trail == nil {
		s.trail = audit.NewTrail()
	}
	if s.provisioner == nil {
		s.provisioner = merge.NewProvisioner(merge.DefaultDefaults())
	}
	if s.sink == nil {
		s.sink = events.LoggingSink{}
	}
	if s.newCallID == nil {
		s.newCallID = uuid.NewString
	}
	retries := opts.ConflictRetries
	if retries <= 0 {
		retries = DefaultConflictRetries
	}
	s.backoff = wait.Backoff{Steps: retries, Duration: 5 * time.Millisecond, Factor: 2.0, Jitter: 0.2}
	return s
}

// Register makes the service available through the api package.
func (s *Service) Register() {
	api.RegisterServerConfig(s)
}

// mutation describes one mutating operation.
type mutation struct {
	operation string
	action    audit.Action
	data      audit.Data
	rule      merge.Rule
	validate  func() error
}

// call tracks one operation for tracing.
type call struct {
	id        string
	operation string
	server    string
	user      string
	start     time.Time
}

func (s *Service) begin(operation, serverName string) *call {
	c := &call{id: s.newCallID(), operation: operation, server: serverName, start: time.Now()}
	s.sink.Emit(events.Event{
		Kind:       events.KindCallStart,
		CallID:     c.id,
		Operation:  operation,
		ServerName: serverName,
		Time:       c.start,
	})
	return c
}

func (s *Service) end(c *call, outcome api.Outcome, err error) {
	e := events.Event{
		Kind:       events.KindCallEnd,
		CallID:     c.id,
		Operation:  c.operation,
		ServerName: c.server,
		UserID:     c.user,
		Time:       time.Now(),
		Duration:   time.Since(c.start),
		Outcome:    events.OutcomeSuccess,
	}
	switch {
	case err != nil:
		e.Outcome = events.OutcomeError
		e.Err = err.Error()
	case outcome == api.OutcomeNoOp:
		e.Outcome = events.OutcomeNoOp
	}
	s.sink.Emit(e)
}

// recoverInto turns a panic into a ConfigurationError.
func recoverInto(operation, serverName string, err *error) {
	if r := recover(); r != nil {
		logging.Error("ServerConfig", fmt.Errorf("%v", r), "Recovered panic in %s for server %s", operation, serverName)
		*err = api.NewConfigurationError(operation, serverName, fmt.Errorf("panic: %v", r))
	}
}

// authorize resolves the caller and returns the user to record in the audit trail.
func (s *Service) authorize(ctx context.Context, operation string, req api.Request) (string, error) {
	return s.identify(ctx, operation, req, true)
}

// identify resolves the caller. Only mutations are restricted to administrators;
// reads still require a resolvable caller so that trace events name the user.
func (s *Service) identify(ctx context.Context, operation string, req api.Request, mutating bool) (string, error) {
	caller, err := s.resolver.Resolve(ctx)
	if err == nil {
		err = validation.ValidateUserID("userId", caller)
	}
	if err == nil && mutating {
		err = s.authorizer.Authorize(caller)
	}
	if err != nil {
		return "", api.NewNotAuthorizedError(operation, req.ServerName, err)
	}
	if delegate := strings.TrimSpace(req.DelegatingUserID); delegate != "" {
		return delegate, nil
	}
	return caller, nil
}

func (s *Service) loadOrNew(ctx context.Context, serverName string) (*document.ServerConfig, error) {
	doc, err := s.store.Load(ctx, serverName)
	if store.IsNotFound(err) {
		return document.New(serverName), nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// mutate runs the update protocol for m.
func (s *Service) mutate(ctx context.Context, req api.Request, m mutation) (outcome api.Outcome, err error) {
	c := s.begin(m.operation, req.ServerName)
	defer func() { s.end(c, outcome, err) }()
	defer recoverInto(m.operation, req.ServerName, &err)

	if verr := validation.ValidateServerName(req.ServerName); verr != nil {
		return "", api.NewInvalidParameterError(m.operation, req.ServerName, verr.Error())
	}
	if m.validate != nil {
		if verr := m.validate(); verr != nil {
			return "", api.NewInvalidParameterError(m.operation, req.ServerName, verr.Error())
		}
	}

	userID, err := s.authorize(ctx, m.operation, req)
	if err != nil {
		return "", err
	}
	c.user = userID

	unlock := s.locks.Lock(req.ServerName)
	defer unlock()

	attempt := 0
	err = retry.OnError(s.backoff, store.IsConflict, func() error {
		attempt++
		if attempt > 1 {
			logging.Debug("ServerConfig", "Revision conflict on %s, retrying %s (attempt %d)", req.ServerName, m.operation, attempt)
		}

		doc, err := s.loadOrNew(ctx, req.ServerName)
		if err != nil {
			return err
		}

		res, err := s.provisioner.Run(doc, m.rule)
		if err != nil {
			return err
		}
		if !res.Changed {
			outcome = api.OutcomeNoOp
			return nil
		}

		data := m.data
		data.Provisioned = sectionNames(res.Provisioned)
		s.trail.Append(doc, userID, m.action, data)

		if err := s.store.Save(ctx, doc); err != nil {
			return err
		}
		outcome = api.OutcomeApplied
		return nil
	})
	if err != nil {
		return "", api.NewConfigurationError(m.operation, req.ServerName, err)
	}

	if outcome == api.OutcomeApplied {
		logging.Info("ServerConfig", "%s applied to server %s by %s", m.operation, req.ServerName, userID)
	} else {
		logging.Debug("ServerConfig", "%s on server %s changed nothing", m.operation, req.ServerName)
	}
	return outcome, nil
}

// read loads the document under the server's read lock. Concurrent reads of
// one server share a single store load; the returned copy is the caller's own.
func (s *Service) read(ctx context.Context, operation string, req api.Request) (doc *document.ServerConfig, err error) {
	c := s.begin(operation, req.ServerName)
	defer func() { s.end(c, "", err) }()
	defer recoverInto(operation, req.ServerName, &err)

	if verr := validation.ValidateServerName(req.ServerName); verr != nil {
		return nil, api.NewInvalidParameterError(operation, req.ServerName, verr.Error())
	}
	userID, err := s.identify(ctx, operation, req, false)
	if err != nil {
		return nil, err
	}
	c.user = userID

	unlock := s.locks.RLock(req.ServerName)
	defer unlock()

	v, err, _ := s.reads.Do(req.ServerName, func() (interface{}, error) {
		return s.loadOrNew(ctx, req.ServerName)
	})
	if err != nil {
		return nil, api.NewConfigurationError(operation, req.ServerName, err)
	}
	return v.(*document.ServerConfig).Clone(), nil
}

func sectionNames(ids []dependency.SectionID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// ListServers returns the names of all stored documents.
func (s *Service) ListServers(ctx context.Context) (names []string, err error) {
	c := s.begin(OpListServers, "")
	defer func() { s.end(c, "", err) }()
	defer recoverInto(OpListServers, "", &err)

	userID, err := s.identify(ctx, OpListServers, api.Request{}, false)
	if err != nil {
		return nil, err
	}
	c.user = userID

	names, err = s.store.List(ctx)
	if err != nil {
		return nil, api.NewConfigurationError(OpListServers, "", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

