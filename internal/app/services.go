package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/giantswarm/serverconf/internal/audit"
	"github.com/giantswarm/serverconf/internal/config"
	"github.com/giantswarm/serverconf/internal/events"
	"github.com/giantswarm/serverconf/internal/identity"
	"github.com/giantswarm/serverconf/internal/merge"
	"github.com/giantswarm/serverconf/internal/serverconfig"
	"github.com/giantswarm/serverconf/internal/store"
	"github.com/giantswarm/serverconf/pkg/logging"
)

// Services holds the components built during bootstrap.
type Services struct {
	// Store is the document store selected by store.backend.
	Store store.Store

	// ServerConfig is the configuration service. It is also registered with
	// the api package.
	ServerConfig *serverconfig.Service

	// Adapter exposes ServerConfig as tools.
	Adapter *serverconfig.Adapter

	// Registry collects the operation metrics and process metrics.
	Registry *prometheus.Registry

	closers []io.Closer
}

// InitializeServices builds every service for settings.
func InitializeServices(ctx context.Context, settings config.Config) (*Services, error) {
	s, err := store.Open(ctx, storeOptions(settings.Store))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", settings.Store.Backend, err)
	}
	logging.Info("Bootstrap", "Using %s store", settings.Store.Backend)
	services := &Services{Store: s, closers: []io.Closer{s}}

	services.Registry = prometheus.NewRegistry()
	services.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := events.NewMetricsSink(services.Registry)
	if err != nil {
		services.Close()
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	sinks := events.MultiSink{events.LoggingSink{}, metrics}

	if settings.Trace.File != "" {
		fileSink, err := events.NewFileSink(settings.Trace.File)
		if err != nil {
			services.Close()
			return nil, err
		}
		sinks = append(sinks, fileSink)
		services.closers = append(services.closers, fileSink)
		logging.Info("Bootstrap", "Writing trace events to %s", settings.Trace.File)
	}

	services.ServerConfig = serverconfig.NewService(serverconfig.Options{
		Store:      s,
		Resolver:   identity.ContextResolver{Fallback: settings.Identity.LocalUserID},
		Authorizer: identity.NewAuthorizer(settings.Identity.Administrators),
		Trail:      audit.NewTrail(),
		Provisioner: merge.NewProvisioner(merge.Defaults{
			MaxPageSize:           settings.Defaults.MaxPageSize,
			ConformanceServerType: settings.Defaults.ConformanceServerType,
			LocalRepositoryMode:   settings.Defaults.LocalRepositoryMode,
		}),
		Sink:            sinks,
		ConflictRetries: settings.ConflictRetries,
	})
	services.ServerConfig.Register()

	services.Adapter = serverconfig.NewAdapter(services.ServerConfig)
	services.Adapter.Register()

	return services, nil
}

// Close closes the store and any trace file.
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func storeOptions(c config.StoreConfig) store.Options {
	return store.Options{
		Backend:    c.Backend,
		Path:       c.Path,
		SQLitePath: c.SQLitePath,
		Namespace:  c.Namespace,
		Kubeconfig: c.Kubeconfig,
		NATSURL:    c.NATSURL,
		Bucket:     c.Bucket,
	}
}
