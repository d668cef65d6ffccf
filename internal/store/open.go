package store

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendMemory     = "memory"
	BackendFile       = "file"
	BackendSQLite     = "sqlite"
	BackendKubernetes = "kubernetes"
	BackendNATS       = "nats"
)

// Options select and configure a backend.
type Options struct {
	Backend    string
	Path       string
	SQLitePath string
	Namespace  string
	Kubeconfig string
	NATSURL    string
	Bucket     string
}

// Open creates the backend named in opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		return NewFile(opts.Path)
	case BackendSQLite:
		return OpenSQLite(opts.SQLitePath)
	case BackendKubernetes:
		return NewKubernetesFromKubeconfig(opts.Kubeconfig, opts.Namespace)
	case BackendNATS:
		return OpenNATS(ctx, opts.NATSURL, opts.Bucket)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
