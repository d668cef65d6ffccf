package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/giantswarm/serverconf/internal/document"
	"github.com/giantswarm/serverconf/pkg/logging"
)

const fileExtension = ".yaml"

// fileRecord is the on-disk layout of one document.
type fileRecord struct {
	Revision int64                  `yaml:"revision"`
	Config   *document.ServerConfig `yaml:"config"`
}

// File stores one YAML file per server in a directory.
//
// The revision check and the write happen under the store's mutex and an
// advisory lock on the directory, so CAS semantics hold between goroutines and
// between processes sharing the directory. Writes go to a temporary file that
// is renamed into place, so readers never observe a partial file.
type File struct {
	mu  sync.RWMutex
	dir string
}

// NewFile returns a file store rooted at dir, creating it if needed.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("store directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

// Dir returns the directory holding the documents.
func (f *File) Dir() string { return f.dir }

// PathFor returns the file that holds the named server's document.
func (f *File) PathFor(serverName string) string {
	return filepath.Join(f.dir, sanitizeName(serverName)+fileExtension)
}

// Load implements Store.
func (f *File) Load(_ context.Context, serverName string) (*document.ServerConfig, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	rec, err := f.read(f.PathFor(serverName))
	if err != nil {
		return nil, err
	}
	if rec.Config.ServerName != serverName {
		return nil, fmt.Errorf("file %s holds server %q, not %q", f.PathFor(serverName), rec.Config.ServerName, serverName)
	}
	rec.Config.Revision = formatRevision(rec.Revision)
	return rec.Config, nil
}

// Save implements Store.
func (f *File) Save(_ context.Context, doc *document.ServerConfig) error {
	expected, err := parseRevision(doc.Revision)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	unlock, err := lockDir(f.dir)
	if err != nil {
		return err
	}
	defer unlock()

	path := f.PathFor(doc.ServerName)
	var current int64
	rec, err := f.read(path)
	switch {
	case err == nil:
		current = rec.Revision
	case IsNotFound(err):
	default:
		return err
	}
	if current != expected {
		return ErrConflict
	}

	next := current + 1
	data, err := yaml.Marshal(fileRecord{Revision: next, Config: doc})
	if err != nil {
		return fmt.Errorf("failed to encode server %s: %w", doc.ServerName, err)
	}
	if err := writeAtomic(path, data); err != nil {
		return err
	}

	doc.Revision = formatRevision(next)
	logging.Debug("Storage", "Saved server %s revision %d to %s", doc.ServerName, next, path)
	return nil
}

// List implements Store. Names come from the documents, not the file names.
func (f *File) List(context.Context) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	paths, err := filepath.Glob(filepath.Join(f.dir, "*"+fileExtension))
	if err != nil {
		return nil, fmt.Errorf("failed to glob yaml files: %w", err)
	}

	names := make([]string, 0, len(paths))
	for _, path := range paths {
		rec, err := f.read(path)
		if err != nil {
			logging.Warn("Storage", "Skipping unreadable document %s: %v", path, err)
			continue
		}
		names = append(names, rec.Config.ServerName)
	}
	sort.Strings(names)
	return names, nil
}

// Close implements Store.
func (f *File) Close() error { return nil }

func (f *File) read(path string) (*fileRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var rec fileRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if rec.Config == nil {
		return nil, fmt.Errorf("file %s contains no configuration document", path)
	}
	return &rec, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+strings.TrimSuffix(filepath.Base(path), fileExtension)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
