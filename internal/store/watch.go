package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/giantswarm/serverconf/pkg/logging"
)

// ChangeOp is the kind of change observed on a document file.
type ChangeOp string

const (
	ChangeWrite  ChangeOp = "write"
	ChangeRemove ChangeOp = "remove"
)

// Change reports that a document file was written or removed.
type Change struct {
	Path string
	Op   ChangeOp
	Time time.Time
}

// Watcher reports changes to the documents of a File store. Bursts of
// events for one file are debounced into a single Change.
type Watcher struct {
	mu sync.Mutex

	dir      string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	pending  map[string]*time.Timer
	ops      map[string]ChangeOp
	changes  chan Change
	stopCh   chan struct{}
	stopped  bool
}

// NewWatcher watches the directory of f. A zero debounce defaults to 100ms.
func NewWatcher(f *File, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(f.Dir()); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", f.Dir(), err)
	}
	return &Watcher{
		dir:      f.Dir(),
		debounce: debounce,
		watcher:  fw,
		pending:  make(map[string]*time.Timer),
		ops:      make(map[string]ChangeOp),
		changes:  make(chan Change, 64),
		stopCh:   make(chan struct{}),
	}, nil
}

// Changes returns the channel that receives debounced changes. It is closed
// after Run returns.
func (w *Watcher) Changes() <-chan Change { return w.changes }

// Run processes filesystem events until ctx is cancelled or Stop is called.
func (w *Watcher) Run(ctx context.Context) {
	logging.Info("Watcher", "Watching %s for configuration changes", w.dir)
	defer func() {
		w.mu.Lock()
		for _, t := range w.pending {
			t.Stop()
		}
		w.pending = make(map[string]*time.Timer)
		w.stopped = true
		close(w.changes)
		w.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("Watcher", err, "Filesystem watcher error")
		}
	}
}

// Stop ends Run and releases the underlying watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	select {
	case <-w.stopCh:
		w.mu.Unlock()
		return nil
	default:
		close(w.stopCh)
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !strings.EqualFold(filepath.Ext(event.Name), fileExtension) {
		return
	}

	var op ChangeOp
	switch {
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		op = ChangeWrite
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		op = ChangeRemove
	default:
		return
	}

	path := event.Name
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.ops[path] = op
	w.pending[path] = time.AfterFunc(w.debounce, func() { w.fire(path) })
}

func (w *Watcher) fire(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	op := w.ops[path]
	delete(w.pending, path)
	delete(w.ops, path)

	select {
	case w.changes <- Change{Path: path, Op: op, Time: time.Now()}:
	default:
		logging.Warn("Watcher", "Change channel full, dropping change for %s", path)
	}
}
