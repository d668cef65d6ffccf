package events

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/giantswarm/serverconf/pkg/logging"
)

// LoggingSink writes events through the logging package.
type LoggingSink struct{}

// Emit logs e. Failed calls are logged as warnings, everything else at debug level.
func (LoggingSink) Emit(e Event) {
	switch {
	case e.Kind == KindCallStart:
		logging.Debug("Trace", "%s %s server=%s user=%s call=%s", e.Kind, e.Operation, e.ServerName, e.UserID, e.CallID)
	case e.Outcome == OutcomeError:
		logging.Warn("Trace", "%s %s server=%s call=%s failed after %s: %s", e.Kind, e.Operation, e.ServerName, e.CallID, e.Duration, e.Err)
	default:
		logging.Debug("Trace", "%s %s server=%s call=%s outcome=%s duration=%s", e.Kind, e.Operation, e.ServerName, e.CallID, e.Outcome, e.Duration)
	}
}

// MultiSink delivers each event to every sink in order.
type MultiSink []Sink

// Emit forwards e.
func (m MultiSink) Emit(e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(e)
		}
	}
}

// RecordingSink keeps every event in memory.
type RecordingSink struct {
	mu     sync.Mutex
	events []Event
}

// Emit records e.
func (r *RecordingSink) Emit(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *RecordingSink) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Reset drops the recorded events.
func (r *RecordingSink) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// FileSink appends events as JSON lines to a file.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NewFileSink opens (or creates) path for appending.
func NewFileSink(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create trace directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file %s: %w", path, err)
	}
	return &FileSink{file: f, enc: json.NewEncoder(f)}, nil
}

// Emit writes e as one line. Write errors are logged and otherwise ignored.
func (s *FileSink) Emit(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return
	}
	if err := s.enc.Encode(e); err != nil {
		logging.Warn("Trace", "Failed to write trace event for %s: %v", e.Operation, err)
	}
}

// Close closes the underlying file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
