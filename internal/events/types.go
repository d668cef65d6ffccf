package events

import (
	"time"
)

// Kind distinguishes the two trace points of a call.
type Kind string

const (
	// KindCallStart is emitted when an operation is entered.
	KindCallStart Kind = "CallStart"
	// KindCallEnd is emitted when an operation returns.
	KindCallEnd Kind = "CallEnd"
)

// Outcome summarises how a call ended.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeNoOp    Outcome = "noop"
	OutcomeError   Outcome = "error"
)

// Event is one trace point.
type Event struct {
	Kind       Kind      `json:"kind"`
	CallID     string    `json:"callId"`
	Operation  string    `json:"operation"`
	ServerName string    `json:"serverName"`
	UserID     string    `json:"userId,omitempty"`
	Time       time.Time `json:"time"`

	// The remaining fields are only set on CallEnd.
	Outcome  Outcome       `json:"outcome,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      string        `json:"error,omitempty"`
}

// Sink receives trace events. Implementations must be safe for concurrent use
// and must not block for long; they run inline with the call.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Emit calls f.
func (f SinkFunc) Emit(e Event) { f(e) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})
