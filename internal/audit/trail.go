package audit

import (
	"fmt"
	"strings"
	"time"

	"github.com/giantswarm/serverconf/internal/document"
)

// TimestampFormat is the layout of the entry timestamp.
const TimestampFormat = time.RFC3339

// Clock returns the current time.
type Clock func() time.Time

// Trail appends entries to documents.
type Trail struct {
	clock     Clock
	templates *MessageTemplates
}

// Option configures a Trail.
type Option func(*Trail)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(t *Trail) { t.clock = c }
}

// WithTemplates replaces the default message templates.
func WithTemplates(m *MessageTemplates) Option {
	return func(t *Trail) { t.templates = m }
}

// NewTrail returns a Trail using the wall clock and default templates.
func NewTrail(opts ...Option) *Trail {
	t := &Trail{clock: time.Now, templates: NewMessageTemplates()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Append adds one entry for action to the end of the document's trail and
// returns it.
func (t *Trail) Append(doc *document.ServerConfig, userID string, action Action, data Data) string {
	if data.ServerName == "" {
		data.ServerName = doc.ServerName
	}
	entry := FormatEntry(t.clock(), userID, t.templates.Render(action, data))
	doc.AuditTrail = append(doc.AuditTrail, entry)
	return entry
}

// FormatEntry builds an entry line. Whitespace inside userID is collapsed so
// the entry can be split back into its three fields.
func FormatEntry(ts time.Time, userID, description string) string {
	user := strings.Join(strings.Fields(userID), "_")
	if user == "" {
		user = "-"
	}
	return fmt.Sprintf("%s %s %s", ts.UTC().Format(TimestampFormat), user, description)
}

// Entry is a parsed audit trail line.
type Entry struct {
	Timestamp time.Time
	UserID    string
	Action    string
}

// ParseEntry splits an entry produced by FormatEntry.
func ParseEntry(line string) (Entry, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 3 {
		return Entry{}, fmt.Errorf("malformed audit entry %q", line)
	}
	ts, err := time.Parse(TimestampFormat, parts[0])
	if err != nil {
		return Entry{}, fmt.Errorf("malformed audit timestamp in %q: %w", line, err)
	}
	return Entry{Timestamp: ts, UserID: parts[1], Action: parts[2]}, nil
}
