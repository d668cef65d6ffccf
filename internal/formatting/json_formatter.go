package formatting

import (
	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/audit"
	"github.com/giantswarm/serverconf/internal/document"
)

// JSONFormatter provides JSON output formatting
type JSONFormatter struct {
	options Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(options Options) Formatter {
	return &JSONFormatter{options: options}
}

func (f *JSONFormatter) FormatServer(doc *document.ServerConfig) string { return PrettyJSON(doc) + "\n" }
func (f *JSONFormatter) FormatServers(names []string) string { return PrettyJSON(nonNil(names)) + "\n" }

func (f *JSONFormatter) FormatEngines(engines []document.EngineConfig) string {
	return PrettyJSON(nonNil(engines)) + "\n"
}

func (f *JSONFormatter) FormatConnection(conn *document.Connection) string {
	return PrettyJSON(conn) + "\n"
}

func (f *JSONFormatter) FormatAccessServices(svcs []document.AccessServiceConfig) string {
	return PrettyJSON(nonNil(svcs)) + "\n"
}

func (f *JSONFormatter) FormatViewServices(svcs []document.ViewServiceConfig) string {
	return PrettyJSON(nonNil(svcs)) + "\n"
}

func (f *JSONFormatter) FormatAuditTrail(entries []string) string {
	return PrettyJSON(parseEntries(entries)) + "\n"
}

func (f *JSONFormatter) FormatOutcome(operation, serverName string, outcome api.Outcome) string {
	return PrettyJSON(api.NewResponse(operation, serverName, outcome, nil, nil)) + "\n"
}

// auditRecord is the structured form of one audit trail entry.
type auditRecord struct {
	Timestamp string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	UserID    string `json:"userId,omitempty" yaml:"userId,omitempty"`
	Action    string `json:"action" yaml:"action"`
}

// parseEntries splits audit entries; entries in an unknown format are kept
// whole in Action.
func parseEntries(entries []string) []auditRecord {
	records := make([]auditRecord, len(entries))
	for i, line := range entries {
		e, err := audit.ParseEntry(line)
		if err != nil {
			records[i] = auditRecord{Action: line}
			continue
		}
		records[i] = auditRecord{
			Timestamp: e.Timestamp.UTC().Format(audit.TimestampFormat),
			UserID:    e.UserID,
			Action:    e.Action,
		}
	}
	return records
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
