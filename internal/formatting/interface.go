// Package formatting renders configuration documents and operation results
// for the command line.
//
// Three output formats are supported: aligned tables for people, and JSON or
// YAML for scripts. All formatters return the rendered text; writing it is
// left to the caller.
package formatting

import (
	"fmt"
	"strings"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/document"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Aligned tables
	FormatJSON  OutputFormat = "json"  // JSON output
	FormatYAML  OutputFormat = "yaml"  // YAML output
)

// ParseFormat converts a flag value into an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, json or yaml)", s)
	}
}

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Color  bool // Enable colored output
}

// Formatter renders the values returned by configuration operations.
type Formatter interface {
	FormatServer(doc *document.ServerConfig) string
	FormatServers(names []string) string
	FormatEngines(engines []document.EngineConfig) string
	FormatConnection(conn *document.Connection) string
	FormatAccessServices(svcs []document.AccessServiceConfig) string
	FormatViewServices(svcs []document.ViewServiceConfig) string
	FormatAuditTrail(entries []string) string
	FormatOutcome(operation, serverName string, outcome api.Outcome) string
}

// New creates the formatter for options.Format.
func New(options Options) Formatter {
	switch options.Format {
	case FormatJSON:
		return NewJSONFormatter(options)
	case FormatYAML:
		return NewYAMLFormatter(options)
	default:
		return NewTableFormatter(options)
	}
}
