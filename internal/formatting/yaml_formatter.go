package formatting

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/document"
)

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct {
	options Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(options Options) Formatter {
	return &YAMLFormatter{options: options}
}

func (f *YAMLFormatter) FormatServer(doc *document.ServerConfig) string { return toYAML(doc) }
func (f *YAMLFormatter) FormatServers(names []string) string { return toYAML(nonNil(names)) }

func (f *YAMLFormatter) FormatEngines(engines []document.EngineConfig) string {
	return toYAML(nonNil(engines))
}

func (f *YAMLFormatter) FormatConnection(conn *document.Connection) string {
	return toYAML(conn)
}

func (f *YAMLFormatter) FormatAccessServices(svcs []document.AccessServiceConfig) string {
	return toYAML(nonNil(svcs))
}

func (f *YAMLFormatter) FormatViewServices(svcs []document.ViewServiceConfig) string {
	return toYAML(nonNil(svcs))
}

func (f *YAMLFormatter) FormatAuditTrail(entries []string) string {
	return toYAML(parseEntries(entries))
}

func (f *YAMLFormatter) FormatOutcome(operation, serverName string, outcome api.Outcome) string {
	return toYAML(map[string]string{
		"operation":  operation,
		"serverName": serverName,
		"outcome":    string(outcome),
	})
}

func toYAML(v interface{}) string {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v\n", err)
	}
	return string(out)
}
