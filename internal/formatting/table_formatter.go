package formatting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/document"
)

const maxCellWidth = 80

// TableFormatter provides aligned table output formatting
type TableFormatter struct {
	options Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(options Options) Formatter {
	return &TableFormatter{options: options}
}

// FormatServer renders a summary of the whole document.
func (f *TableFormatter) FormatServer(doc *document.ServerConfig) string {
	t := f.createTable()
	t.AppendHeader(table.Row{"FIELD", "VALUE"})
	t.AppendRow(table.Row{"Server name", doc.ServerName})
	t.AppendRow(table.Row{"Server type", doc.ServerType})
	t.AppendRow(table.Row{"Max page size", pageSize(doc.MaxPageSize)})
	t.AppendRow(table.Row{"Repository services", repositorySummary(doc.RepositoryServices)})
	t.AppendRow(table.Row{"Workbenches", workbenchSummary(doc.ConformanceSuite)})
	t.AppendRow(table.Row{"Governance engines", strconv.Itoa(len(doc.GovernanceEngines))})
	t.AppendRow(table.Row{"Security connector", connectorSummary(doc.SecurityConnection)})
	t.AppendRow(table.Row{"Access services", strconv.Itoa(len(doc.AccessServices))})
	t.AppendRow(table.Row{"View services", strconv.Itoa(len(doc.ViewServices))})
	t.AppendRow(table.Row{"Audit entries", strconv.Itoa(len(doc.AuditTrail))})
	return t.Render() + "\n"
}

// FormatServers renders the list of configured servers.
func (f *TableFormatter) FormatServers(names []string) string {
	if len(names) == 0 {
		return f.formatEmptyMessage("No servers configured")
	}
	t := f.createTable()
	t.AppendHeader(table.Row{"SERVER"})
	for _, name := range names {
		t.AppendRow(table.Row{name})
	}
	return t.Render() + "\n"
}

func (f *TableFormatter) FormatEngines(engines []document.EngineConfig) string {
	if len(engines) == 0 {
		return f.formatEmptyMessage("No governance engines configured")
	}
	t := f.createTable()
	t.AppendHeader(table.Row{"QUALIFIED NAME", "ENGINE ID", "USER", "OMAG SERVER", "PLATFORM URL"})
	for _, e := range engines {
		t.AppendRow(table.Row{e.EngineQualifiedName, e.EngineID, e.EngineUserID, e.OMAGServerName, e.OMAGServerPlatformRootURL})
	}
	return t.Render() + "\n"
}

func (f *TableFormatter) FormatConnection(conn *document.Connection) string {
	if conn == nil {
		return f.formatEmptyMessage("No server security connector configured")
	}
	var provider, endpoint string
	if conn.ConnectorType != nil {
		provider = conn.ConnectorType.ConnectorProviderClassName
	}
	if conn.Endpoint != nil {
		endpoint = conn.Endpoint.Address
	}

	t := f.createTable()
	t.AppendHeader(table.Row{"FIELD", "VALUE"})
	t.AppendRow(table.Row{"Qualified name", conn.QualifiedName})
	t.AppendRow(table.Row{"Display name", conn.DisplayName})
	t.AppendRow(table.Row{"Connector provider", provider})
	t.AppendRow(table.Row{"Endpoint", endpoint})
	t.AppendRow(table.Row{"Properties", truncate(joinOptions(conn.ConfigurationProperties), maxCellWidth)})
	return t.Render() + "\n"
}

func (f *TableFormatter) FormatAccessServices(svcs []document.AccessServiceConfig) string {
	if len(svcs) == 0 {
		return f.formatEmptyMessage("No access services configured")
	}
	t := f.createTable()
	t.AppendHeader(table.Row{"NAME", "OPTIONS"})
	for _, s := range svcs {
		t.AppendRow(table.Row{s.AccessServiceName, truncate(joinOptions(s.AccessServiceOptions), maxCellWidth)})
	}
	return t.Render() + "\n"
}

func (f *TableFormatter) FormatViewServices(svcs []document.ViewServiceConfig) string {
	if len(svcs) == 0 {
		return f.formatEmptyMessage("No view services configured")
	}
	t := f.createTable()
	t.AppendHeader(table.Row{"NAME", "OMAG SERVER", "PLATFORM URL", "OPTIONS"})
	for _, s := range svcs {
		t.AppendRow(table.Row{s.ViewServiceName, s.OMAGServerName, s.OMAGServerPlatformRootURL, truncate(joinOptions(s.ViewServiceOptions), maxCellWidth)})
	}
	return t.Render() + "\n"
}

// FormatAuditTrail renders one row per entry, oldest first.
func (f *TableFormatter) FormatAuditTrail(entries []string) string {
	if len(entries) == 0 {
		return f.formatEmptyMessage("No audit entries")
	}
	t := f.createTable()
	t.AppendHeader(table.Row{"#", "TIMESTAMP", "USER", "ACTION"})
	for i, r := range parseEntries(entries) {
		t.AppendRow(table.Row{strconv.Itoa(i + 1), r.Timestamp, r.UserID, truncate(r.Action, maxCellWidth)})
	}
	return t.Render() + "\n"
}

func (f *TableFormatter) FormatOutcome(operation, serverName string, outcome api.Outcome) string {
	verb := "applied"
	if outcome == api.OutcomeNoOp {
		verb = "no change"
	}
	if f.options.Color {
		verb = text.FgHiGreen.Sprint(verb)
	}
	return fmt.Sprintf("%s: %s on server %s\n", verb, operation, serverName)
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	if f.options.Color {
		t.SetStyle(table.StyleRounded)
		t.Style().Color.Header = text.Colors{text.FgHiCyan}
	} else {
		t.SetStyle(table.StyleDefault)
	}
	return t
}

// formatEmptyMessage formats empty result messages
func (f *TableFormatter) formatEmptyMessage(message string) string {
	if f.options.Color {
		return text.FgYellow.Sprint(message) + "\n"
	}
	return message + "\n"
}

func pageSize(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func repositorySummary(rs *document.RepositoryServicesConfig) string {
	if rs == nil || rs.LocalRepository == nil {
		if rs != nil {
			return "enterprise access only"
		}
		return ""
	}
	return fmt.Sprintf("%s (%s)", rs.LocalRepository.Mode, rs.LocalRepository.MetadataCollectionID)
}

func workbenchSummary(cs *document.ConformanceSuiteConfig) string {
	if cs.IsEmpty() {
		return ""
	}
	var names []string
	if cs.RepositoryWorkbench != nil {
		names = append(names, "repository")
	}
	if cs.PlatformWorkbench != nil {
		names = append(names, "platform")
	}
	if cs.RepositoryPerformance != nil {
		names = append(names, "performance")
	}
	return strings.Join(names, ", ")
}

func connectorSummary(conn *document.Connection) string {
	if conn == nil || conn.ConnectorType == nil {
		return ""
	}
	return conn.ConnectorType.ConnectorProviderClassName
}
