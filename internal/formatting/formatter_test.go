package formatting

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/giantswarm/serverconf/internal/api"
	"github.com/giantswarm/serverconf/internal/document"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{in: "", want: FormatTable},
		{in: "table", want: FormatTable},
		{in: "JSON", want: FormatJSON},
		{in: " yaml ", want: FormatYAML},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	assert.IsType(t, &TableFormatter{}, New(Options{}))
	assert.IsType(t, &JSONFormatter{}, New(Options{Format: FormatJSON}))
	assert.IsType(t, &YAMLFormatter{}, New(Options{Format: FormatYAML}))
}

func TestJSONFormatter(t *testing.T) {
	f := NewJSONFormatter(Options{Format: FormatJSON})

	assert.Equal(t, "[]\n", f.FormatEngines(nil))
	assert.Equal(t, "null\n", f.FormatConnection(nil))

	var records []map[string]string
	require.NoError(t, json.Unmarshal([]byte(f.FormatAuditTrail([]string{
		"2024-05-01T09:00:00Z garygeeke cleared all view services",
	})), &records))
	assert.Equal(t, []map[string]string{{
		"timestamp": "2024-05-01T09:00:00Z",
		"userId":    "garygeeke",
		"action":    "cleared all view services",
	}}, records)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(f.FormatOutcome("clearViewServices", "cts", api.OutcomeNoOp)), &resp))
	assert.Equal(t, "noop", resp["outcome"])
	assert.Equal(t, "cts", resp["serverName"])
}

func TestYAMLFormatter(t *testing.T) {
	f := NewYAMLFormatter(Options{Format: FormatYAML})

	out := f.FormatServer(&document.ServerConfig{ServerName: "cts", ServerType: "Engine Host"})
	var decoded document.ServerConfig
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "cts", decoded.ServerName)
	assert.Equal(t, "Engine Host", decoded.ServerType)

	assert.Equal(t, "[]\n", f.FormatServers(nil))
}

func TestPrettyJSON(t *testing.T) {
	assert.Equal(t, "{\n  \"name\": \"cts\"\n}", PrettyJSON(map[string]string{"name": "cts"}))
	assert.Equal(t, "[\n  \"a\",\n  \"b\"\n]", PrettyJSON([]string{"a", "b"}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
