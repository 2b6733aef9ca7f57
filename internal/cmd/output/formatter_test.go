package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	format, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, Format(""), format)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML))
	assert.IsType(t, &TableFormatter{}, NewFormatter(FormatTable))
	assert.IsType(t, &TableFormatter{}, NewFormatter("bogus"))

	wide, ok := NewFormatter(FormatWide).(*TableFormatter)
	require.True(t, ok)
	assert.True(t, wide.Wide)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{Indent: "  "}
	require.NoError(t, f.Format(&buf, map[string]string{"tag": "TUI"}))
	assert.Equal(t, "{\n  \"tag\": \"TUI\"\n}\n", buf.String())
}

func TestJSONFormatterNoHTMLEscape(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	require.NoError(t, f.Format(&buf, []string{"<cli & tui>"}))
	assert.Contains(t, buf.String(), "<cli & tui>")
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &YAMLFormatter{}
	require.NoError(t, f.Format(&buf, map[string]int{"count": 3}))
	assert.Equal(t, "count: 3\n", buf.String())
}

func TestTableFormatterData(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	err := f.Format(&buf, Data{
		Headers: []string{"Name", "Tags"},
		Rows:    [][]string{{"bat", "viewer"}, {"jq", "JSON"}},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "bat")
	assert.Contains(t, out, "jq")
	assert.Contains(t, strings.ToUpper(out), "NAME")
}

func TestTableFormatterReflection(t *testing.T) {
	type row struct {
		Tag   string `json:"tag"`
		Count int    `json:"count"`
	}

	var buf bytes.Buffer
	f := &TableFormatter{}
	require.NoError(t, f.Format(&buf, []row{{Tag: "TUI", Count: 7}}))
	out := buf.String()
	assert.Contains(t, out, "TUI")
	assert.Contains(t, out, "7")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	require.NoError(t, f.Format(&buf, map[string]int{"tags": 12}))
	assert.Contains(t, buf.String(), "\"tags\": 12")
}
