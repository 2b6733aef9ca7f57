package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDoc = `# List of application

- yazi [🛈](https://yazi-rs.github.io)
  - Blazing fast terminal file manager.
  - Tags: file manager, TUI, source: Rust
- bat [🛈](https://github.com/sharkdp/bat)
  - A cat clone with wings.
  - Tags: viewer, command line: cat
`

func newTestApp(t *testing.T) *App {
	t.Helper()
	application, err := New("test", "none", "now", "go test")
	require.NoError(t, err)
	return application
}

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte(testDoc), 0o644))
	return path
}

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{"default", Config{}, "info"},
		{"verbose", Config{Verbose: true}, "debug"},
		{"quiet", Config{Quiet: true}, "warn"},
		{"both prefers quiet", Config{Verbose: true, Quiet: true}, "warn"},
		{"explicit wins", Config{Verbose: true, LogLevel: "error"}, "error"},
		{"invalid falls back", Config{LogLevel: "noise"}, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.config))
		})
	}
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "table", DocumentPath: "README.md"}
	config.UpdateFromFlags(true, false, true, "", "debug", "apps.md", "")

	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "table", config.Format)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "apps.md", config.DocumentPath)
}

func TestExecuteVersion(t *testing.T) {
	application := newTestApp(t)

	root := application.createRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Contains(t, buf.String(), "appdex version test")
}

func TestExecuteResort(t *testing.T) {
	application := newTestApp(t)
	path := writeDoc(t)

	root := application.createRootCommand()
	root.SetArgs([]string{"resort", "--document", path, "--quiet"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "# Tags")
	assert.Less(t, bytes.Index(data, []byte("- bat ")), bytes.Index(data, []byte("- yazi ")))

	_, err = os.Stat(filepath.Join(filepath.Dir(path), "applications.json"))
	assert.NoError(t, err)
}

func TestExecuteMergeDryRun(t *testing.T) {
	application := newTestApp(t)
	path := writeDoc(t)

	batchPath := filepath.Join(t.TempDir(), "batch.json")
	batch := `[{"name": "zoxide", "url": "https://github.com/ajeetdsouza/zoxide", "description": "", "tags": ["navigation"]}]`
	require.NoError(t, os.WriteFile(batchPath, []byte(batch), 0o644))

	root := application.createRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"merge", batchPath, "--dry-run", "--document", path, "--quiet"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Contains(t, buf.String(), "1 added")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testDoc, string(data))
}

func TestExecuteMergeReportsRejections(t *testing.T) {
	application := newTestApp(t)
	path := writeDoc(t)

	batchPath := filepath.Join(t.TempDir(), "batch.json")
	batch := `[{"name": "  ", "url": "https://example.com", "description": "", "tags": []}]`
	require.NoError(t, os.WriteFile(batchPath, []byte(batch), 0o644))

	reportPath := filepath.Join(t.TempDir(), "report.md")
	root := application.createRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"merge", batchPath, "--report", reportPath, "--document", path, "--quiet"})

	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected 1")

	reportData, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(reportData), "# Merge Report")
}

func TestExecuteList(t *testing.T) {
	application := newTestApp(t)
	path := writeDoc(t)

	root := application.createRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"list", "--tags", "--format", "json", "--document", path, "--quiet"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "\"tag\"")
	assert.Contains(t, out, "TUI")
}

func TestExecuteListNormalizesTags(t *testing.T) {
	application := newTestApp(t)

	doc := "# List of application\n\n" +
		"- bat [🛈](https://github.com/sharkdp/bat)\n  - A cat clone.\n  - Tags: tui\n" +
		"- yazi [🛈](https://yazi-rs.github.io)\n  - File manager.\n  - Tags: TUI\n"
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	root := application.createRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"list", "--tags", "--format", "json", "--document", path, "--quiet"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	out := buf.String()
	assert.Contains(t, out, `"tag": "TUI"`)
	assert.NotContains(t, out, `"tag": "tui"`)
	assert.Contains(t, out, `"count": 2`)
}
