package appdex

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdex/appdex/pkg/catalog"
	"github.com/appdex/appdex/pkg/errors"
	"github.com/appdex/appdex/pkg/export"
)

const testDoc = `# Intro

A curated list.

# List of application

- yazi [🛈](https://yazi-rs.github.io)
  - Blazing fast terminal file manager.
  - Tags: file manager, TUI, source: Rust
- bat [🛈](https://github.com/sharkdp/bat)
  - A cat clone with wings.
  - Tags: viewer, tui, command line: cat
`

func writeTestDoc(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewDefaults(t *testing.T) {
	dex, err := New()
	require.NoError(t, err)
	assert.Equal(t, DefaultDocument, dex.DocumentPath())
}

func TestNewOptionValidation(t *testing.T) {
	_, err := New(WithDocument(""))
	assert.True(t, errors.IsValidationError(err))

	_, err = New(WithExportDir(""))
	assert.True(t, errors.IsValidationError(err))

	_, err = New(WithFileReader(nil))
	assert.True(t, errors.IsValidationError(err))
}

func TestLoadMissingFile(t *testing.T) {
	dex, err := New(WithDocument(filepath.Join(t.TempDir(), "missing.md")))
	require.NoError(t, err)

	_, err = dex.Load(context.Background())
	require.Error(t, err)

	var ioErr *errors.IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestLoadMalformedCarriesPath(t *testing.T) {
	path := writeTestDoc(t, "# Just prose\n\nNo list here.\n")
	dex, err := New(WithDocument(path))
	require.NoError(t, err)

	_, err = dex.Load(context.Background())
	require.Error(t, err)

	var malformed *errors.MalformedDocumentError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, path, malformed.Path)
}

func TestResortPersistsEverything(t *testing.T) {
	path := writeTestDoc(t, testDoc)
	dex, err := New(WithDocument(path))
	require.NoError(t, err)

	require.NoError(t, dex.Resort(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	// bat sorts before yazi, and "tui" unifies to the capitalized form.
	assert.Less(t, strings.Index(text, "- bat "), strings.Index(text, "- yazi "))
	assert.Contains(t, text, "Tags: TUI, viewer, command line: cat")
	assert.Contains(t, text, "# Tags")

	dir := filepath.Dir(path)
	for _, name := range []string{"applications.json", "tags.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	// A second pass changes nothing.
	require.NoError(t, dex.Resort(context.Background()))
	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, text, string(again))
}

func TestMergeDryRunWritesNothing(t *testing.T) {
	path := writeTestDoc(t, testDoc)
	dex, err := New(WithDocument(path))
	require.NoError(t, err)

	batch := []catalog.Application{
		{Name: "zoxide", URL: "https://github.com/ajeetdsouza/zoxide", Tags: []string{"navigation"}},
	}
	changes, err := dex.Merge(context.Background(), batch, true)
	require.NoError(t, err)
	assert.Equal(t, 1, changes.Summary.Added)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testDoc, string(data))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(path), "applications.json"))
}

func TestExportNormalizesTags(t *testing.T) {
	doc := "# List of application\n\n" +
		"- bat [🛈](https://github.com/sharkdp/bat)\n  - A cat clone.\n  - Tags: tui\n" +
		"- yazi [🛈](https://yazi-rs.github.io)\n  - File manager.\n  - Tags: TUI\n"
	path := writeTestDoc(t, doc)
	dex, err := New(WithDocument(path))
	require.NoError(t, err)

	outDir := t.TempDir()
	require.NoError(t, dex.Export(context.Background(), outDir, export.FormatJSON))

	data, err := os.ReadFile(filepath.Join(outDir, "tags.json"))
	require.NoError(t, err)
	var counts []catalog.TagCount
	require.NoError(t, json.Unmarshal(data, &counts))
	require.Len(t, counts, 1)
	assert.Equal(t, catalog.TagCount{Tag: "TUI", Count: 2}, counts[0])

	// The document itself is untouched.
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc, string(after))
}

func TestMergeAppliesAndPersists(t *testing.T) {
	path := writeTestDoc(t, testDoc)
	dex, err := New(WithDocument(path))
	require.NoError(t, err)

	batch := []catalog.Application{
		{Name: "zoxide", URL: "https://github.com/ajeetdsouza/zoxide", Description: "A smarter cd command.", Tags: []string{"navigation"}},
		{Name: "  ", URL: "https://example.com/broken"},
	}
	changes, err := dex.Merge(context.Background(), batch, false)
	require.NoError(t, err)
	assert.Equal(t, 1, changes.Summary.Added)
	assert.Equal(t, 1, changes.Summary.Rejected)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- zoxide ")
	assert.NotContains(t, string(data), "example.com/broken")
}
