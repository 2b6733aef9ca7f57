package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appdex/appdex/pkg/catalog"
	"github.com/appdex/appdex/pkg/errors"
)

func TestWriteEmptyChangeset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &catalog.Changeset{}))

	out := buf.String()
	assert.Contains(t, out, "# Merge Report")
	assert.Contains(t, out, "No changes detected")
	assert.NotContains(t, out, "## Added")
	assert.NotContains(t, out, "## Rejected")
}

func TestWriteFullChangeset(t *testing.T) {
	changes := &catalog.Changeset{
		Added: []catalog.Application{
			{Name: "zoxide", URL: "https://github.com/ajeetdsouza/zoxide", Tags: []string{"Navigation"}},
		},
		Updated: []catalog.AppUpdate{
			{
				Name: "jq",
				Changes: []catalog.FieldChange{
					{Path: "description", OldValue: "", NewValue: "JSON processor."},
				},
				AddedTags: []string{"content extractor"},
				Conflicts: []catalog.FieldChange{
					{Path: "url", OldValue: "https://jqlang.github.io/jq", NewValue: "https://stedolan.github.io/jq"},
				},
			},
		},
		Rejected: []catalog.RejectedApp{
			{Index: 3, App: catalog.Application{URL: "https://example.com"}, Err: errors.NewValidationError("name", "", "name cannot be empty")},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, changes))
	out := buf.String()

	assert.Contains(t, out, "## Added")
	assert.Contains(t, out, "**zoxide**")
	assert.Contains(t, out, "[link](https://github.com/ajeetdsouza/zoxide)")

	assert.Contains(t, out, "## Updated")
	assert.Contains(t, out, "JSON processor.")
	assert.Contains(t, out, "+ content extractor")
	assert.Contains(t, out, "(empty)")

	assert.Contains(t, out, "## Conflicts")
	assert.Contains(t, out, "https://stedolan.github.io/jq")

	assert.Contains(t, out, "## Rejected")
	assert.Contains(t, out, "(unnamed)")
	assert.Contains(t, out, "name cannot be empty")
}
