package document

import (
	"fmt"
	"strings"

	"github.com/appdex/appdex/pkg/catalog"
	"github.com/appdex/appdex/pkg/logging"
)

// linkSymbol is the fixed link text for an entry's reference link.
const linkSymbol = "🛈"

// Render serializes the document back to markdown. Output is
// byte-deterministic for a given entity sequence: verbatim sections,
// then the application list, then the regenerated Tags section derived
// from the current working set. Rendering the output of Parse on an
// already-normalized document reproduces it exactly.
func Render(doc *Document) string {
	var b strings.Builder

	for _, s := range doc.Before {
		b.WriteString(s.Text())
		b.WriteString("\n")
	}

	b.WriteString("# ")
	b.WriteString(HeaderListOfApps)
	b.WriteString("\n\n")
	for i := range doc.Apps {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatApplication(&doc.Apps[i]))
	}
	b.WriteString("\n\n")

	for _, s := range doc.After {
		b.WriteString(s.Text())
		b.WriteString("\n")
	}

	counts := catalog.New(doc.Apps...).TagCounts()
	b.WriteString(tagsSection(counts).Text())

	logging.Info().
		Int("applications", len(doc.Apps)).
		Int("tags", len(counts)).
		Msg("Rendered catalogue document")

	return b.String()
}

// formatApplication renders one entry block, without a trailing newline.
func formatApplication(app *catalog.Application) string {
	var b strings.Builder

	b.WriteString("- ")
	b.WriteString(app.Name)
	if app.URL != "" {
		fmt.Fprintf(&b, " [%s](%s)", linkSymbol, app.URL)
	}
	if app.Suffix != "" {
		b.WriteString(" ")
		b.WriteString(app.Suffix)
	}

	if app.Description != "" {
		b.WriteString("\n  - ")
		b.WriteString(app.Description)
	}

	b.WriteString("\n  - Tags:")
	if len(app.Tags) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(app.Tags, ", "))
	}

	return b.String()
}

// tagsSection regenerates the Tags section from the derived tag index.
func tagsSection(counts []catalog.TagCount) Section {
	lines := make([]string, 0, len(counts)+2)
	lines = append(lines, tagsIntro, "")
	for _, tc := range counts {
		lines = append(lines, fmt.Sprintf("- %s (%d)", tc.Tag, tc.Count))
	}
	return Section{Name: HeaderTags, Lines: lines}
}
