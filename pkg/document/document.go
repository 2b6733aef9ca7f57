// Package document reads and writes the catalogue's markdown document.
// The grammar is deliberately small: top-level "# " headings delimit
// sections, and the distinguished "List of application" section holds
// one bulleted block per application. Sections the parser does not
// recognize are carried through verbatim, so the document stays fully
// human-editable. Rendering is byte-deterministic to keep diffs minimal.
package document

import (
	"strings"

	"github.com/appdex/appdex/pkg/catalog"
)

// Section headings with defined meaning. Any other heading is opaque.
const (
	// HeaderListOfApps delimits the application entries.
	HeaderListOfApps = "List of application"
	// HeaderTags delimits the generated tag summary. It is dropped on
	// parse and regenerated on every render.
	HeaderTags = "Tags"
	// HeaderTemplate delimits the authoring example entry. It is
	// preserved verbatim and never enters the working set.
	HeaderTemplate = "Template"
)

// tagsIntro is the fixed first line of the regenerated Tags section.
const tagsIntro = "List of tags with occurrences in the brackets:"

// Section is a document section preserved verbatim. A section with an
// empty Name is preamble text appearing before the first heading.
type Section struct {
	Name  string
	Lines []string
}

// Text renders the section back to markdown, ending with a newline.
func (s Section) Text() string {
	var b strings.Builder
	if s.Name != "" {
		b.WriteString("# ")
		b.WriteString(s.Name)
		b.WriteString("\n\n")
	}
	b.WriteString(strings.Join(s.Lines, "\n"))
	b.WriteString("\n")
	return b.String()
}

// Document is the parsed catalogue source: verbatim sections around the
// application list, plus the working set extracted from it. The Tags
// section is never stored; it is derived from the applications on render.
type Document struct {
	Before []Section             // sections preceding the application list
	After  []Section             // sections following it, Tags excluded, Template included
	Apps   []catalog.Application // the working set, in document order
}

// Catalog wraps the document's working set for sorting and merging.
// The catalog shares the document's application slice until Apply is
// called with the catalog's (possibly reallocated) slice.
func (d *Document) Catalog() *catalog.Catalog {
	return catalog.New(d.Apps...)
}

// Apply replaces the document's working set with the catalog's.
func (d *Document) Apply(c *catalog.Catalog) {
	d.Apps = c.Applications()
}
