package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/appdex/appdex/pkg/catalog"
	"github.com/appdex/appdex/pkg/errors"
	"github.com/appdex/appdex/pkg/logging"
)

// tagsLinePrefix marks the nested tag line of an entry, matched
// case-insensitively after trimming.
const tagsLinePrefix = "- tags:"

// spaceRuns collapses whitespace runs inside entry lines.
var spaceRuns = regexp.MustCompile(`\s+`)

// Parse reads the catalogue document and extracts the working set.
// Sections other than the application list are preserved verbatim; the
// Tags section is dropped because it is regenerated on render. A
// missing "List of application" heading is fatal.
func Parse(text string) (*Document, error) {
	sections := parseSections(strings.Split(text, "\n"))

	listIndex := -1
	for i, s := range sections {
		if s.Name == HeaderListOfApps {
			listIndex = i
			break
		}
	}
	if listIndex < 0 {
		return nil, &errors.MalformedDocumentError{
			Section: HeaderListOfApps,
			Message: fmt.Sprintf("missing required section %q", HeaderListOfApps),
		}
	}

	apps, err := parseApplications(sections[listIndex])
	if err != nil {
		return nil, err
	}

	doc := &Document{Apps: apps}
	for _, s := range sections[:listIndex] {
		if s.Name == HeaderTags {
			continue
		}
		doc.Before = append(doc.Before, s)
	}
	for _, s := range sections[listIndex+1:] {
		if s.Name == HeaderTags {
			continue
		}
		doc.After = append(doc.After, s)
	}

	logging.Info().
		Int("sections", len(sections)).
		Int("applications", len(apps)).
		Msg("Parsed catalogue document")

	return doc, nil
}

// parseSections splits the document lines into heading-delimited
// sections. Lines before the first heading form a nameless preamble
// section. Section bodies are right-trimmed and stripped of leading and
// trailing blank lines.
func parseSections(lines []string) []Section {
	var sections []Section
	var current []string
	started := false

	flush := func() {
		if !started && len(current) == 0 {
			return
		}
		sections = append(sections, parseSection(current))
		current = nil
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "# ") && len(current) > 0 {
			flush()
		}
		current = append(current, strings.TrimRight(line, " \t"))
		started = true
	}
	flush()

	return sections
}

// parseSection builds one section from its raw lines, the first of
// which may be its heading.
func parseSection(lines []string) Section {
	var name string
	if len(lines) > 0 && strings.HasPrefix(lines[0], "# ") {
		name = strings.TrimSpace(strings.TrimPrefix(lines[0], "#"))
		lines = lines[1:]
	}
	return Section{Name: name, Lines: trimBlankEdges(lines)}
}

// trimBlankEdges removes leading and trailing blank lines.
func trimBlankEdges(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}

// parseApplications extracts the application entries from the list
// section. Each entry starts with a top-level "-" bullet; nested lines
// belong to the preceding bullet.
func parseApplications(section Section) ([]catalog.Application, error) {
	var apps []catalog.Application
	var block []string

	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		app, err := parseEntry(block, len(apps))
		if err != nil {
			return err
		}
		apps = append(apps, app)
		block = nil
		return nil
	}

	for _, line := range section.Lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "-") {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		block = append(block, line)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	logging.Debug().Int("count", len(apps)).Msg("Parsed application entries")
	return apps, nil
}

// parseEntry parses one bulleted block: a name line with an optional
// reference link, nested description lines, and a nested tag line.
func parseEntry(block []string, index int) (catalog.Application, error) {
	head := cleanSpaces(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(block[0]), "-")))

	if strings.Contains(head, "[]") || strings.Contains(head, "()") {
		logging.Error().Str("entry", head).Msg("Found empty link")
	}

	app := catalog.Application{}
	app.Name, app.URL, app.Suffix = splitNameAndLink(head)

	var descParts []string
	var tags []string
	for _, raw := range block[1:] {
		line := cleanSpaces(strings.TrimSpace(raw))
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, tagsLinePrefix) {
			tags = append(tags, splitTags(line[len(tagsLinePrefix):])...)
			continue
		}
		descParts = append(descParts, strings.TrimSpace(strings.TrimPrefix(line, "-")))
	}
	app.Description = strings.Join(descParts, " ")
	app.Tags = dedupe(tags)

	if err := app.Validate(); err != nil {
		return catalog.Application{}, &errors.MalformedDocumentError{
			Section: HeaderListOfApps,
			Message: fmt.Sprintf("entry %d has no name: %v", index+1, err),
		}
	}
	return app, nil
}

// splitNameAndLink separates the display name from the first inline
// link. Anything after that link, such as a thumbnail or badge link,
// is carried as the suffix and re-emitted verbatim on render.
func splitNameAndLink(head string) (name, url, suffix string) {
	bracket := strings.Index(head, "[")
	if bracket < 0 {
		return strings.TrimSpace(head), "", ""
	}

	name = strings.TrimSpace(head[:bracket])
	rest := head[bracket:]

	if open := strings.Index(rest, "]("); open >= 0 {
		if end := strings.Index(rest[open:], ")"); end >= 0 {
			url = strings.TrimSpace(rest[open+2 : open+end])
			suffix = strings.TrimSpace(rest[open+end+1:])
		}
	}
	return name, url, suffix
}

// splitTags parses the comma-separated tag list of a tag line.
func splitTags(text string) []string {
	var tags []string
	for _, part := range strings.Split(text, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// dedupe removes exact and case-insensitive duplicates within one
// entry, keeping first occurrences.
func dedupe(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, tag := range tags {
		key := strings.ToLower(tag)
		if seen[key] {
			logging.Debug().Str("tag", tag).Msg("Dropping duplicate tag within entry")
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}

// cleanSpaces collapses internal whitespace runs to single spaces.
func cleanSpaces(s string) string {
	return spaceRuns.ReplaceAllString(s, " ")
}
