// Package catalog provides the entity model and the normalization, sort,
// and merge engine for the curated application catalogue. A Catalog holds
// the in-memory working set of applications for a single run; tag counts
// are derived from it on demand and never stored.
package catalog

import (
	"strings"

	"github.com/appdex/appdex/pkg/errors"
)

// Application represents one catalogued piece of software.
type Application struct {
	// Core identity
	Name        string   `json:"name" yaml:"name"`               // Display name; primary sort key (case-insensitive)
	URL         string   `json:"url" yaml:"url"`                 // Optional reference link
	Description string   `json:"description" yaml:"description"` // Free-text summary
	Tags        []string `json:"tags" yaml:"tags"`               // Normalized tag list, ordered by tier then alphabetically

	// Suffix is the remainder of the entry's head line after the
	// reference link, typically a thumbnail or badge link. It is
	// preserved verbatim and plays no part in identity.
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

// Validate checks model constraints. Name is the only constrained field;
// descriptions and tags accept arbitrary text.
func (a *Application) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.NewValidationError("name", a.Name, "cannot be empty")
	}
	return nil
}

// SameAs reports whether two entries identify the same application:
// case-insensitive equality of name, or of URL when both are non-empty.
func (a *Application) SameAs(other *Application) bool {
	if strings.EqualFold(a.Name, other.Name) {
		return true
	}
	if a.URL != "" && other.URL != "" && strings.EqualFold(a.URL, other.URL) {
		return true
	}
	return false
}

// HasTag reports whether the application carries the tag,
// compared case-insensitively.
func (a *Application) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Copy returns a deep copy of the application.
func (a *Application) Copy() Application {
	dup := *a
	dup.Tags = make([]string, len(a.Tags))
	copy(dup.Tags, a.Tags)
	return dup
}
