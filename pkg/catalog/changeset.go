package catalog

import (
	"fmt"
	"strings"
)

// FieldChange represents a change to a specific field.
type FieldChange struct {
	Path     string // Field path ("url", "description")
	OldValue string // Previous value
	NewValue string // New value
}

// AppUpdate represents a merge into an existing application entry.
type AppUpdate struct {
	Name      string        // Name of the entry being updated
	Existing  Application   // Entry before the merge
	Merged    Application   // Entry after the merge
	Changes   []FieldChange // Field values that were applied
	AddedTags []string      // Tags contributed by the incoming entry
	Conflicts []FieldChange // Differing non-empty values that were kept as-is
}

// RejectedApp represents a batch entry that failed validation.
type RejectedApp struct {
	Index int         // Position in the batch
	App   Application // The rejected entry as supplied
	Err   error       // The validation error
}

// Summary provides summary statistics for a changeset.
type Summary struct {
	Added        int
	Updated      int
	Rejected     int
	TotalChanges int
}

// Changeset represents the outcome of merging a batch into the working set.
type Changeset struct {
	Added    []Application // Entries inserted as new applications
	Updated  []AppUpdate   // Entries merged into existing applications
	Rejected []RejectedApp // Entries rejected by validation
	Summary  Summary       // Summary statistics
}

// HasChanges returns true if the changeset contains applied changes.
func (c *Changeset) HasChanges() bool {
	return len(c.Added) > 0 || len(c.Updated) > 0
}

// IsEmpty returns true if nothing was added, updated, or rejected.
func (c *Changeset) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.Updated) == 0 && len(c.Rejected) == 0
}

// Errors returns the collected per-entry errors.
func (c *Changeset) Errors() []error {
	errs := make([]error, 0, len(c.Rejected))
	for _, r := range c.Rejected {
		errs = append(errs, r.Err)
	}
	return errs
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes detected"
	}

	var parts []string
	if len(c.Added) > 0 {
		parts = append(parts, fmt.Sprintf("%d added", len(c.Added)))
	}
	if len(c.Updated) > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", len(c.Updated)))
	}
	if len(c.Rejected) > 0 {
		parts = append(parts, fmt.Sprintf("%d rejected", len(c.Rejected)))
	}
	return "Applications: " + strings.Join(parts, ", ")
}

// summarize computes the summary for a changeset.
func summarize(c *Changeset) Summary {
	return Summary{
		Added:        len(c.Added),
		Updated:      len(c.Updated),
		Rejected:     len(c.Rejected),
		TotalChanges: len(c.Added) + len(c.Updated),
	}
}
