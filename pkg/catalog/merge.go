package catalog

import (
	"strings"

	"github.com/appdex/appdex/pkg/errors"
	"github.com/appdex/appdex/pkg/logging"
)

// MergeStrategy defines how a batch entry is combined with an existing
// entry that identifies the same application.
type MergeStrategy int

const (
	// MergeEnrichEmpty unions tag sets and fills empty fields from the
	// incoming entry, preserving existing non-empty values.
	MergeEnrichEmpty MergeStrategy = iota
	// MergeReplaceAll replaces the matched entry with the incoming one.
	MergeReplaceAll
)

// MergeOption configures a merge run.
type MergeOption func(*MergeOptions)

// MergeOptions holds merge configuration.
type MergeOptions struct {
	Strategy MergeStrategy
}

// WithStrategy overrides the merge strategy.
func WithStrategy(s MergeStrategy) MergeOption {
	return func(o *MergeOptions) {
		o.Strategy = s
	}
}

// Merge reconciles a batch of candidate applications into the working
// set and returns the resulting changeset. Entries failing validation
// are rejected individually and reported; all valid entries are still
// applied. After merging, the working set is resorted.
//
// Callers implementing a dry run perform the same merge on a Copy of
// the catalog and only report the changeset.
func (c *Catalog) Merge(batch []Application, opts ...MergeOption) *Changeset {
	mergeOpts := &MergeOptions{Strategy: MergeEnrichEmpty}
	for _, opt := range opts {
		opt(mergeOpts)
	}

	changes := &Changeset{}

	for idx := range batch {
		candidate := batch[idx]
		if err := candidate.Validate(); err != nil {
			var verr *errors.ValidationError
			if errors.As(err, &verr) {
				verr.Index = idx
			}
			logging.Error().
				Int("index", idx).
				Err(err).
				Msg("Rejecting batch entry")
			changes.Rejected = append(changes.Rejected, RejectedApp{Index: idx, App: candidate, Err: err})
			continue
		}

		pos := c.Find(&candidate)
		if pos < 0 {
			added := candidate.Copy()
			added.Tags = dedupeTags(added.Tags)
			c.Add(added)
			changes.Added = append(changes.Added, added)
			logging.Info().Str("application", added.Name).Msg("Adding application")
			continue
		}

		update := c.mergeInto(pos, &candidate, mergeOpts.Strategy)
		if update != nil {
			changes.Updated = append(changes.Updated, *update)
			logging.Info().
				Str("application", update.Name).
				Int("field_changes", len(update.Changes)).
				Strs("added_tags", update.AddedTags).
				Msg("Updating application")
		} else {
			logging.Debug().Str("application", candidate.Name).Msg("Duplicate entry, nothing to merge")
		}
	}

	c.Resort()
	refreshSnapshots(c, changes)
	changes.Summary = summarize(changes)
	return changes
}

// refreshSnapshots re-reads the merged entries after the resort so the
// changeset reports canonical tag casing and ordering, not the raw
// batch values.
func refreshSnapshots(c *Catalog, changes *Changeset) {
	for i := range changes.Added {
		if pos := c.Find(&changes.Added[i]); pos >= 0 {
			changes.Added[i] = c.apps[pos].Copy()
		}
	}
	for i := range changes.Updated {
		if pos := c.Find(&changes.Updated[i].Merged); pos >= 0 {
			changes.Updated[i].Merged = c.apps[pos].Copy()
		}
	}
}

// mergeInto combines the candidate with the entry at pos and returns the
// update record, or nil when the candidate contributed nothing new.
func (c *Catalog) mergeInto(pos int, candidate *Application, strategy MergeStrategy) *AppUpdate {
	existing := &c.apps[pos]
	update := &AppUpdate{Name: existing.Name, Existing: existing.Copy()}

	if strategy == MergeReplaceAll {
		replacement := candidate.Copy()
		replacement.Tags = dedupeTags(replacement.Tags)
		recordChange(update, "name", existing.Name, replacement.Name)
		recordChange(update, "url", existing.URL, replacement.URL)
		recordChange(update, "description", existing.Description, replacement.Description)
		recordChange(update, "suffix", existing.Suffix, replacement.Suffix)
		recordChange(update, "tags", strings.Join(existing.Tags, ", "), strings.Join(replacement.Tags, ", "))
		c.apps[pos] = replacement
		update.Merged = replacement.Copy()
		if len(update.Changes) == 0 {
			return nil
		}
		return update
	}

	// MergeEnrichEmpty: union tags, fill empty fields, keep curated text.
	for _, tag := range candidate.Tags {
		if tag == "" || existing.HasTag(tag) {
			continue
		}
		existing.Tags = append(existing.Tags, tag)
		update.AddedTags = append(update.AddedTags, tag)
	}

	if existing.URL == "" && candidate.URL != "" {
		recordChange(update, "url", existing.URL, candidate.URL)
		existing.URL = candidate.URL
	} else if candidate.URL != "" && existing.URL != candidate.URL {
		update.Conflicts = append(update.Conflicts, FieldChange{
			Path: "url", OldValue: existing.URL, NewValue: candidate.URL,
		})
	}

	if existing.Description == "" && candidate.Description != "" {
		recordChange(update, "description", existing.Description, candidate.Description)
		existing.Description = candidate.Description
	} else if candidate.Description != "" && existing.Description != candidate.Description {
		update.Conflicts = append(update.Conflicts, FieldChange{
			Path: "description", OldValue: existing.Description, NewValue: candidate.Description,
		})
	}

	// The suffix is decoration, not data; fill it when missing but never
	// flag a difference as a conflict.
	if existing.Suffix == "" && candidate.Suffix != "" {
		recordChange(update, "suffix", "", candidate.Suffix)
		existing.Suffix = candidate.Suffix
	}

	update.Merged = existing.Copy()
	if len(update.Changes) == 0 && len(update.AddedTags) == 0 && len(update.Conflicts) == 0 {
		return nil
	}
	return update
}

// recordChange appends a field change when the value actually differs.
func recordChange(update *AppUpdate, path, oldValue, newValue string) {
	if oldValue == newValue {
		return
	}
	update.Changes = append(update.Changes, FieldChange{Path: path, OldValue: oldValue, NewValue: newValue})
}
