package catalog

import (
	"sort"
	"strings"
)

// TagTier is the ordering category of a tag within an application's
// tag list. Lower tiers render first.
type TagTier int

// Tag tiers, in rendering order.
const (
	// TierGeneral holds plain descriptive tags.
	TierGeneral TagTier = iota
	// TierCommandLine holds "command line: <tool>" alternative tags.
	TierCommandLine
	// TierSource holds "source: <language>" tags.
	TierSource
)

// Tag line prefixes that determine the tier. Matching is case-insensitive.
const (
	commandLinePrefix = "command line: "
	sourcePrefix      = "source: "
)

// Tier returns the ordering tier for a tag.
func Tier(tag string) TagTier {
	lower := strings.ToLower(tag)
	switch {
	case strings.HasPrefix(lower, sourcePrefix):
		return TierSource
	case strings.HasPrefix(lower, commandLinePrefix):
		return TierCommandLine
	default:
		return TierGeneral
	}
}

// SortTags orders a tag list in place: tier 0 before tier 1 before
// tier 2, alphabetically (case-insensitive) inside each tier. The sort
// is stable, so equal-folding tags keep their relative order.
func SortTags(tags []string) {
	sort.SliceStable(tags, func(i, j int) bool {
		ti, tj := Tier(tags[i]), Tier(tags[j])
		if ti != tj {
			return ti < tj
		}
		return strings.ToLower(tags[i]) < strings.ToLower(tags[j])
	})
}

// TagCount pairs a canonical tag with its occurrence count across the
// working set.
type TagCount struct {
	Tag   string `json:"tag" yaml:"tag"`
	Count int    `json:"count" yaml:"count"`
}

// dedupeTags removes case-insensitive duplicates, keeping the first
// occurrence of each tag and dropping empty entries.
func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := tags[:0]
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}
