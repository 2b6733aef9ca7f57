package catalog

import (
	"strings"

	"github.com/appdex/appdex/pkg/logging"
)

// tagVariant tracks one observed casing of a case-insensitive tag group.
type tagVariant struct {
	form  string
	count int
	first int // global first-occurrence index across the working set
}

// NormalizeTags canonicalizes tag casing across the given applications
// and orders each application's tag list by tier. It returns the applied
// rewrite map (original form -> canonical form) for reporting.
//
// Canonical form precedence within a case-insensitive group:
//  1. any form that is not all-lowercase beats an all-lowercase form;
//  2. among non-lowercase forms, the most frequent wins, ties broken by
//     first occurrence in working-set order;
//  3. among all-lowercase forms only, the first-seen form wins.
//
// The normalizer never invents or deletes tags; it only rewrites casing,
// collapses duplicates that the rewrite produces, and reorders.
func NormalizeTags(apps []Application) map[string]string {
	groups := make(map[string][]*tagVariant)
	order := 0

	for i := range apps {
		for _, tag := range apps[i].Tags {
			key := strings.ToLower(tag)
			variants := groups[key]
			var found *tagVariant
			for _, v := range variants {
				if v.form == tag {
					found = v
					break
				}
			}
			if found == nil {
				groups[key] = append(variants, &tagVariant{form: tag, count: 1, first: order})
			} else {
				found.count++
			}
			order++
		}
	}

	rewrites := make(map[string]string)
	for _, variants := range groups {
		if len(variants) < 2 {
			continue
		}
		canonical := pickCanonical(variants)
		for _, v := range variants {
			if v.form != canonical {
				rewrites[v.form] = canonical
			}
		}
	}

	if len(rewrites) > 0 {
		logging.Debug().
			Int("rewrites", len(rewrites)).
			Msg("Normalizing tag casing")
	}

	for i := range apps {
		tags := apps[i].Tags
		for j, tag := range tags {
			if canonical, ok := rewrites[tag]; ok {
				logging.Debug().
					Str("from", tag).
					Str("to", canonical).
					Str("application", apps[i].Name).
					Msg("Rewriting tag")
				tags[j] = canonical
			}
		}
		apps[i].Tags = dedupeTags(tags)
		SortTags(apps[i].Tags)
	}

	return rewrites
}

// pickCanonical chooses the canonical form among the casing variants of
// one tag group.
func pickCanonical(variants []*tagVariant) string {
	var best *tagVariant
	for _, v := range variants {
		if isAllLower(v.form) {
			continue
		}
		if best == nil || v.count > best.count || (v.count == best.count && v.first < best.first) {
			best = v
		}
	}
	if best != nil {
		return best.form
	}

	// All forms are all-lowercase: first-seen wins.
	best = variants[0]
	for _, v := range variants[1:] {
		if v.first < best.first {
			best = v
		}
	}
	return best.form
}

// isAllLower reports whether the tag has no uppercase variant of itself,
// i.e. it equals its own lowercase folding.
func isAllLower(s string) bool {
	return s == strings.ToLower(s)
}
