package catalog

import (
	"sort"
	"strings"
)

// Catalog holds the in-memory working set of applications for one run.
// It is not safe for concurrent use; the pipeline is single-threaded
// and batch-oriented by design.
type Catalog struct {
	apps []Application
}

// New creates a catalog from the given applications. The slice is taken
// over by the catalog.
func New(apps ...Application) *Catalog {
	return &Catalog{apps: apps}
}

// Applications returns the working set in its current order. The slice
// is owned by the catalog; callers that need to retain it across
// mutations should copy it.
func (c *Catalog) Applications() []Application {
	return c.apps
}

// Len returns the number of applications in the working set.
func (c *Catalog) Len() int {
	return len(c.apps)
}

// Add appends an application to the working set.
func (c *Catalog) Add(app Application) {
	c.apps = append(c.apps, app)
}

// Find returns the index of the first entry identifying the same
// application, or -1 if none matches.
func (c *Catalog) Find(app *Application) int {
	for i := range c.apps {
		if c.apps[i].SameAs(app) {
			return i
		}
	}
	return -1
}

// Sort orders the working set by name, case-insensitive. The sort is
// stable: entries with equal-folding names keep their relative order.
func (c *Catalog) Sort() {
	sort.SliceStable(c.apps, func(i, j int) bool {
		return strings.ToLower(c.apps[i].Name) < strings.ToLower(c.apps[j].Name)
	})
}

// Resort is the default maintenance pass: sort the applications, then
// canonicalize tag casing and ordering. Running it twice on the same
// working set is a no-op the second time.
func (c *Catalog) Resort() map[string]string {
	c.Sort()
	return NormalizeTags(c.apps)
}

// TagCounts derives the tag index: one entry per canonical tag with the
// number of applications carrying it, sorted case-insensitively. It is
// recomputed from the working set on every call and never cached.
func (c *Catalog) TagCounts() []TagCount {
	counts := make(map[string]int)
	for i := range c.apps {
		for _, tag := range c.apps[i].Tags {
			counts[tag]++
		}
	}

	tags := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		tags = append(tags, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		li, lj := strings.ToLower(tags[i].Tag), strings.ToLower(tags[j].Tag)
		if li != lj {
			return li < lj
		}
		return tags[i].Tag < tags[j].Tag
	})
	return tags
}

// Copy returns a deep copy of the catalog, for dry-run computations
// that must not touch the live working set.
func (c *Catalog) Copy() *Catalog {
	apps := make([]Application, len(c.apps))
	for i := range c.apps {
		apps[i] = c.apps[i].Copy()
	}
	return New(apps...)
}
