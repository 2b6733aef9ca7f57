// Package appdex maintains a curated catalogue of applications stored
// in a markdown document. It parses the document into an entity model,
// canonicalizes tag casing and ordering, sorts and merges entries, and
// regenerates the document together with machine-readable exports.
//
// Example usage:
//
//	dex, err := appdex.New(appdex.WithDocument("README.md"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := dex.Resort(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
package appdex

import (
	"context"

	"github.com/appdex/appdex/pkg/catalog"
	"github.com/appdex/appdex/pkg/document"
	"github.com/appdex/appdex/pkg/errors"
	"github.com/appdex/appdex/pkg/export"
	"github.com/appdex/appdex/pkg/logging"
)

// Appdex runs the catalogue pipeline against a document and its export
// directory. A single instance serves a single run; there is no shared
// state between runs beyond the files themselves.
type Appdex struct {
	config *config
}

// New creates a new Appdex instance with the given options.
func New(opts ...Option) (*Appdex, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return &Appdex{config: cfg}, nil
}

// DocumentPath returns the path of the catalogue document.
func (a *Appdex) DocumentPath() string {
	return a.config.documentPath
}

// Load reads and parses the catalogue document.
func (a *Appdex) Load(_ context.Context) (*document.Document, error) {
	data, err := a.config.readFile(a.config.documentPath)
	if err != nil {
		return nil, errors.WrapIO("read", a.config.documentPath, err)
	}

	doc, err := document.Parse(string(data))
	if err != nil {
		var malformed *errors.MalformedDocumentError
		if errors.As(err, &malformed) {
			malformed.Path = a.config.documentPath
		}
		return nil, err
	}
	return doc, nil
}

// Resort runs the default maintenance pass: parse, canonicalize tags,
// sort, and persist the document and exports. Running it twice in
// succession produces byte-identical output on the second run.
func (a *Appdex) Resort(ctx context.Context) error {
	doc, err := a.Load(ctx)
	if err != nil {
		return err
	}

	cat := doc.Catalog()
	rewrites := cat.Resort()
	doc.Apply(cat)

	logging.Info().
		Int("applications", cat.Len()).
		Int("tag_rewrites", len(rewrites)).
		Msg("Resorted catalogue")

	return a.persist(doc, cat)
}

// Merge reconciles a batch of candidate applications into the working
// set. With dry run enabled, the same computation runs on a copy and
// nothing is written; the returned changeset reports what would change.
// Per-entry validation failures are collected in the changeset and do
// not abort the run.
func (a *Appdex) Merge(ctx context.Context, batch []catalog.Application, dryRun bool, opts ...catalog.MergeOption) (*catalog.Changeset, error) {
	doc, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}

	cat := doc.Catalog()
	if dryRun {
		changes := cat.Copy().Merge(batch, opts...)
		logging.Info().Str("changes", changes.String()).Msg("Dry run, nothing written")
		return changes, nil
	}

	changes := cat.Merge(batch, opts...)
	doc.Apply(cat)

	if err := a.persist(doc, cat); err != nil {
		return changes, err
	}
	return changes, nil
}

// Export writes only the machine-readable side artifacts for the
// current document, without touching the document itself. The working
// set is normalized in memory first so the artifacts never carry
// divergent tag casings from a hand-edited document.
func (a *Appdex) Export(ctx context.Context, dir string, format export.Format) error {
	doc, err := a.Load(ctx)
	if err != nil {
		return err
	}

	cat := doc.Catalog()
	cat.Resort()
	if _, err := export.WriteApplications(dir, cat.Applications(), format); err != nil {
		return err
	}
	_, err = export.WriteTags(dir, cat.TagCounts(), format)
	return err
}

// persist writes the rendered document and both JSON exports. Nothing
// is written unless the whole pipeline succeeded; each file is replaced
// atomically.
func (a *Appdex) persist(doc *document.Document, cat *catalog.Catalog) error {
	if err := export.WriteDocument(a.config.documentPath, document.Render(doc)); err != nil {
		return err
	}
	if _, err := export.WriteApplications(a.config.exportDir, cat.Applications(), export.FormatJSON); err != nil {
		return err
	}
	_, err := export.WriteTags(a.config.exportDir, cat.TagCounts(), export.FormatJSON)
	return err
}
