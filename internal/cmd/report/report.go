// Package report renders merge changesets as markdown documents.
package report

import (
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/appdex/appdex/pkg/catalog"
)

// Write renders a merge changeset as a markdown report. The report is
// meant for review: it lists every addition, every field-level update,
// and every rejected batch entry with its reason.
func Write(w io.Writer, changes *catalog.Changeset) error {
	doc := md.NewMarkdown(w).
		H1("Merge Report").
		LF().
		PlainText(changes.String()).
		LF()

	if len(changes.Added) > 0 {
		doc.H2("Added").LF()
		items := make([]string, 0, len(changes.Added))
		for _, app := range changes.Added {
			items = append(items, addedItem(app))
		}
		doc.BulletList(items...).LF()
	}

	if len(changes.Updated) > 0 {
		doc.H2("Updated").LF()
		rows := make([][]string, 0, len(changes.Updated))
		for _, update := range changes.Updated {
			for _, change := range update.Changes {
				rows = append(rows, []string{
					update.Name, change.Path,
					cell(change.OldValue), cell(change.NewValue),
				})
			}
			if len(update.AddedTags) > 0 {
				rows = append(rows, []string{
					update.Name, "tags", "",
					"+ " + strings.Join(update.AddedTags, ", "),
				})
			}
		}
		doc.Table(md.TableSet{
			Header: []string{"Application", "Field", "Before", "After"},
			Rows:   rows,
		}).LF()

		if rows := conflictRows(changes.Updated); len(rows) > 0 {
			doc.H2("Conflicts").LF().
				PlainText("Differing values kept from the existing catalogue:").LF().
				Table(md.TableSet{
					Header: []string{"Application", "Field", "Kept", "Incoming"},
					Rows:   rows,
				}).LF()
		}
	}

	if len(changes.Rejected) > 0 {
		doc.H2("Rejected").LF()
		rows := make([][]string, 0, len(changes.Rejected))
		for _, rejected := range changes.Rejected {
			rows = append(rows, []string{
				fmt.Sprintf("%d", rejected.Index),
				displayName(rejected.App),
				rejected.Err.Error(),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"Batch Index", "Application", "Reason"},
			Rows:   rows,
		}).LF()
	}

	return doc.Build()
}

func addedItem(app catalog.Application) string {
	item := md.Bold(app.Name)
	if app.URL != "" {
		item += " " + md.Link("link", app.URL)
	}
	if len(app.Tags) > 0 {
		item += " " + md.Code(strings.Join(app.Tags, ", "))
	}
	return item
}

func conflictRows(updates []catalog.AppUpdate) [][]string {
	var rows [][]string
	for _, update := range updates {
		for _, conflict := range update.Conflicts {
			rows = append(rows, []string{
				update.Name, conflict.Path,
				cell(conflict.OldValue), cell(conflict.NewValue),
			})
		}
	}
	return rows
}

// cell keeps table cells on a single line.
func cell(value string) string {
	if value == "" {
		return "(empty)"
	}
	return strings.ReplaceAll(value, "\n", " ")
}

func displayName(app catalog.Application) string {
	name := strings.TrimSpace(app.Name)
	if name == "" {
		return "(unnamed)"
	}
	return name
}
