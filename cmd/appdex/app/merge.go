package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/appdex/appdex/internal/cmd/report"
	"github.com/appdex/appdex/pkg/catalog"
	"github.com/appdex/appdex/pkg/errors"
	"github.com/appdex/appdex/pkg/export"
)

// NewMergeCommand creates the merge command.
func (a *App) NewMergeCommand() *cobra.Command {
	var (
		dryRun     bool
		overwrite  bool
		reportPath string
	)

	cmd := &cobra.Command{
		Use:   "merge <batch.json>",
		Short: "Merge a batch of applications into the catalogue",
		Long: `Merge reads a JSON batch of candidate applications and reconciles it
with the catalogue document. New entries are inserted in sorted
position; entries matching an existing application by name or URL
enrich it: tags are unioned and empty fields are filled, while existing
non-empty values are kept.

Entries that fail validation are skipped; the rest of the batch is
still applied. With --dry-run the resulting changes are reported but
nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batchPath := args[0]

			batch, err := export.LoadBatch(batchPath)
			if err != nil {
				return err
			}

			dex, err := a.Appdex()
			if err != nil {
				return err
			}

			var opts []catalog.MergeOption
			if overwrite {
				opts = append(opts, catalog.WithStrategy(catalog.MergeReplaceAll))
			}

			changes, err := dex.Merge(cmd.Context(), batch, dryRun, opts...)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), changes.String())

			if reportPath != "" {
				if err := writeReport(reportPath, changes); err != nil {
					return err
				}
			}

			if len(changes.Rejected) > 0 {
				return errors.NewMergeError(batchPath, len(changes.Rejected),
					errors.Join(changes.Errors()...))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing anything")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace matched entries with batch values instead of enriching them")
	cmd.Flags().StringVar(&reportPath, "report", "", "write a markdown merge report to this path")

	return cmd
}

func writeReport(path string, changes *catalog.Changeset) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	if err := report.Write(f, changes); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
