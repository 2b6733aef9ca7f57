package app

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appdex/appdex/internal/cmd/output"
	"github.com/appdex/appdex/pkg/catalog"
)

// NewListCommand creates the list command.
func (a *App) NewListCommand() *cobra.Command {
	var tagsOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogue applications or tag counts",
		Long: `List prints the applications from the catalogue document, or with
--tags the tag occurrence counts. The output format follows --format,
defaulting to a table on a terminal and JSON when piped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dex, err := a.Appdex()
			if err != nil {
				return err
			}

			doc, err := dex.Load(cmd.Context())
			if err != nil {
				return err
			}

			cat := doc.Catalog()
			cat.Resort()
			format := output.DetectFormat(a.config.Format)
			formatter := output.NewFormatter(format)

			if tagsOnly {
				return formatter.Format(cmd.OutOrStdout(), tagData(cat.TagCounts(), format))
			}
			return formatter.Format(cmd.OutOrStdout(), appData(cat.Applications(), format))
		},
	}

	cmd.Flags().BoolVar(&tagsOnly, "tags", false, "list tag occurrence counts instead of applications")

	return cmd
}

// appData shapes applications for the chosen format. Structured formats
// get the entries as-is; tables get one row per application.
func appData(apps []catalog.Application, format output.Format) any {
	if format == output.FormatJSON || format == output.FormatYAML {
		return apps
	}

	rows := make([][]string, 0, len(apps))
	for _, app := range apps {
		row := []string{app.Name, strings.Join(app.Tags, ", ")}
		if format == output.FormatWide {
			row = append(row, app.URL, app.Description)
		}
		rows = append(rows, row)
	}

	headers := []string{"Name", "Tags"}
	if format == output.FormatWide {
		headers = append(headers, "URL", "Description")
	}
	return output.Data{Headers: headers, Rows: rows}
}

func tagData(counts []catalog.TagCount, format output.Format) any {
	if format == output.FormatJSON || format == output.FormatYAML {
		return counts
	}

	rows := make([][]string, 0, len(counts))
	for _, tc := range counts {
		rows = append(rows, []string{tc.Tag, strconv.Itoa(tc.Count)})
	}
	return output.Data{Headers: []string{"Tag", "Count"}, Rows: rows}
}
