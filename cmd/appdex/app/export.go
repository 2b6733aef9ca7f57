package app

import (
	"github.com/spf13/cobra"

	"github.com/appdex/appdex/pkg/errors"
	"github.com/appdex/appdex/pkg/export"
)

// NewExportCommand creates the export command.
func (a *App) NewExportCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write machine-readable exports of the catalogue",
		Long: `Export parses the catalogue document and writes the applications list
and the tag occurrence counts as machine-readable files, without
touching the document itself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exportFormat, err := parseExportFormat(format)
			if err != nil {
				return err
			}

			dex, err := a.Appdex()
			if err != nil {
				return err
			}

			dir := output
			if dir == "" {
				dir = a.config.ExportDir
			}
			if dir == "" {
				dir = "."
			}

			return dex.Export(cmd.Context(), dir, exportFormat)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "export format: json, yaml (default json)")
	cmd.Flags().StringVar(&output, "output", "", "directory to write exports to (default is the export dir)")

	return cmd
}

func parseExportFormat(s string) (export.Format, error) {
	switch export.Format(s) {
	case export.FormatJSON, "":
		return export.FormatJSON, nil
	case export.FormatYAML:
		return export.FormatYAML, nil
	default:
		return "", errors.NewValidationError("format", s, "must be one of: json, yaml")
	}
}
