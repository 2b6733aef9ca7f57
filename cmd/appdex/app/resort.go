package app

import (
	"github.com/spf13/cobra"
)

// NewResortCommand creates the resort command.
func (a *App) NewResortCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resort",
		Short: "Sort entries and canonicalize tags in the catalogue document",
		Long: `Resort parses the catalogue document, sorts the application entries
case-insensitively by name, unifies tag casing, orders tags within each
entry, regenerates the tag index section, and writes everything back
along with the JSON exports.

Running resort on an already sorted document is a no-op: the output is
byte-identical to the input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dex, err := a.Appdex()
			if err != nil {
				return err
			}
			return dex.Resort(cmd.Context())
		},
	}
}
