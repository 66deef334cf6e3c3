package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func importCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "import <seed.yaml>",
		Short: "Bulk-add books and patrons from a YAML file (duplicates are skipped)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			rep, err := ws.importer.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if ws.format == "json" {
				return writeJSON(w, map[string]any{
					"source":        rep.Source,
					"books_added":   rep.BooksAdded,
					"patrons_added": rep.PatronsAdded,
					"skipped":       rep.Skipped,
				})
			}

			fmt.Fprintf(w, "Imported %d book(s), %d patron(s) from %s\n", rep.BooksAdded, rep.PatronsAdded, rep.Source)
			for _, s := range rep.Skipped {
				fmt.Fprintf(w, "  skipped %s (already exists)\n", s)
			}
			return nil
		},
	}
}
