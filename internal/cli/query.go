package cli

import (
	"github.com/spf13/cobra"
)

func queryCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "query <jsonpath>",
		Short:   "Evaluate a JSONPath expression over the library file",
		Example: `  shelf query '$.books[?(@.quantity == 0)].title'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			v, err := ws.query.Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), v, ws.format)
		},
	}
}
