package cli

import (
	"github.com/spf13/cobra"

	"github.com/aalvaropc/shelf/internal/usecase"
)

func patronCmd(g *globals) *cobra.Command {
	c := &cobra.Command{
		Use:   "patron",
		Short: "Manage library patrons",
	}

	c.AddCommand(
		patronRegisterCmd(g),
		patronRemoveCmd(g),
		patronListCmd(g),
		patronShowCmd(g),
	)
	return c
}

func patronRegisterCmd(g *globals) *cobra.Command {
	var in usecase.RegisterPatronInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new patron",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			p, err := ws.registry.RegisterPatron(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printPatron(cmd.OutOrStdout(), usecase.PatronDetails{Patron: p}, ws.format)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Patron name (required)")
	cmd.Flags().StringVar(&in.ID, "id", "", "Patron ID (generated when omitted)")
	cmd.Flags().StringVar(&in.Contact, "contact", "", "Contact info")

	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func patronRemoveCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a patron",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			p, err := ws.registry.RemovePatron(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printPatron(cmd.OutOrStdout(), usecase.PatronDetails{Patron: p}, ws.format)
		},
	}
}

func patronListCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List patrons",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			patrons, err := ws.registry.ListPatrons(cmd.Context())
			if err != nil {
				return err
			}
			return printPatrons(cmd.OutOrStdout(), patrons, ws.format)
		},
	}
}

func patronShowCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a patron and the books they hold",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			d, err := ws.registry.Patron(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printPatron(cmd.OutOrStdout(), d, ws.format)
		},
	}
}
