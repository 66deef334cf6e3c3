package cli

import (
	"github.com/spf13/cobra"

	"github.com/aalvaropc/shelf/internal/usecase"
)

func checkoutCmd(g *globals) *cobra.Command {
	var isbn, patron string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Lend a book to a patron",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			t, err := ws.circulation.Checkout(cmd.Context(), isbn, patron)
			if err != nil {
				return err
			}
			return printTransaction(cmd.OutOrStdout(), t, ws.format)
		},
	}

	cmd.Flags().StringVar(&isbn, "isbn", "", "Book ISBN (required)")
	cmd.Flags().StringVar(&patron, "patron", "", "Patron ID (required)")
	_ = cmd.MarkFlagRequired("isbn")
	_ = cmd.MarkFlagRequired("patron")
	return cmd
}

func returnCmd(g *globals) *cobra.Command {
	var isbn, patron string

	cmd := &cobra.Command{
		Use:   "return",
		Short: "Take a borrowed book back",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			t, err := ws.circulation.Return(cmd.Context(), isbn, patron)
			if err != nil {
				return err
			}
			return printTransaction(cmd.OutOrStdout(), t, ws.format)
		},
	}

	cmd.Flags().StringVar(&isbn, "isbn", "", "Book ISBN (required)")
	cmd.Flags().StringVar(&patron, "patron", "", "Patron ID (required)")
	_ = cmd.MarkFlagRequired("isbn")
	_ = cmd.MarkFlagRequired("patron")
	return cmd
}

func loansCmd(g *globals) *cobra.Command {
	var f usecase.LoanFilter

	cmd := &cobra.Command{
		Use:   "loans",
		Short: "List active loans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			loans, err := ws.circulation.Loans(cmd.Context(), f)
			if err != nil {
				return err
			}
			return printLoans(cmd.OutOrStdout(), loans, ws.format)
		},
	}

	cmd.Flags().StringVar(&f.PatronID, "patron", "", "Only loans held by this patron")
	cmd.Flags().BoolVar(&f.OverdueOnly, "overdue", false, "Only loans past their due date")
	return cmd
}
