package cli

import (
	"github.com/spf13/cobra"

	"github.com/aalvaropc/shelf/internal/usecase"
)

func bookCmd(g *globals) *cobra.Command {
	c := &cobra.Command{
		Use:   "book",
		Short: "Manage the book catalog",
	}

	c.AddCommand(
		bookAddCmd(g),
		bookRemoveCmd(g),
		bookListCmd(g),
		bookShowCmd(g),
		bookSetQuantityCmd(g),
		bookSearchCmd(g),
	)
	return c
}

func bookAddCmd(g *globals) *cobra.Command {
	var in usecase.AddBookInput
	var quantity string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := usecase.ParseQuantity(quantity)
			if err != nil {
				return err
			}
			in.Quantity = n

			ws, err := loadWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			b, err := ws.catalog.AddBook(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printBook(cmd.OutOrStdout(), usecase.BookDetails{Book: b}, ws.format)
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Book title (required)")
	cmd.Flags().StringVar(&in.Author, "author", "", "Author (required)")
	cmd.Flags().StringVar(&in.ISBN, "isbn", "", "ISBN (required, unique)")
	cmd.Flags().StringVarP(&quantity, "quantity", "q", "1", "Copies on hand")

	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("author")
	_ = cmd.MarkFlagRequired("isbn")
	return cmd
}

func bookRemoveCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <isbn>",
		Short: "Remove a book from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			b, err := ws.catalog.RemoveBook(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printBook(cmd.OutOrStdout(), usecase.BookDetails{Book: b}, ws.format)
		},
	}
}

func bookListCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all books",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			books, err := ws.catalog.ListBooks(cmd.Context())
			if err != nil {
				return err
			}
			return printBooks(cmd.OutOrStdout(), books, ws.format)
		},
	}
}

func bookShowCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "show <isbn>",
		Short: "Show one book and who holds it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			d, err := ws.catalog.Book(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printBook(cmd.OutOrStdout(), d, ws.format)
		},
	}
}

func bookSetQuantityCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "set-quantity <isbn> <n>",
		Short: "Overwrite the number of copies on hand",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := usecase.ParseQuantity(args[1])
			if err != nil {
				return err
			}

			ws, err := loadWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			b, err := ws.catalog.SetQuantity(cmd.Context(), args[0], n)
			if err != nil {
				return err
			}
			return printBook(cmd.OutOrStdout(), usecase.BookDetails{Book: b}, ws.format)
		},
	}
}

func bookSearchCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "search <title>",
		Short: "Case-insensitive title search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(g)
			if err != nil {
				return err
			}
			defer ws.close()

			books, err := ws.catalog.SearchBooks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printBooks(cmd.OutOrStdout(), books, ws.format)
		},
	}
}
