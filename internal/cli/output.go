package cli

import (
	"fmt"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/aalvaropc/shelf/internal/domain"
	"github.com/aalvaropc/shelf/internal/usecase"
)

var jsonOut = jsoniter.ConfigCompatibleWithStandardLibrary

type bookJSON struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	ISBN     string `json:"isbn"`
	Quantity int    `json:"quantity"`
}

type patronJSON struct {
	Name     string   `json:"name"`
	ID       string   `json:"id"`
	Contact  string   `json:"contact_info"`
	Borrowed []string `json:"borrowed_isbns"`
}

type transactionJSON struct {
	ID           string     `json:"id"`
	ISBN         string     `json:"isbn"`
	PatronID     string     `json:"patron_id"`
	Status       string     `json:"status"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	ReturnedAt   *time.Time `json:"returned_at,omitempty"`
}

type loanJSON struct {
	transactionJSON
	Title      string `json:"title"`
	PatronName string `json:"patron_name"`
	Overdue    bool   `json:"overdue"`
}

func toBookJSON(b domain.Book) bookJSON {
	return bookJSON{Title: b.Title, Author: b.Author, ISBN: b.ISBN, Quantity: b.Quantity}
}

func toPatronJSON(p domain.Patron) patronJSON {
	borrowed := append([]string{}, p.Borrowed...)
	return patronJSON{Name: p.Name, ID: p.ID, Contact: p.Contact, Borrowed: borrowed}
}

func toTransactionJSON(t domain.Transaction) transactionJSON {
	return transactionJSON{
		ID:           t.ID,
		ISBN:         t.ISBN,
		PatronID:     t.PatronID,
		Status:       string(t.Status),
		CheckedOutAt: t.CheckedOutAt,
		DueDate:      t.DueDate,
		ReturnedAt:   t.ReturnedAt,
	}
}

func toLoanJSON(v usecase.LoanView) loanJSON {
	return loanJSON{
		transactionJSON: toTransactionJSON(v.Transaction),
		Title:           v.Title,
		PatronName:      v.PatronName,
		Overdue:         v.Overdue,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := jsonOut.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printBooks(w io.Writer, books []domain.Book, format string) error {
	if format == "json" {
		out := make([]bookJSON, 0, len(books))
		for _, b := range books {
			out = append(out, toBookJSON(b))
		}
		return writeJSON(w, out)
	}

	if len(books) == 0 {
		fmt.Fprintln(w, "(no books)")
		return nil
	}
	for _, b := range books {
		fmt.Fprintf(w, "- %s  %q by %s  (qty %d)\n", b.ISBN, b.Title, b.Author, b.Quantity)
	}
	return nil
}

func printBook(w io.Writer, d usecase.BookDetails, format string) error {
	if format == "json" {
		holders := make([]string, 0, len(d.Holders))
		for _, p := range d.Holders {
			holders = append(holders, p.ID)
		}
		return writeJSON(w, map[string]any{
			"book":    toBookJSON(d.Book),
			"holders": holders,
		})
	}

	b := d.Book
	fmt.Fprintf(w, "Title:    %s\n", b.Title)
	fmt.Fprintf(w, "Author:   %s\n", b.Author)
	fmt.Fprintf(w, "ISBN:     %s\n", b.ISBN)
	fmt.Fprintf(w, "Quantity: %d\n", b.Quantity)
	if len(d.Holders) > 0 {
		fmt.Fprintln(w, "Borrowed by:")
		for _, p := range d.Holders {
			fmt.Fprintf(w, "  - %s (%s)\n", p.Name, p.ID)
		}
	}
	return nil
}

func printPatrons(w io.Writer, patrons []domain.Patron, format string) error {
	if format == "json" {
		out := make([]patronJSON, 0, len(patrons))
		for _, p := range patrons {
			out = append(out, toPatronJSON(p))
		}
		return writeJSON(w, out)
	}

	if len(patrons) == 0 {
		fmt.Fprintln(w, "(no patrons)")
		return nil
	}
	for _, p := range patrons {
		fmt.Fprintf(w, "- %s  %s  <%s>  borrowed: %d\n", p.ID, p.Name, p.Contact, len(p.Borrowed))
	}
	return nil
}

func printPatron(w io.Writer, d usecase.PatronDetails, format string) error {
	if format == "json" {
		borrowed := make([]bookJSON, 0, len(d.Borrowed))
		for _, b := range d.Borrowed {
			borrowed = append(borrowed, toBookJSON(b))
		}
		loans := make([]loanJSON, 0, len(d.Loans))
		for _, l := range d.Loans {
			loans = append(loans, toLoanJSON(l))
		}
		return writeJSON(w, map[string]any{
			"patron":   toPatronJSON(d.Patron),
			"borrowed": borrowed,
			"loans":    loans,
		})
	}

	p := d.Patron
	fmt.Fprintf(w, "Name:    %s\n", p.Name)
	fmt.Fprintf(w, "ID:      %s\n", p.ID)
	fmt.Fprintf(w, "Contact: %s\n", p.Contact)
	if len(d.Borrowed) == 0 {
		fmt.Fprintln(w, "Borrowed: none")
		return nil
	}
	fmt.Fprintln(w, "Borrowed:")
	for _, b := range d.Borrowed {
		title := b.Title
		if title == "" {
			title = "(not in catalog)"
		}
		fmt.Fprintf(w, "  - %s  %s\n", b.ISBN, title)
	}
	return nil
}

func printTransaction(w io.Writer, t *domain.Transaction, format string) error {
	if t == nil {
		return nil
	}
	if format == "json" {
		return writeJSON(w, toTransactionJSON(*t))
	}

	fmt.Fprintf(w, "Transaction: %s\n", t.ID)
	fmt.Fprintf(w, "Book:        %s\n", t.ISBN)
	fmt.Fprintf(w, "Patron:      %s\n", t.PatronID)
	fmt.Fprintf(w, "Status:      %s\n", t.Status)
	if t.DueDate != nil {
		fmt.Fprintf(w, "Due:         %s\n", t.DueDate.Format(time.DateOnly))
	}
	if t.ReturnedAt != nil {
		fmt.Fprintf(w, "Returned:    %s\n", t.ReturnedAt.Format(time.RFC3339))
	}
	return nil
}

func printLoans(w io.Writer, loans []usecase.LoanView, format string) error {
	if format == "json" {
		out := make([]loanJSON, 0, len(loans))
		for _, l := range loans {
			out = append(out, toLoanJSON(l))
		}
		return writeJSON(w, out)
	}

	if len(loans) == 0 {
		fmt.Fprintln(w, "(no active loans)")
		return nil
	}
	for _, l := range loans {
		mark := " "
		if l.Overdue {
			mark = "!"
		}
		due := "-"
		if l.Transaction.DueDate != nil {
			due = l.Transaction.DueDate.Format(time.DateOnly)
		}
		fmt.Fprintf(w, "%s %s  %q -> %s (%s)  due %s\n",
			mark, l.Transaction.ID, l.Title, l.PatronName, l.Transaction.PatronID, due)
	}
	return nil
}

func printValue(w io.Writer, v any, format string) error {
	if format == "json" {
		return writeJSON(w, v)
	}
	switch x := v.(type) {
	case []any:
		for _, item := range x {
			if err := printScalarOrJSON(w, item); err != nil {
				return err
			}
		}
		return nil
	default:
		return printScalarOrJSON(w, x)
	}
}

func printScalarOrJSON(w io.Writer, v any) error {
	switch x := v.(type) {
	case string:
		_, err := fmt.Fprintln(w, x)
		return err
	case map[string]any, []any:
		b, err := jsonOut.Marshal(x)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	default:
		_, err := fmt.Fprintln(w, x)
		return err
	}
}
