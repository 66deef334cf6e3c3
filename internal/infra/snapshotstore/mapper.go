package snapshotstore

import (
	"fmt"
	"strings"
	"time"

	"github.com/aalvaropc/shelf/internal/domain"
)

// Accepted due_date layouts, newest first. The last one is the space-separated form with microseconds.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func toDocument(lib *domain.Library) document {
	books := make([]bookDTO, 0, len(lib.Books()))
	for _, b := range lib.Books() {
		books = append(books, bookToDTO(b))
	}

	patrons := make([]patronDTO, 0, len(lib.Patrons()))
	for _, p := range lib.Patrons() {
		patrons = append(patrons, patronToDTO(lib, p))
	}

	txs := make([]transactionDTO, 0, len(lib.Transactions()))
	for _, t := range lib.Transactions() {
		txs = append(txs, transactionToDTO(lib, t))
	}

	return document{Books: &books, Patrons: &patrons, Transactions: &txs}
}

func bookToDTO(b *domain.Book) bookDTO {
	return bookDTO{
		Title:    b.Title,
		Author:   b.Author,
		ISBN:     b.ISBN,
		Quantity: flexInt(b.Quantity),
	}
}

// lookupBook falls back to an ISBN-only mapping for books no longer in the catalog.
func lookupBook(lib *domain.Library, isbn string) bookDTO {
	if b, ok := lib.FindBook(isbn); ok {
		return bookToDTO(b)
	}
	return bookDTO{ISBN: isbn}
}

func patronToDTO(lib *domain.Library, p *domain.Patron) patronDTO {
	borrowed := make([]bookDTO, 0, len(p.Borrowed))
	for _, isbn := range p.Borrowed {
		borrowed = append(borrowed, lookupBook(lib, isbn))
	}
	return patronDTO{
		Name:          p.Name,
		ID:            p.ID,
		ContactInfo:   p.Contact,
		BorrowedBooks: borrowed,
	}
}

func transactionToDTO(lib *domain.Library, t *domain.Transaction) transactionDTO {
	patron := patronDTO{ID: t.PatronID, BorrowedBooks: []bookDTO{}}
	if p, ok := lib.FindPatron(t.PatronID); ok {
		patron = patronToDTO(lib, p)
	}
	return transactionDTO{
		ID:           t.ID,
		Book:         lookupBook(lib, t.ISBN),
		Patron:       patron,
		Status:       string(t.Status),
		CheckedOutAt: formatTime(t.CheckedOutAt),
		DueDate:      formatTime(t.DueDate),
		ReturnedAt:   formatTime(t.ReturnedAt),
	}
}

func fromDocument(doc document) ([]*domain.Book, []*domain.Patron, []*domain.Transaction, error) {
	if doc.Books == nil {
		return nil, nil, nil, missingKey("books")
	}
	if doc.Patrons == nil {
		return nil, nil, nil, missingKey("patrons")
	}
	if doc.Transactions == nil {
		return nil, nil, nil, missingKey("transactions")
	}

	books := make([]*domain.Book, 0, len(*doc.Books))
	for i, b := range *doc.Books {
		if strings.TrimSpace(b.ISBN) == "" {
			return nil, nil, nil, fmt.Errorf("books[%d].isbn is required: %w", i, domain.ErrInvalidData)
		}
		books = append(books, domain.NewBook(b.Title, b.Author, b.ISBN, int(b.Quantity)))
	}

	patrons := make([]*domain.Patron, 0, len(*doc.Patrons))
	for i, p := range *doc.Patrons {
		if strings.TrimSpace(p.ID) == "" {
			return nil, nil, nil, fmt.Errorf("patrons[%d].id is required: %w", i, domain.ErrInvalidData)
		}
		patron := domain.NewPatron(p.Name, p.ID, p.ContactInfo)
		for _, b := range p.BorrowedBooks {
			patron.Borrow(b.ISBN)
		}
		patrons = append(patrons, patron)
	}

	txs := make([]*domain.Transaction, 0, len(*doc.Transactions))
	for i, t := range *doc.Transactions {
		tx, err := transactionFromDTO(i, t)
		if err != nil {
			return nil, nil, nil, err
		}
		txs = append(txs, tx)
	}

	return books, patrons, txs, nil
}

func transactionFromDTO(i int, t transactionDTO) (*domain.Transaction, error) {
	field := func(name string) string { return fmt.Sprintf("transactions[%d].%s", i, name) }

	id := strings.TrimSpace(t.ID)
	if id == "" {
		id = fmt.Sprintf("legacy-%d", i+1)
	}
	tx := domain.NewTransaction(id, t.Book.ISBN, t.Patron.ID)

	var err error
	if tx.CheckedOutAt, err = parseTime(t.CheckedOutAt); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", field("checked_out_at"), err, domain.ErrInvalidData)
	}
	if tx.DueDate, err = parseTime(t.DueDate); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", field("due_date"), err, domain.ErrInvalidData)
	}
	if tx.ReturnedAt, err = parseTime(t.ReturnedAt); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", field("returned_at"), err, domain.ErrInvalidData)
	}

	switch domain.TransactionStatus(t.Status) {
	case domain.StatusPending, domain.StatusActive, domain.StatusClosed:
		tx.Status = domain.TransactionStatus(t.Status)
	case "":
		tx.Status = inferStatus(tx)
	default:
		return nil, fmt.Errorf("%s: unknown status %q: %w", field("status"), t.Status, domain.ErrInvalidData)
	}
	return tx, nil
}

// inferStatus covers files written before the status field existed, where the due
// date was the only lifecycle marker.
func inferStatus(t *domain.Transaction) domain.TransactionStatus {
	switch {
	case t.ReturnedAt != nil:
		return domain.StatusClosed
	case t.DueDate != nil:
		return domain.StatusActive
	default:
		return domain.StatusPending
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "None" || s == "null" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized time %q", s)
}

func missingKey(key string) error {
	return fmt.Errorf("missing top-level key %q: %w", key, domain.ErrInvalidData)
}
