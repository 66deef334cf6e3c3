package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/aalvaropc/shelf/internal/domain"
	"github.com/aalvaropc/shelf/internal/ports"
)

type AddBookInput struct {
	Title    string `validate:"required,max=300"`
	Author   string `validate:"required,max=200"`
	ISBN     string `validate:"required,max=32"`
	Quantity int    `validate:"gte=0"`
}

// Catalog manages the book collection.
type Catalog struct {
	session
}

func NewCatalog(store ports.LibraryStore, opts ...Option) *Catalog {
	return &Catalog{session: newSession(store, opts...)}
}

func (uc *Catalog) AddBook(ctx context.Context, in AddBookInput) (domain.Book, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.ISBN = strings.TrimSpace(in.ISBN)
	if err := validateInput("catalog.add_book", in); err != nil {
		return domain.Book{}, err
	}

	lib, err := uc.open(ctx)
	if err != nil {
		return domain.Book{}, err
	}

	b := domain.NewBook(in.Title, in.Author, in.ISBN, in.Quantity)
	if err := lib.AddBook(b); err != nil {
		return domain.Book{}, err
	}
	if err := uc.commit(lib); err != nil {
		return domain.Book{}, err
	}

	uc.log.Info("book.added", "isbn", b.ISBN, "title", b.Title, "quantity", b.Quantity)
	return *b, nil
}

func (uc *Catalog) RemoveBook(ctx context.Context, isbn string) (domain.Book, error) {
	lib, err := uc.open(ctx)
	if err != nil {
		return domain.Book{}, err
	}

	b, err := lib.RemoveBook(strings.TrimSpace(isbn))
	if err != nil {
		uc.log.Warn("book.remove.failed", "isbn", isbn, "err", err)
		return domain.Book{}, err
	}
	if err := uc.commit(lib); err != nil {
		return domain.Book{}, err
	}

	uc.log.Info("book.removed", "isbn", b.ISBN)
	return *b, nil
}

// SetQuantity overwrites the on-hand count for a book.
func (uc *Catalog) SetQuantity(ctx context.Context, isbn string, n int) (domain.Book, error) {
	if n < 0 {
		return domain.Book{}, &domain.OpError{
			Op:   "catalog.set_quantity",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("quantity must be >= 0: %w", domain.ErrInvalidInput),
		}
	}

	lib, err := uc.open(ctx)
	if err != nil {
		return domain.Book{}, err
	}

	b, ok := lib.FindBook(strings.TrimSpace(isbn))
	if !ok {
		return domain.Book{}, bookNotFound("catalog.set_quantity", isbn)
	}
	prev := b.Quantity
	b.SetQuantity(n)
	if err := uc.commit(lib); err != nil {
		return domain.Book{}, err
	}

	uc.log.Info("book.quantity.set", "isbn", b.ISBN, "from", prev, "to", n)
	return *b, nil
}

func (uc *Catalog) ListBooks(ctx context.Context) ([]domain.Book, error) {
	lib, err := uc.open(ctx)
	if err != nil {
		return nil, err
	}
	return copyBooks(lib.Books()), nil
}

func (uc *Catalog) SearchBooks(ctx context.Context, query string) ([]domain.Book, error) {
	lib, err := uc.open(ctx)
	if err != nil {
		return nil, err
	}
	return copyBooks(lib.SearchBooksByTitle(strings.TrimSpace(query))), nil
}

// BookDetails is a book plus who currently holds copies of it.
type BookDetails struct {
	Book    domain.Book
	Holders []domain.Patron
}

func (uc *Catalog) Book(ctx context.Context, isbn string) (BookDetails, error) {
	lib, err := uc.open(ctx)
	if err != nil {
		return BookDetails{}, err
	}

	isbn = strings.TrimSpace(isbn)
	b, ok := lib.FindBook(isbn)
	if !ok {
		return BookDetails{}, bookNotFound("catalog.book", isbn)
	}

	out := BookDetails{Book: *b, Holders: []domain.Patron{}}
	for _, p := range lib.Patrons() {
		if p.HasBorrowed(isbn) {
			out.Holders = append(out.Holders, *p)
		}
	}
	return out, nil
}

func copyBooks(in []*domain.Book) []domain.Book {
	out := make([]domain.Book, 0, len(in))
	for _, b := range in {
		out = append(out, *b)
	}
	return out
}

func bookNotFound(op, isbn string) error {
	return &domain.OpError{
		Op:     op,
		Kind:   domain.KindNotFound,
		Entity: domain.EntityBook,
		Err:    fmt.Errorf("book isbn %s: %w", isbn, domain.ErrNotFound),
	}
}
