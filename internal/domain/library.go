package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Library owns the canonical catalog, patron registry and transaction log.
// Lookups are linear scans keyed by ISBN and patron ID.
type Library struct {
	books        []*Book
	patrons      []*Patron
	transactions []*Transaction

	now   func() time.Time
	loan  time.Duration
	newID func() (string, error)
}

// LibraryOption configures Library.
type LibraryOption func(*Library)

// WithNow overrides the clock (useful for tests).
func WithNow(now func() time.Time) LibraryOption {
	return func(l *Library) {
		if now != nil {
			l.now = now
		}
	}
}

// WithLoanPeriod sets how far in the future due dates land.
func WithLoanPeriod(d time.Duration) LibraryOption {
	return func(l *Library) {
		if d > 0 {
			l.loan = d
		}
	}
}

// WithIDGenerator overrides transaction ID generation.
func WithIDGenerator(gen func() (string, error)) LibraryOption {
	return func(l *Library) {
		if gen != nil {
			l.newID = gen
		}
	}
}

func NewLibrary(opts ...LibraryOption) *Library {
	l := &Library{
		books:        []*Book{},
		patrons:      []*Patron{},
		transactions: []*Transaction{},
		now:          time.Now,
		loan:         DefaultLoanPeriod,
	}
	l.newID = l.sequentialID
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RestoreLibrary rebuilds a library from persisted state. Keys are trusted as given.
func RestoreLibrary(books []*Book, patrons []*Patron, txs []*Transaction, opts ...LibraryOption) *Library {
	l := NewLibrary(opts...)
	l.books = append(l.books, books...)
	l.patrons = append(l.patrons, patrons...)
	l.transactions = append(l.transactions, txs...)
	return l
}

func (l *Library) Books() []*Book               { return l.books }
func (l *Library) Patrons() []*Patron           { return l.patrons }
func (l *Library) Transactions() []*Transaction { return l.transactions }
func (l *Library) LoanPeriod() time.Duration    { return l.loan }
func (l *Library) Now() time.Time               { return l.now() }

func (l *Library) AddBook(b *Book) error {
	if b == nil || strings.TrimSpace(b.ISBN) == "" {
		return opErr("library.add_book", KindInvalidInput, fmt.Errorf("isbn is required: %w", ErrInvalidInput))
	}
	if _, ok := l.FindBook(b.ISBN); ok {
		return entityErr("library.add_book", KindConflict, EntityBook, fmt.Errorf("book isbn %s: %w", b.ISBN, ErrConflict))
	}
	l.books = append(l.books, b)
	return nil
}

func (l *Library) RemoveBook(isbn string) (*Book, error) {
	for i, b := range l.books {
		if b.ISBN == isbn {
			l.books = append(l.books[:i], l.books[i+1:]...)
			return b, nil
		}
	}
	return nil, entityErr("library.remove_book", KindNotFound, EntityBook, fmt.Errorf("book isbn %s: %w", isbn, ErrNotFound))
}

func (l *Library) FindBook(isbn string) (*Book, bool) {
	for _, b := range l.books {
		if b.ISBN == isbn {
			return b, true
		}
	}
	return nil, false
}

func (l *Library) RegisterPatron(p *Patron) error {
	if p == nil || strings.TrimSpace(p.ID) == "" {
		return opErr("library.register_patron", KindInvalidInput, fmt.Errorf("patron id is required: %w", ErrInvalidInput))
	}
	if _, ok := l.FindPatron(p.ID); ok {
		return entityErr("library.register_patron", KindConflict, EntityPatron, fmt.Errorf("patron id %s: %w", p.ID, ErrConflict))
	}
	l.patrons = append(l.patrons, p)
	return nil
}

func (l *Library) RemovePatron(id string) (*Patron, error) {
	for i, p := range l.patrons {
		if p.ID == id {
			l.patrons = append(l.patrons[:i], l.patrons[i+1:]...)
			return p, nil
		}
	}
	return nil, entityErr("library.remove_patron", KindNotFound, EntityPatron, fmt.Errorf("patron id %s: %w", id, ErrNotFound))
}

func (l *Library) FindPatron(id string) (*Patron, bool) {
	for _, p := range l.patrons {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// SearchBooksByTitle returns every book whose title contains query, ignoring case,
// in catalog order. An empty query matches everything.
func (l *Library) SearchBooksByTitle(query string) []*Book {
	fold := cases.Fold()
	q := fold.String(query)

	out := []*Book{}
	for _, b := range l.books {
		if strings.Contains(fold.String(b.Title), q) {
			out = append(out, b)
		}
	}
	return out
}

// ProcessTransaction logs t and then checks it out. The transaction stays in the
// log even when its book or patron is unknown, in which case checkout is skipped.
func (l *Library) ProcessTransaction(t *Transaction) error {
	if t == nil {
		return opErr("library.process_transaction", KindInvalidInput, fmt.Errorf("transaction is nil: %w", ErrInvalidInput))
	}
	l.transactions = append(l.transactions, t)

	b, p, err := l.resolve("library.process_transaction", t.ISBN, t.PatronID)
	if err != nil {
		return err
	}
	return t.Checkout(b, p, l.now(), l.loan)
}

// Checkout opens a new transaction for isbn/patronID and processes it.
func (l *Library) Checkout(isbn, patronID string) (*Transaction, error) {
	id, err := l.newID()
	if err != nil {
		return nil, opErr("library.checkout", KindExecution, err)
	}
	t := NewTransaction(id, isbn, patronID)
	return t, l.ProcessTransaction(t)
}

// ReturnBook closes the patron's most recent active loan of isbn. Loans held without
// a matching log entry get a fresh transaction so the return is still recorded.
func (l *Library) ReturnBook(isbn, patronID string) (*Transaction, error) {
	b, p, err := l.resolve("library.return_book", isbn, patronID)
	if err != nil {
		return nil, err
	}

	t := l.latestActive(isbn, patronID)
	if t == nil {
		if !p.HasBorrowed(isbn) {
			return nil, opErr("library.return_book", KindNotBorrowed,
				fmt.Errorf("book %q (isbn %s) was not borrowed by patron %s: %w", b.Title, isbn, patronID, ErrNotBorrowed))
		}
		id, idErr := l.newID()
		if idErr != nil {
			return nil, opErr("library.return_book", KindExecution, idErr)
		}
		t = NewTransaction(id, isbn, patronID)
		if err := t.Return(b, p, l.now()); err != nil {
			return nil, err
		}
		l.transactions = append(l.transactions, t)
		return t, nil
	}

	if err := t.Return(b, p, l.now()); err != nil {
		return nil, err
	}
	return t, nil
}

// ActiveLoans lists open transactions, optionally filtered by patron.
func (l *Library) ActiveLoans(patronID string) []*Transaction {
	out := []*Transaction{}
	for _, t := range l.transactions {
		if t.Status != StatusActive {
			continue
		}
		if patronID != "" && t.PatronID != patronID {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (l *Library) resolve(op, isbn, patronID string) (*Book, *Patron, error) {
	b, ok := l.FindBook(isbn)
	if !ok {
		return nil, nil, entityErr(op, KindNotFound, EntityBook, fmt.Errorf("book isbn %s not in library: %w", isbn, ErrNotFound))
	}
	p, ok := l.FindPatron(patronID)
	if !ok {
		return nil, nil, entityErr(op, KindNotFound, EntityPatron, fmt.Errorf("patron id %s not in library: %w", patronID, ErrNotFound))
	}
	return b, p, nil
}

func (l *Library) latestActive(isbn, patronID string) *Transaction {
	for i := len(l.transactions) - 1; i >= 0; i-- {
		t := l.transactions[i]
		if t.Status == StatusActive && t.ISBN == isbn && t.PatronID == patronID {
			return t
		}
	}
	return nil
}

func (l *Library) sequentialID() (string, error) {
	return "tx-" + strconv.Itoa(len(l.transactions)+1), nil
}
