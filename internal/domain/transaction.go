package domain

import (
	"fmt"
	"time"
)

// DefaultLoanPeriod is how long a checked-out copy may be kept.
const DefaultLoanPeriod = 14 * 24 * time.Hour

// TransactionStatus tracks where a loan is in its lifecycle.
type TransactionStatus string

const (
	StatusPending TransactionStatus = "pending"
	StatusActive  TransactionStatus = "active"
	StatusClosed  TransactionStatus = "closed"
)

// Transaction links one book to one patron by their stable identifiers.
//
// pending -> active (Checkout) -> closed (Return). A failed checkout leaves the
// transaction pending.
type Transaction struct {
	ID       string
	ISBN     string
	PatronID string
	Status   TransactionStatus

	CheckedOutAt *time.Time
	DueDate      *time.Time
	ReturnedAt   *time.Time
}

func NewTransaction(id, isbn, patronID string) *Transaction {
	return &Transaction{
		ID:       id,
		ISBN:     isbn,
		PatronID: patronID,
		Status:   StatusPending,
	}
}

// Checkout lends one copy of b to p. On any failure b, p and t are left untouched.
func (t *Transaction) Checkout(b *Book, p *Patron, now time.Time, loan time.Duration) error {
	if err := t.bind(b, p); err != nil {
		return err
	}
	if t.Status != StatusPending {
		return opErr("transaction.checkout", KindConflict,
			fmt.Errorf("transaction %s is %s: %w", t.ID, t.Status, ErrConflict))
	}
	if !b.Available() {
		return opErr("transaction.checkout", KindOutOfStock,
			fmt.Errorf("book %q (isbn %s): %w", b.Title, b.ISBN, ErrOutOfStock))
	}
	if loan <= 0 {
		loan = DefaultLoanPeriod
	}

	b.Quantity--
	p.Borrow(b.ISBN)

	at := now
	due := now.Add(loan)
	t.CheckedOutAt = &at
	t.DueDate = &due
	t.Status = StatusActive
	return nil
}

// Return hands the copy back. It fails unless p currently holds a copy of b.
func (t *Transaction) Return(b *Book, p *Patron, now time.Time) error {
	if err := t.bind(b, p); err != nil {
		return err
	}
	if !p.HasBorrowed(b.ISBN) {
		return opErr("transaction.return", KindNotBorrowed,
			fmt.Errorf("book %q (isbn %s) was not borrowed by patron %s: %w", b.Title, b.ISBN, p.ID, ErrNotBorrowed))
	}

	p.Return(b.ISBN)
	b.Quantity++

	at := now
	t.ReturnedAt = &at
	t.DueDate = nil
	t.Status = StatusClosed
	return nil
}

// IsOverdue reports whether an active loan is past its due date.
func (t *Transaction) IsOverdue(now time.Time) bool {
	return t.Status == StatusActive && t.DueDate != nil && now.After(*t.DueDate)
}

func (t *Transaction) bind(b *Book, p *Patron) error {
	if b == nil || p == nil {
		return opErr("transaction.bind", KindInvalidInput,
			fmt.Errorf("book and patron are required: %w", ErrInvalidInput))
	}
	if b.ISBN != t.ISBN || p.ID != t.PatronID {
		return opErr("transaction.bind", KindInvalidInput,
			fmt.Errorf("transaction %s is for isbn %s / patron %s: %w", t.ID, t.ISBN, t.PatronID, ErrInvalidInput))
	}
	return nil
}
