package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/aalvaropc/shelf/internal/domain"
	"github.com/aalvaropc/shelf/internal/ports"
)

// Circulation lends and takes back books.
type Circulation struct {
	session
}

func NewCirculation(store ports.LibraryStore, opts ...Option) *Circulation {
	return &Circulation{session: newSession(store, opts...)}
}

// Checkout lends isbn to patronID. A transaction that was logged but could not be
// completed is still persisted, so the returned transaction may be non-nil with an error.
func (uc *Circulation) Checkout(ctx context.Context, isbn, patronID string) (*domain.Transaction, error) {
	isbn, patronID = strings.TrimSpace(isbn), strings.TrimSpace(patronID)

	lib, err := uc.open(ctx)
	if err != nil {
		return nil, err
	}

	t, err := lib.Checkout(isbn, patronID)
	if t == nil {
		uc.log.Error("checkout.failed", "isbn", isbn, "patron", patronID, "err", err)
		return nil, err
	}

	if saveErr := uc.commit(lib); saveErr != nil {
		return nil, saveErr
	}

	if err != nil {
		uc.log.Warn("checkout.failed", "tx", t.ID, "isbn", isbn, "patron", patronID, "err", err)
		return t, err
	}
	uc.log.Info("checkout.ok", "tx", t.ID, "isbn", isbn, "patron", patronID, "due", t.DueDate)
	return t, nil
}

func (uc *Circulation) Return(ctx context.Context, isbn, patronID string) (*domain.Transaction, error) {
	isbn, patronID = strings.TrimSpace(isbn), strings.TrimSpace(patronID)

	lib, err := uc.open(ctx)
	if err != nil {
		return nil, err
	}

	t, err := lib.ReturnBook(isbn, patronID)
	if err != nil {
		uc.log.Warn("return.failed", "isbn", isbn, "patron", patronID, "err", err)
		return nil, err
	}
	if err := uc.commit(lib); err != nil {
		return nil, err
	}

	uc.log.Info("return.ok", "tx", t.ID, "isbn", isbn, "patron", patronID)
	return t, nil
}

type LoanFilter struct {
	PatronID    string
	OverdueOnly bool
}

// LoanView is an active transaction joined with the names it refers to.
type LoanView struct {
	Transaction domain.Transaction
	Title       string
	PatronName  string
	Overdue     bool
}

func (uc *Circulation) Loans(ctx context.Context, f LoanFilter) ([]LoanView, error) {
	lib, err := uc.open(ctx)
	if err != nil {
		return nil, err
	}

	views := loanViews(lib, lib.ActiveLoans(strings.TrimSpace(f.PatronID)), lib.Now())
	if !f.OverdueOnly {
		return views, nil
	}
	out := []LoanView{}
	for _, v := range views {
		if v.Overdue {
			out = append(out, v)
		}
	}
	return out, nil
}

func loanViews(lib *domain.Library, txs []*domain.Transaction, now time.Time) []LoanView {
	out := make([]LoanView, 0, len(txs))
	for _, t := range txs {
		v := LoanView{Transaction: *t, Overdue: t.IsOverdue(now)}
		if b, ok := lib.FindBook(t.ISBN); ok {
			v.Title = b.Title
		}
		if p, ok := lib.FindPatron(t.PatronID); ok {
			v.PatronName = p.Name
		}
		out = append(out, v)
	}
	return out
}
