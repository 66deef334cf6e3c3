package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/aalvaropc/shelf/internal/domain"
	"github.com/aalvaropc/shelf/internal/ports"
)

type RegisterPatronInput struct {
	Name    string `validate:"required,max=200"`
	ID      string `validate:"max=64"`
	Contact string `validate:"max=200"`
}

// Registry manages patrons.
type Registry struct {
	session
	ids ports.IDGenerator
}

// NewRegistry uses ids for patrons registered without an explicit ID.
func NewRegistry(store ports.LibraryStore, ids ports.IDGenerator, opts ...Option) *Registry {
	return &Registry{session: newSession(store, opts...), ids: ids}
}

func (uc *Registry) RegisterPatron(ctx context.Context, in RegisterPatronInput) (domain.Patron, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.ID = strings.TrimSpace(in.ID)
	in.Contact = strings.TrimSpace(in.Contact)
	if err := validateInput("registry.register_patron", in); err != nil {
		return domain.Patron{}, err
	}

	if in.ID == "" {
		if uc.ids == nil {
			return domain.Patron{}, &domain.OpError{
				Op:   "registry.register_patron",
				Kind: domain.KindInvalidInput,
				Err:  fmt.Errorf("id is required: %w", domain.ErrInvalidInput),
			}
		}
		id, err := uc.ids.New()
		if err != nil {
			return domain.Patron{}, &domain.OpError{Op: "registry.register_patron", Kind: domain.KindExecution, Err: err}
		}
		in.ID = id
	}

	lib, err := uc.open(ctx)
	if err != nil {
		return domain.Patron{}, err
	}

	p := domain.NewPatron(in.Name, in.ID, in.Contact)
	if err := lib.RegisterPatron(p); err != nil {
		return domain.Patron{}, err
	}
	if err := uc.commit(lib); err != nil {
		return domain.Patron{}, err
	}

	uc.log.Info("patron.registered", "id", p.ID)
	return *p, nil
}

func (uc *Registry) RemovePatron(ctx context.Context, id string) (domain.Patron, error) {
	lib, err := uc.open(ctx)
	if err != nil {
		return domain.Patron{}, err
	}

	p, err := lib.RemovePatron(strings.TrimSpace(id))
	if err != nil {
		uc.log.Warn("patron.remove.failed", "id", id, "err", err)
		return domain.Patron{}, err
	}
	if err := uc.commit(lib); err != nil {
		return domain.Patron{}, err
	}

	uc.log.Info("patron.removed", "id", p.ID, "still_borrowed", len(p.Borrowed))
	return *p, nil
}

func (uc *Registry) ListPatrons(ctx context.Context) ([]domain.Patron, error) {
	lib, err := uc.open(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Patron, 0, len(lib.Patrons()))
	for _, p := range lib.Patrons() {
		out = append(out, *p)
	}
	return out, nil
}

// PatronDetails resolves a patron's borrowed ISBNs against the catalog.
type PatronDetails struct {
	Patron   domain.Patron
	Borrowed []domain.Book
	Loans    []LoanView
}

func (uc *Registry) Patron(ctx context.Context, id string) (PatronDetails, error) {
	lib, err := uc.open(ctx)
	if err != nil {
		return PatronDetails{}, err
	}

	id = strings.TrimSpace(id)
	p, ok := lib.FindPatron(id)
	if !ok {
		return PatronDetails{}, &domain.OpError{
			Op:     "registry.patron",
			Kind:   domain.KindNotFound,
			Entity: domain.EntityPatron,
			Err:    fmt.Errorf("patron id %s: %w", id, domain.ErrNotFound),
		}
	}

	out := PatronDetails{Patron: *p, Borrowed: []domain.Book{}}
	for _, isbn := range p.Borrowed {
		if b, ok := lib.FindBook(isbn); ok {
			out.Borrowed = append(out.Borrowed, *b)
			continue
		}
		out.Borrowed = append(out.Borrowed, domain.Book{ISBN: isbn})
	}
	out.Loans = loanViews(lib, lib.ActiveLoans(id), lib.Now())
	return out, nil
}
