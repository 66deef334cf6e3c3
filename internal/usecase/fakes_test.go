package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/aalvaropc/shelf/internal/domain"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// memStore keeps deep copies so unsaved mutations never leak between sessions.
type memStore struct {
	books   []domain.Book
	patrons []domain.Patron
	txs     []domain.Transaction
	saved   bool
	saves   int
	loadErr error
	saveErr error
}

func (s *memStore) Load(opts ...domain.LibraryOption) (*domain.Library, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if !s.saved {
		return nil, &domain.OpError{Op: "mem.load", Kind: domain.KindNotFound, Err: domain.ErrNotFound}
	}

	books := make([]*domain.Book, 0, len(s.books))
	for _, b := range s.books {
		b := b
		books = append(books, &b)
	}
	patrons := make([]*domain.Patron, 0, len(s.patrons))
	for _, p := range s.patrons {
		p := p
		p.Borrowed = append([]string(nil), p.Borrowed...)
		patrons = append(patrons, &p)
	}
	txs := make([]*domain.Transaction, 0, len(s.txs))
	for _, t := range s.txs {
		t := t
		txs = append(txs, &t)
	}
	return domain.RestoreLibrary(books, patrons, txs, opts...), nil
}

func (s *memStore) Save(lib *domain.Library) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.books = s.books[:0]
	for _, b := range lib.Books() {
		s.books = append(s.books, *b)
	}
	s.patrons = s.patrons[:0]
	for _, p := range lib.Patrons() {
		cp := *p
		cp.Borrowed = append([]string(nil), p.Borrowed...)
		s.patrons = append(s.patrons, cp)
	}
	s.txs = s.txs[:0]
	for _, t := range lib.Transactions() {
		s.txs = append(s.txs, *t)
	}
	s.saved = true
	s.saves++
	return nil
}

type seqIDs struct {
	prefix string
	n      int
	err    error
}

func (g *seqIDs) New() (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.n++
	return fmt.Sprintf("%s%d", g.prefix, g.n), nil
}

type fakeQuery struct {
	got string
	val any
	err error
}

func (q *fakeQuery) Query(expr string) (any, error) {
	q.got = expr
	return q.val, q.err
}

type fakeInitializer struct {
	spec  domain.WorkspaceSpec
	force bool
}

func (f *fakeInitializer) Init(spec domain.WorkspaceSpec, force bool) error {
	f.spec, f.force = spec, force
	return nil
}

var errBoom = errors.New("boom")

func clockAt(t *time.Time) func() time.Time {
	return func() time.Time { return *t }
}
