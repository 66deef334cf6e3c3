package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aalvaropc/shelf/internal/domain"
	"github.com/aalvaropc/shelf/internal/ports"
)

// session loads the snapshot, lets one operation mutate it, and saves it back.
type session struct {
	store   ports.LibraryStore
	log     *slog.Logger
	libOpts []domain.LibraryOption
}

// Option configures the catalog, registry and circulation usecases.
type Option func(*session)

func WithLogger(log *slog.Logger) Option {
	return func(s *session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithNow overrides the clock used for due dates (useful for tests).
func WithNow(now func() time.Time) Option {
	return func(s *session) { s.libOpts = append(s.libOpts, domain.WithNow(now)) }
}

func WithLoanPeriod(d time.Duration) Option {
	return func(s *session) { s.libOpts = append(s.libOpts, domain.WithLoanPeriod(d)) }
}

// WithTransactionIDs sets the generator for new transaction IDs.
func WithTransactionIDs(gen ports.IDGenerator) Option {
	return func(s *session) {
		if gen != nil {
			s.libOpts = append(s.libOpts, domain.WithIDGenerator(gen.New))
		}
	}
}

func newSession(store ports.LibraryStore, opts ...Option) session {
	s := session{
		store: store,
		log:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// open returns the persisted library, or an empty one when no snapshot exists yet.
func (s session) open(ctx context.Context) (*domain.Library, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lib, err := s.store.Load(s.libOpts...)
	if err == nil {
		return lib, nil
	}
	if domain.IsKind(err, domain.KindNotFound) {
		s.log.Warn("snapshot.missing", "err", err)
		return domain.NewLibrary(s.libOpts...), nil
	}
	s.log.Error("snapshot.load.failed", "err", err)
	return nil, err
}

func (s session) commit(lib *domain.Library) error {
	if err := s.store.Save(lib); err != nil {
		s.log.Error("snapshot.save.failed", "err", err)
		return err
	}
	s.log.Debug("snapshot.saved",
		"books", len(lib.Books()),
		"patrons", len(lib.Patrons()),
		"transactions", len(lib.Transactions()),
	)
	return nil
}
