package idgen

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/aalvaropc/shelf/internal/ports"
)

// ULID generates lexicographically sortable IDs; used for transactions so the
// log sorts by creation time.
type ULID struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy io.Reader
}

type Option func(*ULID)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(g *ULID) { g.now = now }
}

func NewULID(opts ...Option) *ULID {
	g := &ULID{
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ ports.IDGenerator = (*ULID)(nil)

func (g *ULID) New() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.now().UTC()), g.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// UUID generates random v4 IDs; used for patrons registered without an explicit ID.
type UUID struct{}

func NewUUID() UUID { return UUID{} }

var _ ports.IDGenerator = UUID{}

func (UUID) New() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
