package snapshotstore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	jsoniter "github.com/json-iterator/go"

	"github.com/aalvaropc/shelf/internal/domain"
	"github.com/aalvaropc/shelf/internal/infra/logger"
	"github.com/aalvaropc/shelf/internal/ports"
)

const defaultDataFile = "library.json"

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

type JSONStore struct {
	path   string
	backup bool
	log    *slog.Logger
}

type Option func(*JSONStore)

// WithBackup keeps the previous snapshot as <file>.bak on every save.
func WithBackup(enabled bool) Option {
	return func(s *JSONStore) { s.backup = enabled }
}

// WithLogger overrides the component logger taken from the global logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *JSONStore) { s.log = log }
}

// NewJSONStore resolves cfg.DataFile against root unless it is absolute.
func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	file := strings.TrimSpace(cfg.DataFile)
	if file == "" {
		file = defaultDataFile
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(root, file)
	}

	s := &JSONStore{path: filepath.Clean(file)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ ports.LibraryStore  = (*JSONStore)(nil)
	_ ports.SnapshotQuery = (*JSONStore)(nil)
)

func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) Load(opts ...domain.LibraryOption) (*domain.Library, error) {
	b, err := s.read("snapshot.load")
	if err != nil {
		return nil, err
	}

	var doc document
	if err := codec.Unmarshal(b, &doc); err != nil {
		return nil, &domain.OpError{
			Op:   "snapshot.load",
			Kind: domain.KindInvalidData,
			Path: s.path,
			Err:  fmt.Errorf("%v: %w", err, domain.ErrInvalidData),
		}
	}

	books, patrons, txs, err := fromDocument(doc)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "snapshot.load",
			Kind: domain.KindInvalidData,
			Path: s.path,
			Err:  err,
		}
	}

	return domain.RestoreLibrary(books, patrons, txs, opts...), nil
}

func (s *JSONStore) Save(lib *domain.Library) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.OpError{
			Op:   "snapshot.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	b, err := codec.MarshalIndent(toDocument(lib), "", "  ")
	if err != nil {
		return &domain.OpError{
			Op:   "snapshot.marshal",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}

	if s.backup {
		s.writeBackup()
	}

	// Atomic-ish write: tmp then rename.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o600); err != nil {
		return &domain.OpError{
			Op:   "snapshot.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "snapshot.rename",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}
	return nil
}

// Query evaluates a JSONPath expression against the raw snapshot document.
func (s *JSONStore) Query(expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, &domain.OpError{
			Op:   "snapshot.query",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("empty jsonpath expression: %w", domain.ErrInvalidInput),
		}
	}

	b, err := s.read("snapshot.query")
	if err != nil {
		return nil, err
	}

	var doc any
	if err := codec.Unmarshal(b, &doc); err != nil {
		return nil, &domain.OpError{
			Op:   "snapshot.query",
			Kind: domain.KindInvalidData,
			Path: s.path,
			Err:  fmt.Errorf("%v: %w", err, domain.ErrInvalidData),
		}
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "snapshot.query",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("jsonpath %s: %v: %w", expr, err, domain.ErrInvalidInput),
		}
	}
	return val, nil
}

// writeBackup copies the current snapshot to <file>.bak. A failed backup is logged
// and does not block the save.
func (s *JSONStore) writeBackup() {
	bak := s.path + ".bak"
	prev, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger().Warn("snapshot.backup_failed", "path", bak, "err", err)
		}
		return
	}
	if err := os.WriteFile(bak, prev, 0o600); err != nil {
		s.logger().Warn("snapshot.backup_failed", "path", bak, "err", err)
	}
}

func (s *JSONStore) logger() *slog.Logger {
	if s.log != nil {
		return s.log
	}
	return logger.For("snapshotstore")
}

func (s *JSONStore) read(op string) ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{
			Op:   op,
			Kind: kind,
			Path: s.path,
			Err:  err,
		}
	}
	return b, nil
}
