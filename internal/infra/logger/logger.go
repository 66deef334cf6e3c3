package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	logDirName  = ".shelf/logs"
	logFileName = "shelf.log"
)

type Config struct {
	Root  string
	Debug bool
}

type state struct {
	log      *slog.Logger
	file     *os.File
	path     string
	initedAt time.Time
}

var (
	mu  sync.RWMutex
	cur = discardState()
)

func discardState() state {
	return state{log: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

// Setup points the global logger at <root>/.shelf/logs/shelf.log. On failure the
// logger stays a discard sink so callers can keep going without a log file.
func Setup(cfg Config) (func() error, error) {
	root := filepath.Clean(cfg.Root)
	if root == "" {
		root = "."
	}

	dir := filepath.Join(root, filepath.FromSlash(logDirName))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		reset()
		return nil, err
	}

	path := filepath.Join(dir, logFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		reset()
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:       slog.LevelInfo,
		ReplaceAttr: replaceAttr,
	}
	if cfg.Debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}

	l := slog.New(slog.NewJSONHandler(f, opts))

	mu.Lock()
	cur = state{log: l, file: f, path: path, initedAt: time.Now().UTC()}
	mu.Unlock()

	l.Info("logger.initialized", "path", path, "debug", cfg.Debug)

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		var cerr error
		if cur.file != nil {
			cerr = cur.file.Close()
		}
		cur = discardState()
		return cerr
	}

	return cleanup, nil
}

// replaceAttr pins timestamps to UTC and trims source paths to the file name.
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch {
	case a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime:
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	case a.Key == slog.SourceKey:
		if src, ok := a.Value.Any().(*slog.Source); ok && src != nil {
			src.File = filepath.Base(src.File)
		}
	}
	return a
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return cur.log
}

// For returns the global logger tagged with a component name.
func For(component string) *slog.Logger {
	return L().With("component", component)
}

func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return cur.path
}

func InitTime() time.Time {
	mu.RLock()
	defer mu.RUnlock()
	return cur.initedAt
}

func IsReady() error {
	mu.RLock()
	defer mu.RUnlock()
	if cur.file == nil || cur.path == "" {
		return errors.New("logger not initialized")
	}
	return nil
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	cur = discardState()
}
