package workspacefinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/shelf/internal/domain"
	"github.com/aalvaropc/shelf/internal/ports"
)

// EnvWorkspace, when set, names the workspace root and skips the upward search.
const EnvWorkspace = "SHELF_WORKSPACE"

// Finder locates the directory holding shelf.yaml, starting at a directory and
// moving towards the filesystem root.
type Finder struct {
	ConfigFile string
	Getenv     func(string) string
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: ConfigFileName, Getenv: os.Getenv}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	if f.Getenv != nil {
		if env := strings.TrimSpace(f.Getenv(EnvWorkspace)); env != "" {
			return f.fromEnv(env)
		}
	}

	if startDir == "" {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("start directory is empty"),
		}
	}

	dir, err := startingDir(startDir)
	if err != nil {
		return "", &domain.OpError{Op: "workspacefinder.findroot", Kind: domain.KindExecution, Err: err}
	}

	for {
		if f.hasConfig(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &domain.OpError{
				Op:   "workspacefinder.findroot",
				Kind: domain.KindNotFound,
				Err:  fmt.Errorf("no %s in %s or any parent: %w", f.configFile(), startDir, domain.ErrNotFound),
			}
		}
		dir = parent
	}
}

func (f *Finder) fromEnv(env string) (string, error) {
	abs, err := filepath.Abs(env)
	if err != nil {
		return "", &domain.OpError{Op: "workspacefinder.env", Kind: domain.KindInvalidConfig, Err: err}
	}
	if !f.hasConfig(abs) {
		return "", &domain.OpError{
			Op:   "workspacefinder.env",
			Kind: domain.KindNotFound,
			Path: filepath.Join(abs, f.configFile()),
			Err:  fmt.Errorf("%s points at a directory without %s: %w", EnvWorkspace, f.configFile(), domain.ErrNotFound),
		}
	}
	return abs, nil
}

// startingDir makes start absolute and uses the parent when start is a file.
func startingDir(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	if info, statErr := os.Stat(abs); statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}
	return filepath.Clean(abs), nil
}

func (f *Finder) hasConfig(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, f.configFile()))
	return err == nil && !info.IsDir()
}

func (f *Finder) configFile() string {
	if f.ConfigFile == "" {
		return ConfigFileName
	}
	return f.ConfigFile
}
