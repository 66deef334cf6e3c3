package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aalvaropc/shelf/internal/domain"
	"github.com/aalvaropc/shelf/internal/infra/idgen"
	"github.com/aalvaropc/shelf/internal/infra/logger"
	"github.com/aalvaropc/shelf/internal/infra/snapshotstore"
	"github.com/aalvaropc/shelf/internal/infra/workspacefinder"
	"github.com/aalvaropc/shelf/internal/infra/yamlseed"
	"github.com/aalvaropc/shelf/internal/usecase"
)

type workspaceCtx struct {
	root   string
	cfg    domain.Config
	format string

	store *snapshotstore.JSONStore

	catalog     *usecase.Catalog
	registry    *usecase.Registry
	circulation *usecase.Circulation
	query       *usecase.QuerySnapshot
	importer    *usecase.Importer

	cleanup func() error
}

func loadWorkspace(g *globals) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(g.workspace)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	format, err := resolveFormat(g.format, cfg.Output)
	if err != nil {
		return nil, err
	}

	cleanup, lerr := logger.Setup(logger.Config{Root: root, Debug: g.debug})
	if lerr != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", lerr)
	}

	ws := newWorkspaceCtx(root, cfg, format)
	ws.cleanup = cleanup
	return ws, nil
}

func newWorkspaceCtx(root string, cfg domain.Config, format string) *workspaceCtx {
	store := snapshotstore.NewJSONStore(root, cfg, snapshotstore.WithBackup(true))

	opts := []usecase.Option{
		usecase.WithLogger(logger.For("usecase")),
		usecase.WithLoanPeriod(time.Duration(cfg.LoanDays) * 24 * time.Hour),
		usecase.WithTransactionIDs(idgen.NewULID()),
	}

	return &workspaceCtx{
		root:        root,
		cfg:         cfg,
		format:      format,
		store:       store,
		catalog:     usecase.NewCatalog(store, opts...),
		registry:    usecase.NewRegistry(store, idgen.NewUUID(), opts...),
		circulation: usecase.NewCirculation(store, opts...),
		query:       usecase.NewQuerySnapshot(store),
		importer:    usecase.NewImporter(store, yamlseed.NewLoader(), idgen.NewUUID(), opts...),
	}
}

func (ws *workspaceCtx) close() {
	if ws.cleanup != nil {
		_ = ws.cleanup()
	}
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `shelf init`): %w", wd, err)
	}
	return root, nil
}

// tuiStartDir is where the TUI starts looking for a workspace: the --workspace flag
// if set, else the working directory. Unlike resolveWorkspaceRoot it does not require
// a workspace to exist yet.
func tuiStartDir(workspaceFlag string) (string, error) {
	if w := strings.TrimSpace(workspaceFlag); w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	abs, err := filepath.Abs(wd)
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return abs, nil
}

// resolveFormat prefers the --format flag and falls back to the workspace default.
func resolveFormat(flag, fallback string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(flag))
	if f == "" {
		f = strings.ToLower(strings.TrimSpace(fallback))
	}
	switch f {
	case "", "pretty":
		return "pretty", nil
	case "json":
		return "json", nil
	default:
		return "", &domain.OpError{
			Op:   "cli.format",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("unsupported format %q (expected pretty|json): %w", f, domain.ErrInvalidInput),
		}
	}
}
