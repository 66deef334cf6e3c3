package usecase

import (
	"fmt"
	"path/filepath"

	"github.com/aalvaropc/shelf/internal/domain"
	"github.com/aalvaropc/shelf/internal/ports"
)

// InitWorkspace scaffolds shelf.yaml and an empty library snapshot.
type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

// Execute returns the absolute root it initialized.
func (uc *InitWorkspace) Execute(root string, force bool) (string, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &domain.OpError{
			Op:   "workspace.init",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("path %q: %v: %w", root, err, domain.ErrInvalidInput),
		}
	}
	if err := uc.initializer.Init(domain.WorkspaceSpec{Root: abs}, force); err != nil {
		return "", err
	}
	return abs, nil
}
