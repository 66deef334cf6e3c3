package ports

import "github.com/aalvaropc/shelf/internal/domain"

// WorkspaceLocator resolves the workspace root that contains startDir.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}

// WorkspaceInitializer writes shelf.yaml, the data directory and an empty
// snapshot. With force, shelf.yaml is rewritten; an existing snapshot never is.
type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
