package tui

import (
	"context"
	"log/slog"

	"github.com/aalvaropc/shelf/internal/domain"
	"github.com/aalvaropc/shelf/internal/ports"
	"github.com/aalvaropc/shelf/internal/usecase"
)

type CatalogService interface {
	AddBook(ctx context.Context, in usecase.AddBookInput) (domain.Book, error)
	ListBooks(ctx context.Context) ([]domain.Book, error)
	SearchBooks(ctx context.Context, query string) ([]domain.Book, error)
}

type RegistryService interface {
	RegisterPatron(ctx context.Context, in usecase.RegisterPatronInput) (domain.Patron, error)
	ListPatrons(ctx context.Context) ([]domain.Patron, error)
}

type CirculationService interface {
	Checkout(ctx context.Context, isbn, patronID string) (*domain.Transaction, error)
	Return(ctx context.Context, isbn, patronID string) (*domain.Transaction, error)
}

// Services are the usecases bound to one opened workspace.
type Services struct {
	Catalog     CatalogService
	Registry    RegistryService
	Circulation CirculationService
}

func (s Services) ready() bool {
	return s.Catalog != nil && s.Registry != nil && s.Circulation != nil
}

type Deps struct {
	WorkspaceLocator     ports.WorkspaceLocator
	WorkspaceInitializer ports.WorkspaceInitializer

	// Open binds usecases to the workspace at root.
	Open func(root string) (Services, error)

	// StartDir is where the workspace search begins; empty means the cwd.
	StartDir string

	Logger *slog.Logger
	Debug  bool
}
