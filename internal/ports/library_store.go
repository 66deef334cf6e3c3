package ports

import "github.com/aalvaropc/shelf/internal/domain"

// LibraryStore persists the whole library as one snapshot.
type LibraryStore interface {
	Load(opts ...domain.LibraryOption) (*domain.Library, error)
	Save(lib *domain.Library) error
}
