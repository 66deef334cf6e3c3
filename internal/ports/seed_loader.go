package ports

import "github.com/aalvaropc/shelf/internal/domain"

// SeedLoader reads a batch of books and patrons from a file.
type SeedLoader interface {
	LoadSeed(path string) (domain.Seed, error)
}
