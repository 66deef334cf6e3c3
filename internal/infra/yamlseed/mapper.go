package yamlseed

import (
	"fmt"
	"strings"

	"github.com/aalvaropc/shelf/internal/domain"
)

// MapSeed validates every entry and fails on the first bad one, naming its position.
func MapSeed(path string, ys YAMLSeed) (domain.Seed, error) {
	seed := domain.Seed{
		Source:  path,
		Books:   make([]domain.Book, 0, len(ys.Books)),
		Patrons: make([]domain.Patron, 0, len(ys.Patrons)),
	}

	for i, b := range ys.Books {
		field := fmt.Sprintf("books[%d]", i)
		if strings.TrimSpace(b.Title) == "" {
			return domain.Seed{}, invalidField(path, field+".title", "title is required")
		}
		if strings.TrimSpace(b.ISBN) == "" {
			return domain.Seed{}, invalidField(path, field+".isbn", "isbn is required")
		}

		qty := 1
		if b.Quantity != nil {
			if *b.Quantity < 0 {
				return domain.Seed{}, invalidField(path, field+".quantity", "must be >= 0")
			}
			qty = *b.Quantity
		}

		seed.Books = append(seed.Books, *domain.NewBook(
			strings.TrimSpace(b.Title),
			strings.TrimSpace(b.Author),
			strings.TrimSpace(b.ISBN),
			qty,
		))
	}

	for i, p := range ys.Patrons {
		field := fmt.Sprintf("patrons[%d]", i)
		if strings.TrimSpace(p.Name) == "" {
			return domain.Seed{}, invalidField(path, field+".name", "name is required")
		}
		seed.Patrons = append(seed.Patrons, *domain.NewPatron(
			strings.TrimSpace(p.Name),
			strings.TrimSpace(p.ID),
			strings.TrimSpace(p.Contact),
		))
	}

	return seed, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "yamlseed.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
