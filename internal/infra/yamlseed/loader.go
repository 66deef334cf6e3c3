package yamlseed

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/shelf/internal/domain"
	"github.com/aalvaropc/shelf/internal/ports"
)

// Loader reads seed files such as:
//
//	books:
//	  - {title: Dune, author: Frank Herbert, isbn: "111", quantity: 2}
//	patrons:
//	  - {name: Ann, id: p1, contact: ann@example.com}
type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

var _ ports.SeedLoader = (*Loader)(nil)

func (l *Loader) LoadSeed(path string) (domain.Seed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Seed{}, &domain.OpError{
			Op:   "yamlseed.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLSeed
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.Seed{}, &domain.OpError{
			Op:   "yamlseed.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapSeed(path, dto)
}
