package usecase

import (
	"context"

	"github.com/aalvaropc/shelf/internal/domain"
	"github.com/aalvaropc/shelf/internal/ports"
)

// ImportReport counts what an import added and lists entries skipped as duplicates.
type ImportReport struct {
	Source       string
	BooksAdded   int
	PatronsAdded int
	Skipped      []string
}

// Importer loads a seed file into the library in a single save.
type Importer struct {
	session
	seeds ports.SeedLoader
	ids   ports.IDGenerator
}

func NewImporter(store ports.LibraryStore, seeds ports.SeedLoader, patronIDs ports.IDGenerator, opts ...Option) *Importer {
	return &Importer{session: newSession(store, opts...), seeds: seeds, ids: patronIDs}
}

func (uc *Importer) Import(ctx context.Context, path string) (ImportReport, error) {
	seed, err := uc.seeds.LoadSeed(path)
	if err != nil {
		return ImportReport{}, err
	}

	lib, err := uc.open(ctx)
	if err != nil {
		return ImportReport{}, err
	}

	rep := ImportReport{Source: seed.Source, Skipped: []string{}}

	for i := range seed.Books {
		b := seed.Books[i]
		if err := lib.AddBook(&b); err != nil {
			if !domain.IsKind(err, domain.KindConflict) {
				return ImportReport{}, err
			}
			rep.Skipped = append(rep.Skipped, "book "+b.ISBN)
			continue
		}
		rep.BooksAdded++
	}

	for i := range seed.Patrons {
		p := seed.Patrons[i]
		p.Borrowed = nil
		if p.ID == "" {
			if uc.ids == nil {
				rep.Skipped = append(rep.Skipped, "patron "+p.Name+" (no id)")
				continue
			}
			id, err := uc.ids.New()
			if err != nil {
				return ImportReport{}, &domain.OpError{Op: "import.patron_id", Kind: domain.KindExecution, Err: err}
			}
			p.ID = id
		}
		if err := lib.RegisterPatron(&p); err != nil {
			if !domain.IsKind(err, domain.KindConflict) {
				return ImportReport{}, err
			}
			rep.Skipped = append(rep.Skipped, "patron "+p.ID)
			continue
		}
		rep.PatronsAdded++
	}

	if rep.BooksAdded+rep.PatronsAdded > 0 {
		if err := uc.commit(lib); err != nil {
			return ImportReport{}, err
		}
	}

	uc.log.Info("import.done",
		"source", rep.Source,
		"books", rep.BooksAdded,
		"patrons", rep.PatronsAdded,
		"skipped", len(rep.Skipped),
	)
	return rep, nil
}
