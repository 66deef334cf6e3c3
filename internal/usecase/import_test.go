package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/shelf/internal/domain"
)

type fakeSeeds struct {
	seed domain.Seed
	err  error
}

func (f fakeSeeds) LoadSeed(path string) (domain.Seed, error) {
	if f.err != nil {
		return domain.Seed{}, f.err
	}
	s := f.seed
	s.Source = path
	return s, nil
}

func TestImporter_AddsAndSkipsDuplicates(t *testing.T) {
	store := &memStore{}
	ctx := context.Background()

	_, err := NewCatalog(store).AddBook(ctx, AddBookInput{Title: "Dune", Author: "Herbert", ISBN: "111", Quantity: 1})
	require.NoError(t, err)

	seeds := fakeSeeds{seed: domain.Seed{
		Books: []domain.Book{
			{Title: "Dune", Author: "Herbert", ISBN: "111", Quantity: 5},
			{Title: "Emma", Author: "Austen", ISBN: "222", Quantity: 2},
		},
		Patrons: []domain.Patron{
			{Name: "Ann", ID: "p1"},
			{Name: "Bob"},
		},
	}}

	rep, err := NewImporter(store, seeds, &seqIDs{prefix: "gen-"}).Import(ctx, "seed.yaml")
	require.NoError(t, err)
	assert.Equal(t, "seed.yaml", rep.Source)
	assert.Equal(t, 1, rep.BooksAdded)
	assert.Equal(t, 2, rep.PatronsAdded)
	assert.Equal(t, []string{"book 111"}, rep.Skipped)

	require.Len(t, store.books, 2)
	assert.Equal(t, 1, store.books[0].Quantity, "existing stock must not change")
	require.Len(t, store.patrons, 2)
	assert.Equal(t, "gen-1", store.patrons[1].ID)
}

func TestImporter_NothingNewSkipsSave(t *testing.T) {
	store := &memStore{}
	rep, err := NewImporter(store, fakeSeeds{}, nil).Import(context.Background(), "empty.yaml")
	require.NoError(t, err)
	assert.Zero(t, rep.BooksAdded+rep.PatronsAdded)
	assert.Zero(t, store.saves)
}

func TestImporter_LoaderError(t *testing.T) {
	seeds := fakeSeeds{err: &domain.OpError{Op: "yamlseed.load", Kind: domain.KindInvalidConfig, Err: domain.ErrInvalidConfig}}
	_, err := NewImporter(&memStore{}, seeds, nil).Import(context.Background(), "bad.yaml")
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig))
}
