package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	return NewLibrary(WithNow(func() time.Time { return fixedNow }))
}

func TestLibrary_AddAndRemoveBook(t *testing.T) {
	lib := newTestLibrary(t)

	require.NoError(t, lib.AddBook(NewBook("Dune", "Herrick", "111", 1)))
	require.NoError(t, lib.AddBook(NewBook("Emma", "Austen", "222", 2)))

	err := lib.AddBook(NewBook("Dune (2nd)", "Herrick", "111", 1))
	assert.True(t, IsKind(err, KindConflict))

	err = lib.AddBook(NewBook("No ISBN", "x", " ", 1))
	assert.True(t, IsKind(err, KindInvalidInput))

	removed, err := lib.RemoveBook("111")
	require.NoError(t, err)
	assert.Equal(t, "Dune", removed.Title)
	assert.Len(t, lib.Books(), 1)

	_, err = lib.RemoveBook("111")
	assert.True(t, IsKind(err, KindNotFound))
	assert.Len(t, lib.Books(), 1)
}

func TestLibrary_RegisterAndRemovePatron(t *testing.T) {
	lib := newTestLibrary(t)

	require.NoError(t, lib.RegisterPatron(NewPatron("Ann", "p1", "ann@example.com")))
	assert.True(t, IsKind(lib.RegisterPatron(NewPatron("Other Ann", "p1", "")), KindConflict))

	_, err := lib.RemovePatron("nope")
	assert.True(t, IsKind(err, KindNotFound))

	p, err := lib.RemovePatron("p1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", p.Name)
	assert.Empty(t, lib.Patrons())
}

func TestLibrary_SearchBooksByTitle(t *testing.T) {
	lib := newTestLibrary(t)
	require.NoError(t, lib.AddBook(NewBook("War and Peace", "Tolstoy", "1", 1)))
	require.NoError(t, lib.AddBook(NewBook("Peace Treaties", "Someone", "2", 1)))
	require.NoError(t, lib.AddBook(NewBook("Warcraft Strategy Guide", "Blizzard", "3", 1)))

	got := lib.SearchBooksByTitle("war")

	require.Len(t, got, 2)
	assert.Equal(t, "War and Peace", got[0].Title)
	assert.Equal(t, "Warcraft Strategy Guide", got[1].Title)

	assert.Len(t, lib.SearchBooksByTitle(""), 3)
	assert.Empty(t, lib.SearchBooksByTitle("dragons"))
}

func TestLibrary_SearchFoldsUnicodeCase(t *testing.T) {
	lib := newTestLibrary(t)
	require.NoError(t, lib.AddBook(NewBook("Die Straße", "Anon", "1", 1)))

	assert.Len(t, lib.SearchBooksByTitle("STRASSE"), 1)
}

func TestLibrary_DuneScenario(t *testing.T) {
	lib := newTestLibrary(t)
	require.NoError(t, lib.AddBook(NewBook("Dune", "Herrick", "111", 1)))
	require.NoError(t, lib.RegisterPatron(NewPatron("Ann", "p1", "")))

	first, err := lib.Checkout("111", "p1")
	require.NoError(t, err)
	book, _ := lib.FindBook("111")
	assert.Equal(t, 0, book.Quantity)
	require.NotNil(t, first.DueDate)
	assert.Equal(t, fixedNow.Add(14*24*time.Hour), *first.DueDate)

	second, err := lib.Checkout("111", "p1")
	assert.True(t, IsKind(err, KindOutOfStock))
	assert.Equal(t, 0, book.Quantity)
	assert.Nil(t, second.DueDate)
	assert.Len(t, lib.Transactions(), 2)
}

func TestLibrary_ProcessTransaction_UnknownEntitiesStillLogged(t *testing.T) {
	lib := newTestLibrary(t)
	require.NoError(t, lib.AddBook(NewBook("Dune", "Herrick", "111", 1)))

	tx := NewTransaction("t1", "111", "ghost")
	err := lib.ProcessTransaction(tx)

	assert.True(t, IsKind(err, KindNotFound))
	assert.Equal(t, StatusPending, tx.Status)
	assert.Len(t, lib.Transactions(), 1)
	book, _ := lib.FindBook("111")
	assert.Equal(t, 1, book.Quantity)

	err = lib.ProcessTransaction(NewTransaction("t2", "999", "ghost"))
	assert.True(t, IsKind(err, KindNotFound))
	assert.Len(t, lib.Transactions(), 2)
}

func TestLibrary_ReturnBook(t *testing.T) {
	lib := newTestLibrary(t)
	require.NoError(t, lib.AddBook(NewBook("Dune", "Herrick", "111", 2)))
	require.NoError(t, lib.RegisterPatron(NewPatron("Ann", "p1", "")))
	require.NoError(t, lib.RegisterPatron(NewPatron("Bob", "p2", "")))

	out, err := lib.Checkout("111", "p1")
	require.NoError(t, err)

	_, err = lib.ReturnBook("111", "p2")
	assert.True(t, IsKind(err, KindNotBorrowed))

	back, err := lib.ReturnBook("111", "p1")
	require.NoError(t, err)
	assert.Same(t, out, back)
	assert.Equal(t, StatusClosed, back.Status)

	book, _ := lib.FindBook("111")
	assert.Equal(t, 2, book.Quantity)
	assert.Empty(t, lib.ActiveLoans(""))

	_, err = lib.ReturnBook("111", "p1")
	assert.True(t, IsKind(err, KindNotBorrowed))
	assert.Equal(t, 2, book.Quantity)
}

func TestLibrary_ReturnBook_LoanWithoutLogEntry(t *testing.T) {
	p := NewPatron("Ann", "p1", "")
	p.Borrow("111")
	lib := RestoreLibrary(
		[]*Book{NewBook("Dune", "Herrick", "111", 0)},
		[]*Patron{p},
		nil,
		WithNow(func() time.Time { return fixedNow }),
	)

	tx, err := lib.ReturnBook("111", "p1")
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, tx.Status)
	assert.Len(t, lib.Transactions(), 1)

	book, _ := lib.FindBook("111")
	assert.Equal(t, 1, book.Quantity)
}

func TestLibrary_ActiveLoansByPatron(t *testing.T) {
	lib := newTestLibrary(t)
	require.NoError(t, lib.AddBook(NewBook("Dune", "Herrick", "111", 5)))
	require.NoError(t, lib.RegisterPatron(NewPatron("Ann", "p1", "")))
	require.NoError(t, lib.RegisterPatron(NewPatron("Bob", "p2", "")))

	_, err := lib.Checkout("111", "p1")
	require.NoError(t, err)
	_, err = lib.Checkout("111", "p2")
	require.NoError(t, err)
	_, err = lib.Checkout("111", "p1")
	require.NoError(t, err)

	assert.Len(t, lib.ActiveLoans(""), 3)
	assert.Len(t, lib.ActiveLoans("p1"), 2)
	assert.Len(t, lib.ActiveLoans("p2"), 1)
}

func TestLibrary_CustomLoanPeriodAndIDs(t *testing.T) {
	n := 0
	lib := NewLibrary(
		WithNow(func() time.Time { return fixedNow }),
		WithLoanPeriod(7*24*time.Hour),
		WithIDGenerator(func() (string, error) {
			n++
			return "custom-" + string(rune('0'+n)), nil
		}),
	)
	require.NoError(t, lib.AddBook(NewBook("Dune", "Herrick", "111", 1)))
	require.NoError(t, lib.RegisterPatron(NewPatron("Ann", "p1", "")))

	tx, err := lib.Checkout("111", "p1")
	require.NoError(t, err)
	assert.Equal(t, "custom-1", tx.ID)
	assert.Equal(t, fixedNow.Add(7*24*time.Hour), *tx.DueDate)
}

func TestLibrary_CheckoutIDFailure(t *testing.T) {
	boom := errors.New("entropy exhausted")
	lib := NewLibrary(WithIDGenerator(func() (string, error) { return "", boom }))

	_, err := lib.Checkout("111", "p1")
	assert.True(t, IsKind(err, KindExecution))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, lib.Transactions())
}

func TestLibrary_DefaultIDsAreSequential(t *testing.T) {
	lib := newTestLibrary(t)
	require.NoError(t, lib.AddBook(NewBook("Dune", "Herrick", "111", 2)))
	require.NoError(t, lib.RegisterPatron(NewPatron("Ann", "p1", "")))

	a, err := lib.Checkout("111", "p1")
	require.NoError(t, err)
	b, err := lib.Checkout("111", "p1")
	require.NoError(t, err)

	assert.Equal(t, "tx-1", a.ID)
	assert.Equal(t, "tx-2", b.ID)
}
