package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/shelf/internal/domain"
	"github.com/aalvaropc/shelf/internal/usecase"
)

type fakeCatalog struct {
	books []domain.Book
	added []usecase.AddBookInput
	err   error
}

func (f *fakeCatalog) AddBook(_ context.Context, in usecase.AddBookInput) (domain.Book, error) {
	if f.err != nil {
		return domain.Book{}, f.err
	}
	f.added = append(f.added, in)
	b := domain.Book{Title: in.Title, Author: in.Author, ISBN: in.ISBN, Quantity: in.Quantity}
	f.books = append(f.books, b)
	return b, nil
}

func (f *fakeCatalog) ListBooks(context.Context) ([]domain.Book, error) { return f.books, f.err }

func (f *fakeCatalog) SearchBooks(_ context.Context, q string) ([]domain.Book, error) {
	var out []domain.Book
	for _, b := range f.books {
		if strings.Contains(strings.ToLower(b.Title), strings.ToLower(q)) {
			out = append(out, b)
		}
	}
	return out, f.err
}

type fakeRegistry struct {
	patrons []domain.Patron
}

func (f *fakeRegistry) RegisterPatron(_ context.Context, in usecase.RegisterPatronInput) (domain.Patron, error) {
	id := in.ID
	if id == "" {
		id = "generated"
	}
	p := domain.Patron{Name: in.Name, ID: id, Contact: in.Contact}
	f.patrons = append(f.patrons, p)
	return p, nil
}

func (f *fakeRegistry) ListPatrons(context.Context) ([]domain.Patron, error) { return f.patrons, nil }

type fakeCirculation struct {
	err error
	got []string
}

func (f *fakeCirculation) Checkout(_ context.Context, isbn, patronID string) (*domain.Transaction, error) {
	f.got = append(f.got, "checkout:"+isbn+":"+patronID)
	if f.err != nil {
		return nil, f.err
	}
	due := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return &domain.Transaction{ID: "tx-1", ISBN: isbn, PatronID: patronID, Status: domain.StatusActive, DueDate: &due}, nil
}

func (f *fakeCirculation) Return(_ context.Context, isbn, patronID string) (*domain.Transaction, error) {
	f.got = append(f.got, "return:"+isbn+":"+patronID)
	return &domain.Transaction{ID: "tx-1", Status: domain.StatusClosed}, f.err
}

type fakeLocator struct {
	root string
	err  error
}

func (f fakeLocator) FindRoot(string) (string, error) { return f.root, f.err }

func testModel(t *testing.T, cat *fakeCatalog, reg *fakeRegistry, circ *fakeCirculation) model {
	t.Helper()
	svc := Services{Catalog: cat, Registry: reg, Circulation: circ}
	deps := Deps{
		WorkspaceLocator: fakeLocator{root: "/lib"},
		Open:             func(string) (Services, error) { return svc, nil },
		StartDir:         "/lib",
	}
	m := newModel(context.Background(), deps)

	msg := m.Init()()
	next, _ := m.Update(msg)
	return next.(model)
}

// send feeds msg through Update and runs any resulting command until it settles.
func send(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(model)
	for i := 0; cmd != nil && i < 5; i++ {
		out := cmd()
		switch out.(type) {
		case booksLoadedMsg, patronsLoadedMsg, actionDoneMsg, initWorkspaceDoneMsg, workspaceRefreshedMsg:
			next, cmd = m.Update(out)
			m = next.(model)
		default:
			cmd = nil
		}
	}
	return m
}

func typeLine(t *testing.T, m model, s string) model {
	t.Helper()
	if s != "" {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
		m = next.(model)
	}
	return send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestModel_InitFindsWorkspace(t *testing.T) {
	m := testModel(t, &fakeCatalog{}, &fakeRegistry{}, &fakeCirculation{})
	if !m.workspaceFound || m.workspaceRoot != "/lib" {
		t.Fatalf("expected workspace at /lib, got found=%v root=%q", m.workspaceFound, m.workspaceRoot)
	}
	if !m.svc.ready() {
		t.Fatal("expected services to be bound")
	}
	if !strings.Contains(m.View(), "Workspace: /lib") {
		t.Errorf("expected workspace banner in view")
	}
}

func TestModel_AddBookPrompts(t *testing.T) {
	cat := &fakeCatalog{}
	m := testModel(t, cat, &fakeRegistry{}, &fakeCirculation{})

	next, _ := m.open(actAddBook)
	m = next.(model)
	if m.scr != screenForm {
		t.Fatalf("expected form screen, got %v", m.scr)
	}

	m = typeLine(t, m, "Dune")
	m = typeLine(t, m, "Herrick")
	m = typeLine(t, m, "111")
	m = typeLine(t, m, "1")

	if len(cat.added) != 1 {
		t.Fatalf("expected one AddBook call, got %d", len(cat.added))
	}
	got := cat.added[0]
	if got.Title != "Dune" || got.Author != "Herrick" || got.ISBN != "111" || got.Quantity != 1 {
		t.Errorf("unexpected input %+v", got)
	}
	if m.scr != screenHome || m.toastErr || !strings.Contains(m.toast, `Added "Dune"`) {
		t.Errorf("unexpected state scr=%v toast=%q err=%v", m.scr, m.toast, m.toastErr)
	}
}

func TestModel_AddBookRejectsNonNumericQuantity(t *testing.T) {
	cat := &fakeCatalog{}
	m := testModel(t, cat, &fakeRegistry{}, &fakeCirculation{})

	next, _ := m.open(actAddBook)
	m = next.(model)
	for _, v := range []string{"Dune", "Herrick", "111", "one"} {
		m = typeLine(t, m, v)
	}

	if len(cat.added) != 0 {
		t.Fatal("expected AddBook not to be called")
	}
	if !m.toastErr || !strings.HasPrefix(m.toast, "Invalid input") {
		t.Errorf("expected invalid input toast, got %q", m.toast)
	}
}

func TestModel_RequiredFieldBlocksAdvance(t *testing.T) {
	m := testModel(t, &fakeCatalog{}, &fakeRegistry{}, &fakeCirculation{})
	next, _ := m.open(actCheckout)
	m = next.(model)

	m = typeLine(t, m, "")
	if m.form.step != 0 || m.form.hint == "" {
		t.Errorf("expected to stay on first field with a hint, step=%d hint=%q", m.form.step, m.form.hint)
	}
}

func TestModel_RegisterPatronOptionalID(t *testing.T) {
	reg := &fakeRegistry{}
	m := testModel(t, &fakeCatalog{}, reg, &fakeCirculation{})

	next, _ := m.open(actRegisterPatron)
	m = next.(model)
	m = typeLine(t, m, "Ann")
	m = typeLine(t, m, "")
	m = typeLine(t, m, "ann@example.com")

	if len(reg.patrons) != 1 || reg.patrons[0].ID != "generated" {
		t.Fatalf("unexpected patrons %+v", reg.patrons)
	}
	if !strings.Contains(m.toast, "id generated") {
		t.Errorf("unexpected toast %q", m.toast)
	}
}

func TestModel_CheckoutOutOfStockToast(t *testing.T) {
	circ := &fakeCirculation{err: &domain.OpError{
		Op:   "library.checkout",
		Kind: domain.KindOutOfStock,
		Err:  domain.ErrOutOfStock,
	}}
	m := testModel(t, &fakeCatalog{}, &fakeRegistry{}, circ)

	next, _ := m.open(actCheckout)
	m = next.(model)
	m = typeLine(t, m, "111")
	m = typeLine(t, m, "p1")

	if len(circ.got) != 1 || circ.got[0] != "checkout:111:p1" {
		t.Fatalf("unexpected calls %v", circ.got)
	}
	if !m.toastErr || m.toast != "Out of stock" {
		t.Errorf("expected out of stock toast, got %q", m.toast)
	}
}

func TestModel_SearchShowsMatches(t *testing.T) {
	cat := &fakeCatalog{books: []domain.Book{
		{Title: "War and Peace", ISBN: "1", Quantity: 1},
		{Title: "Peace Treaties", ISBN: "2", Quantity: 1},
	}}
	m := testModel(t, cat, &fakeRegistry{}, &fakeCirculation{})

	next, _ := m.open(actSearch)
	m = next.(model)
	m = typeLine(t, m, "war")

	if m.scr != screenBooks || len(m.books) != 1 {
		t.Fatalf("expected one result on books screen, scr=%v books=%v", m.scr, m.books)
	}
	if !strings.Contains(m.View(), "War and Peace") {
		t.Error("expected match in view")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.scr != screenHome {
		t.Errorf("expected esc to go home, got %v", m.scr)
	}
}

func TestModel_NoWorkspaceBlocksActions(t *testing.T) {
	deps := Deps{WorkspaceLocator: fakeLocator{err: errors.New("nope")}, StartDir: "/tmp"}
	m := newModel(context.Background(), deps)
	next, _ := m.Update(m.Init()())
	m = next.(model)

	next, cmd := m.open(actBooks)
	m = next.(model)
	if cmd != nil || !m.toastErr {
		t.Fatalf("expected blocked action with error toast, got cmd=%v toast=%q", cmd != nil, m.toast)
	}
	if !strings.Contains(m.View(), "No workspace found") {
		t.Error("expected no-workspace banner")
	}
}

func TestModel_EnterWhileSubmitting(t *testing.T) {
	circ := &fakeCirculation{}
	m := testModel(t, &fakeCatalog{}, &fakeRegistry{}, circ)

	next, _ := m.open(actCheckout)
	m = next.(model)
	m = typeLine(t, m, "111")

	// Submit the last field without running the command, so the checkout is in flight.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p1")})
	m = next.(model)
	next, submit := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if submit == nil || !m.busy || !m.form.done() {
		t.Fatalf("expected pending submit, busy=%v done=%v", m.busy, m.form.done())
	}

	s := wrapSafe(m, nil)
	for _, k := range []tea.KeyMsg{{Type: tea.KeyEnter}, {Type: tea.KeyRunes, Runes: []rune("x")}, {Type: tea.KeyEsc}} {
		out, cmd := s.Update(k)
		s = out.(safeModel)
		if cmd != nil {
			t.Fatalf("expected key %q to be ignored while submitting", k.String())
		}
	}
	if s.m.toastErr {
		t.Fatalf("unexpected error toast %q", s.m.toast)
	}

	out, _ := s.Update(submit())
	s = out.(safeModel)
	if len(circ.got) != 1 {
		t.Fatalf("expected exactly one checkout, got %v", circ.got)
	}
	if s.m.toastErr || s.m.scr != screenHome || s.m.busy {
		t.Errorf("expected successful checkout toast, got scr=%v toast=%q err=%v", s.m.scr, s.m.toast, s.m.toastErr)
	}
}

func TestForm_IgnoresInputAfterSubmit(t *testing.T) {
	calls := 0
	f := newForm("One", []formField{{label: "Name"}}, func([]string) tea.Cmd {
		calls++
		return nil
	})
	f.input.SetValue("Ann")

	f, _ = f.update(tea.KeyMsg{Type: tea.KeyEnter})
	f, cmd := f.update(tea.KeyMsg{Type: tea.KeyEnter})

	if calls != 1 || cmd != nil {
		t.Fatalf("expected a single submit, calls=%d cmd=%v", calls, cmd != nil)
	}
}

func TestSafeModel_RecoversPanic(t *testing.T) {
	m := testModel(t, &fakeCatalog{}, &fakeRegistry{}, &fakeCirculation{})
	m.scr = screenForm
	m.form = newForm("Broken", []formField{{label: "Note", optional: true}}, func([]string) tea.Cmd {
		panic("submit exploded")
	})
	s := wrapSafe(m, nil)

	next, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sm, ok := next.(safeModel)
	if !ok {
		t.Fatalf("expected safeModel, got %T", next)
	}
	if cmd != nil {
		t.Error("expected no command after a recovered panic")
	}
	if sm.m.scr != screenHome || !sm.m.toastErr {
		t.Errorf("expected recovery to home with error toast, got scr=%v toast=%q", sm.m.scr, sm.m.toast)
	}
}
