package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/shelf/internal/domain"
)

type screen int

const (
	screenHome screen = iota
	screenBooks
	screenPatrons
	screenForm
)

type action int

const (
	actBooks action = iota
	actPatrons
	actSearch
	actAddBook
	actRegisterPatron
	actCheckout
	actReturn
	actInitWorkspace
	actQuit
)

type menuItem struct {
	title string
	desc  string
	act   action
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type model struct {
	ctx   context.Context
	theme Theme
	deps  Deps
	log   *slog.Logger

	scr  screen
	menu list.Model
	form form
	busy bool

	toast    string
	toastErr bool

	workspaceFound bool
	workspaceRoot  string
	cwd            string
	svc            Services

	listTitle string
	books     []domain.Book
	patrons   []domain.Patron
}

func Run(ctx context.Context, deps Deps) error {
	m := newModel(ctx, deps)
	p := tea.NewProgram(wrapSafe(m, m.log), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func newModel(ctx context.Context, deps Deps) model {
	if ctx == nil {
		ctx = context.Background()
	}
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	items := []list.Item{
		menuItem{"Books", "Browse the catalog", actBooks},
		menuItem{"Patrons", "Browse registered patrons", actPatrons},
		menuItem{"Search", "Find books by title", actSearch},
		menuItem{"Add book", "Title, author, ISBN, quantity", actAddBook},
		menuItem{"Register patron", "Name, ID, contact", actRegisterPatron},
		menuItem{"Checkout", "Lend a book to a patron", actCheckout},
		menuItem{"Return", "Take a borrowed book back", actReturn},
		menuItem{"Init workspace", "Create shelf.yaml and an empty library here", actInitWorkspace},
		menuItem{"Quit", "Exit shelf", actQuit},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "shelf"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		ctx:   ctx,
		theme: DefaultTheme(),
		deps:  deps,
		log:   log.With("component", "tui"),
		scr:   screenHome,
		menu:  l,
	}
}

func (m model) Init() tea.Cmd { return cmdRefreshWorkspace(m.deps) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.menu.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case workspaceRefreshedMsg:
		m.cwd = msg.cwd
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		m.svc = msg.svc
		if msg.err != nil && msg.found {
			m.setError(msg.err)
		}
		if msg.err != nil {
			m.log.Info("workspace.refresh", "found", msg.found, "err", msg.err)
		}
		return m, nil

	case initWorkspaceDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.workspaceFound = true
		m.workspaceRoot = msg.root
		m.svc = msg.svc
		m.setToast("Workspace created at " + msg.root)
		return m, nil

	case booksLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(msg.err)
			m.scr = screenHome
			return m, nil
		}
		m.listTitle = msg.title
		m.books = msg.books
		m.scr = screenBooks
		return m, nil

	case patronsLoadedMsg:
		m.busy = false
		if msg.err != nil {
			m.setError(msg.err)
			m.scr = screenHome
			return m, nil
		}
		m.patrons = msg.patrons
		m.scr = screenPatrons
		return m, nil

	case actionDoneMsg:
		m.busy = false
		m.scr = screenHome
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.setToast(msg.text)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// Keys are dropped until the pending command reports back.
		if m.busy {
			return m, nil
		}
		if m.scr == screenForm {
			if msg.String() == "esc" {
				m.scr = screenHome
				return m, nil
			}
			var cmd tea.Cmd
			m.form, cmd = m.form.update(msg)
			if m.form.done() {
				m.busy = true
			}
			return m, cmd
		}

		switch msg.String() {
		case "q":
			if m.scr == screenHome && !m.menu.SettingFilter() {
				return m, tea.Quit
			}
			if m.scr != screenHome {
				m.scr = screenHome
				return m, nil
			}
		case "esc", "b":
			if m.scr != screenHome {
				m.scr = screenHome
				return m, nil
			}
		case "enter":
			if m.scr == screenHome && !m.menu.SettingFilter() {
				it, ok := m.menu.SelectedItem().(menuItem)
				if !ok {
					return m, nil
				}
				return m.open(it.act)
			}
		}
	}

	if m.scr == screenForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	if m.scr == screenHome {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m, nil
}

// open dispatches a menu action.
func (m model) open(a action) (tea.Model, tea.Cmd) {
	m.toast = ""

	switch a {
	case actQuit:
		return m, tea.Quit
	case actInitWorkspace:
		if m.workspaceFound {
			m.setToast("Workspace already open at " + m.workspaceRoot)
			return m, nil
		}
		root := m.cwd
		if root == "" {
			root = "."
		}
		m.busy = true
		return m, cmdInitWorkspaceHere(m.deps, root)
	}

	if !m.svc.ready() {
		m.toastErr = true
		m.toast = "No workspace open (choose Init workspace)"
		return m, nil
	}

	switch a {
	case actBooks:
		m.busy = true
		return m, cmdLoadBooks(m.ctx, m.svc)
	case actPatrons:
		m.busy = true
		return m, cmdLoadPatrons(m.ctx, m.svc)
	case actSearch:
		return m.startForm("Search books", []formField{
			{label: "Title contains", placeholder: "war"},
		}, func(v []string) tea.Cmd { return cmdSearchBooks(m.ctx, m.svc, v[0]) })
	case actAddBook:
		return m.startForm("Add book", []formField{
			{label: "Title", placeholder: "Dune"},
			{label: "Author", placeholder: "Frank Herbert"},
			{label: "ISBN", placeholder: "9780441013593"},
			{label: "Quantity", placeholder: "1"},
		}, func(v []string) tea.Cmd { return cmdAddBook(m.ctx, m.svc, m.log, v) })
	case actRegisterPatron:
		return m.startForm("Register patron", []formField{
			{label: "Name", placeholder: "Ann Smith"},
			{label: "ID", placeholder: "leave blank to generate", optional: true},
			{label: "Contact", placeholder: "ann@example.com", optional: true},
		}, func(v []string) tea.Cmd { return cmdRegisterPatron(m.ctx, m.svc, m.log, v) })
	case actCheckout:
		return m.startForm("Checkout", []formField{
			{label: "ISBN"},
			{label: "Patron ID"},
		}, func(v []string) tea.Cmd { return cmdCheckout(m.ctx, m.svc, m.log, v) })
	case actReturn:
		return m.startForm("Return", []formField{
			{label: "ISBN"},
			{label: "Patron ID"},
		}, func(v []string) tea.Cmd { return cmdReturn(m.ctx, m.svc, m.log, v) })
	}
	return m, nil
}

func (m model) startForm(title string, fields []formField, submit func([]string) tea.Cmd) (tea.Model, tea.Cmd) {
	m.form = newForm(title, fields, submit)
	m.scr = screenForm
	return m, m.form.input.Focus()
}

func (m *model) setToast(s string) {
	m.toast = s
	m.toastErr = false
}

func (m *model) setError(err error) {
	m.toast = userMessage(err)
	m.toastErr = true
	m.log.Warn("tui.error", "err", err)
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("shelf") + "\n" +
		m.theme.Subtitle.Render("library catalog, patrons and loans") + "\n"

	var banner string
	if m.workspaceFound {
		banner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		banner = m.theme.Card.Render("No workspace found.\n\nChoose Init workspace to create one here.")
	}

	var body, help string
	switch m.scr {
	case screenHome:
		body = m.menu.View()
		help = "↑/↓ navigate • enter open • / filter • q quit"
	case screenBooks:
		body = m.theme.Title.Render(m.listTitle) + "\n\n" + renderBooks(m.theme, m.books)
		help = "esc/b back • q home"
	case screenPatrons:
		body = m.theme.Title.Render("Patrons") + "\n\n" + renderPatrons(m.theme, m.patrons)
		help = "esc/b back • q home"
	case screenForm:
		body = m.form.view(m.theme)
		help = "enter next • esc cancel"
	default:
		body = "unknown state"
	}

	out := header + "\n" + banner + "\n\n" + m.theme.Card.Render(body) + "\n"
	if m.busy {
		out += m.theme.Subtitle.Render("working…") + "\n"
	}
	if m.toast != "" {
		style := m.theme.Success
		if m.toastErr {
			style = m.theme.Error
		}
		out += style.Render(m.toast) + "\n"
	}
	out += m.theme.Help.Render(help)
	return wrap.Render(out)
}
