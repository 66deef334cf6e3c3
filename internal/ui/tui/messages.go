package tui

import "github.com/aalvaropc/shelf/internal/domain"

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	svc   Services
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	svc  Services
	err  error
}

type booksLoadedMsg struct {
	title string
	books []domain.Book
	err   error
}

type patronsLoadedMsg struct {
	patrons []domain.Patron
	err     error
}

// actionDoneMsg reports a mutating operation; text is shown as a toast on success.
type actionDoneMsg struct {
	text string
	err  error
}
