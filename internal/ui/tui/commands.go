package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/shelf/internal/domain"
	"github.com/aalvaropc/shelf/internal/usecase"
)

const opTimeout = 10 * time.Second

func startDir(deps Deps) (string, error) {
	if deps.StartDir != "" {
		return deps.StartDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return wd, nil
}

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := startDir(deps)
		if err != nil {
			return workspaceRefreshedMsg{err: err}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, err: findErr}
		}

		svc, openErr := openServices(deps, root)
		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, svc: svc, err: openErr}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		uc := usecase.NewInitWorkspace(deps.WorkspaceInitializer)
		abs, err := uc.Execute(root, false)
		if err != nil {
			return initWorkspaceDoneMsg{root: root, err: err}
		}

		svc, err := openServices(deps, abs)
		return initWorkspaceDoneMsg{root: abs, svc: svc, err: err}
	}
}

func openServices(deps Deps, root string) (Services, error) {
	if deps.Open == nil {
		return Services{}, errors.New("workspace opener is nil")
	}
	return deps.Open(root)
}

func cmdLoadBooks(ctx context.Context, svc Services) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()

		books, err := svc.Catalog.ListBooks(ctx)
		return booksLoadedMsg{title: "Books", books: books, err: err}
	}
}

func cmdSearchBooks(ctx context.Context, svc Services, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()

		books, err := svc.Catalog.SearchBooks(ctx, query)
		return booksLoadedMsg{title: fmt.Sprintf("Search: %q", query), books: books, err: err}
	}
}

func cmdLoadPatrons(ctx context.Context, svc Services) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()

		patrons, err := svc.Registry.ListPatrons(ctx)
		return patronsLoadedMsg{patrons: patrons, err: err}
	}
}

// cmdAddBook takes values in prompt order: title, author, isbn, quantity.
func cmdAddBook(ctx context.Context, svc Services, log *slog.Logger, vals []string) tea.Cmd {
	return func() tea.Msg {
		n, err := usecase.ParseQuantity(vals[3])
		if err != nil {
			return actionDoneMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()

		b, err := svc.Catalog.AddBook(ctx, usecase.AddBookInput{
			Title:    vals[0],
			Author:   vals[1],
			ISBN:     vals[2],
			Quantity: n,
		})
		if err != nil {
			log.Warn("tui.add_book.failed", "err", err)
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{text: fmt.Sprintf("Added %q (%d on hand)", b.Title, b.Quantity)}
	}
}

// cmdRegisterPatron takes values in prompt order: name, id, contact.
func cmdRegisterPatron(ctx context.Context, svc Services, log *slog.Logger, vals []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()

		p, err := svc.Registry.RegisterPatron(ctx, usecase.RegisterPatronInput{
			Name:    vals[0],
			ID:      vals[1],
			Contact: vals[2],
		})
		if err != nil {
			log.Warn("tui.register_patron.failed", "err", err)
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{text: fmt.Sprintf("Registered %s (id %s)", p.Name, p.ID)}
	}
}

func cmdCheckout(ctx context.Context, svc Services, log *slog.Logger, vals []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()

		t, err := svc.Circulation.Checkout(ctx, vals[0], vals[1])
		if err != nil {
			log.Warn("tui.checkout.failed", "err", err)
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{text: fmt.Sprintf("Checked out, due %s", dueDate(t))}
	}
}

func cmdReturn(ctx context.Context, svc Services, log *slog.Logger, vals []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()

		if _, err := svc.Circulation.Return(ctx, vals[0], vals[1]); err != nil {
			log.Warn("tui.return.failed", "err", err)
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{text: "Returned " + vals[0]}
	}
}

func dueDate(t *domain.Transaction) string {
	if t == nil || t.DueDate == nil {
		return "-"
	}
	return t.DueDate.Format(time.DateOnly)
}
