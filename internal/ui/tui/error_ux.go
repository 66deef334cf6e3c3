package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/shelf/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// userMessage maps an error to a short toast.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		return "Unexpected error (see logs)"
	}

	msg := err.Error()
	switch oe.Kind {
	case domain.KindOutOfStock:
		return "Out of stock"

	case domain.KindNotBorrowed:
		return "That patron has not borrowed this book"

	case domain.KindNotFound:
		switch {
		case strings.Contains(oe.Op, "workspacefinder"):
			if oe.Path != "" {
				return filepath.Base(oe.Path) + " not found"
			}
			return "Workspace not found"
		case oe.Entity == domain.EntityPatron:
			return "Patron not found in library"
		case oe.Entity == domain.EntityBook:
			return "Book not found in library"
		case oe.Path != "":
			return "File not found: " + filepath.Base(oe.Path)
		}
		return "Not found"

	case domain.KindConflict:
		switch oe.Entity {
		case domain.EntityPatron:
			return "A patron with that ID already exists"
		case domain.EntityBook:
			return "A book with that ISBN already exists"
		}
		return "Already exists"

	case domain.KindInvalidInput:
		if oe.Err != nil {
			return "Invalid input: " + strings.TrimSuffix(oe.Err.Error(), ": "+domain.ErrInvalidInput.Error())
		}
		return "Invalid input"

	case domain.KindInvalidData:
		return "Library file is damaged (see logs)"

	case domain.KindInvalidConfig:
		base := "shelf.yaml"
		if strings.TrimSpace(oe.Path) != "" {
			base = filepath.Base(oe.Path)
		}
		if line := extractLine(msg); line != "" {
			return "Invalid YAML at " + base + " line " + line
		}
		return "Invalid config in " + base

	default:
		return "Unexpected error (see logs)"
	}
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
