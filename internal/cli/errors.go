package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/aalvaropc/shelf/internal/domain"
)

// userMessage turns an error into a one-line message for the terminal.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		return err.Error()
	}

	switch oe.Kind {
	case domain.KindOutOfStock:
		return "out of stock: " + cause(oe)
	case domain.KindNotBorrowed:
		return "not borrowed: " + cause(oe)
	case domain.KindNotFound:
		if oe.Path != "" {
			if strings.HasPrefix(oe.Op, "workspacefinder.") {
				return "file not found: " + oe.Path + " (tip: run `shelf init`)"
			}
			return "file not found: " + oe.Path
		}
		return "not found in library: " + cause(oe)
	case domain.KindConflict:
		return "already exists: " + cause(oe)
	case domain.KindInvalidInput:
		return "invalid input: " + cause(oe)
	case domain.KindInvalidConfig:
		return "invalid shelf.yaml: " + cause(oe)
	case domain.KindInvalidData:
		return "library file is damaged: " + cause(oe)
	default:
		return err.Error()
	}
}

func cause(oe *domain.OpError) string {
	if oe.Err == nil {
		return string(oe.Kind)
	}
	return oe.Err.Error()
}
