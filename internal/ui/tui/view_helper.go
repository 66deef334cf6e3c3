package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/shelf/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "…"
}

func renderBooks(t Theme, books []domain.Book) string {
	if len(books) == 0 {
		return t.Subtitle.Render("(no books)")
	}

	var b strings.Builder
	for _, bk := range books {
		qty := fmt.Sprintf("qty %d", bk.Quantity)
		if !bk.Available() {
			qty = t.Error.Render("out of stock")
		}
		fmt.Fprintf(&b, "%-14s %-36s %-22s %s\n",
			clampString(bk.ISBN, 14),
			clampString(bk.Title, 36),
			clampString(bk.Author, 22),
			qty,
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPatrons(t Theme, patrons []domain.Patron) string {
	if len(patrons) == 0 {
		return t.Subtitle.Render("(no patrons)")
	}

	var b strings.Builder
	for _, p := range patrons {
		fmt.Fprintf(&b, "%-12s %-24s %-28s borrowed %d\n",
			clampString(p.ID, 12),
			clampString(p.Name, 24),
			clampString(p.Contact, 28),
			len(p.Borrowed),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}
