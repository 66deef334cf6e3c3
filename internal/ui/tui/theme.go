package tui

import "github.com/charmbracelet/lipgloss"

// Palette colors (ANSI 256).
const (
	colorBorder  = lipgloss.Color("30")
	colorOK      = lipgloss.Color("42")
	colorFailure = lipgloss.Color("203")
	colorWarn    = lipgloss.Color("214")
)

// Theme groups the styles the views render with. Success/Error color the toast
// line; Overdue marks late loans in lists.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Overdue  lipgloss.Style
}

func DefaultTheme() Theme {
	faint := lipgloss.NewStyle().Faint(true)
	card := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder)

	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Underline(true),
		Subtitle: faint,
		Help:     faint.Italic(true),
		Card:     card,
		Success:  lipgloss.NewStyle().Foreground(colorOK),
		Error:    lipgloss.NewStyle().Foreground(colorFailure).Bold(true),
		Overdue:  lipgloss.NewStyle().Foreground(colorWarn).Bold(true),
	}
}
