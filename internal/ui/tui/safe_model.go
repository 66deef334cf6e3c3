package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

// safeModel recovers panics in Update/View, logs them and returns to the home screen.
type safeModel struct {
	m   model
	log *slog.Logger
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		next tea.Model = s
		cmd  tea.Cmd
	)

	ok := s.guard("tui.update", msg, func() {
		inner, c := s.m.Update(msg)
		if mm, isModel := inner.(model); isModel {
			next = safeModel{m: mm, log: s.log}
		}
		cmd = c
	})
	if !ok {
		s.m.scr = screenHome
		s.m.busy = false
		s.m.toast = "Unexpected error (see logs)"
		s.m.toastErr = true
		return s, nil
	}
	return next, cmd
}

func (s safeModel) View() string {
	var out string
	if !s.guard("tui.view", nil, func() { out = s.m.View() }) {
		return "Unexpected error (see logs)"
	}
	return out
}

// guard runs fn and reports false if it panicked, logging the panic and stack.
func (s safeModel) guard(where string, msg tea.Msg, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic.recovered",
				"where", where,
				"msg_type", fmt.Sprintf("%T", msg),
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			ok = false
		}
	}()
	fn()
	return true
}

var _ tea.Model = safeModel{}
