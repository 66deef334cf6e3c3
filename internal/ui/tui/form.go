package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type formField struct {
	label       string
	placeholder string
	optional    bool
}

// form asks for one field at a time, like a sequence of console prompts.
type form struct {
	title  string
	fields []formField
	values []string
	step   int
	input  textinput.Model
	hint   string
	submit func(vals []string) tea.Cmd
}

func newForm(title string, fields []formField, submit func([]string) tea.Cmd) form {
	in := textinput.New()
	in.CharLimit = 200
	in.Width = 40

	f := form{
		title:  title,
		fields: fields,
		values: make([]string, len(fields)),
		input:  in,
		submit: submit,
	}
	f.prepare()
	return f
}

func (f *form) prepare() {
	f.input.Reset()
	f.input.Placeholder = f.fields[f.step].placeholder
	f.input.Prompt = f.fields[f.step].label + ": "
	f.input.Focus()
}

func (f form) done() bool { return f.step >= len(f.fields) }

// update consumes a message and returns the submit command once the last field is
// entered. A submitted form ignores further input.
func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	if f.done() {
		return f, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEnter {
		v := strings.TrimSpace(f.input.Value())
		field := f.fields[f.step]
		if v == "" && !field.optional {
			f.hint = field.label + " is required"
			return f, nil
		}

		f.hint = ""
		f.values[f.step] = v
		f.step++
		if f.done() {
			f.input.Blur()
			return f, f.submit(append([]string(nil), f.values...))
		}
		f.prepare()
		return f, textinput.Blink
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f form) view(t Theme) string {
	var b strings.Builder
	b.WriteString(t.Title.Render(f.title))
	b.WriteString("\n\n")

	for i := 0; i < f.step && i < len(f.fields); i++ {
		v := f.values[i]
		if v == "" {
			v = "(blank)"
		}
		b.WriteString(t.Subtitle.Render(f.fields[i].label + ": " + clampString(v, 40)))
		b.WriteString("\n")
	}
	if !f.done() {
		b.WriteString(f.input.View())
		b.WriteString("\n")
	}
	if f.hint != "" {
		b.WriteString("\n")
		b.WriteString(t.Error.Render(f.hint))
		b.WriteString("\n")
	}
	return b.String()
}
