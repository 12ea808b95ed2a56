package view

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/contactbook/internal/ui"
	"github.com/Makepad-fr/contactbook/internal/validation"
)

// field describes one text input of a form.
type field struct {
	label    string
	check    *validation.Field
	password bool
}

// form is a column of text inputs followed by a row of buttons. Focus moves
// with tab/shift+tab (or up/down); leaving an input checks it first and keeps
// focus there with a message when the value is rejected.
type form struct {
	fields  []field
	inputs  []textinput.Model
	buttons []string
	focus   int
	msg     string
	v       *validation.Validator
}

func newForm(v *validation.Validator, fields []field, buttons ...string) form {
	f := form{fields: fields, buttons: buttons, v: v}
	for _, fd := range fields {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 200
		ti.Placeholder = fd.label
		ti.Cursor.SetMode(cursor.CursorStatic)
		if fd.password {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		f.inputs = append(f.inputs, ti)
	}
	f.focusOn(0)
	return f
}

// focusOn moves focus to control i.
func (f *form) focusOn(i int) tea.Cmd {
	n := len(f.inputs) + len(f.buttons)
	if n == 0 {
		return nil
	}
	f.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

// input returns the focused input index, or -1 when a button has focus.
func (f *form) input() int {
	if f.focus < len(f.inputs) {
		return f.focus
	}
	return -1
}

// button returns the focused button index, or -1.
func (f *form) button() int {
	if f.focus >= len(f.inputs) {
		return f.focus - len(f.inputs)
	}
	return -1
}

// check validates input i; on failure it records the message.
func (f *form) check(i int) bool {
	fd := f.fields[i]
	if fd.check == nil || f.v == nil {
		return true
	}
	if msg := f.v.Check(*fd.check, f.inputs[i].Value()); msg != "" {
		f.msg = msg
		return false
	}
	f.msg = ""
	return true
}

// checkAll validates every input and focuses the first rejected one.
func (f *form) checkAll() bool {
	for i := range f.inputs {
		if !f.check(i) {
			f.focusOn(i)
			f.inputs[i].CursorEnd()
			return false
		}
	}
	return true
}

func (f *form) move(delta int) tea.Cmd {
	if i := f.input(); i >= 0 && !f.check(i) {
		f.inputs[i].CursorEnd()
		return nil
	}
	return f.focusOn(f.focus + delta)
}

// update handles navigation keys and feeds the rest to the focused input.
// pressed is the index of an activated button, or -1.
func (f *form) update(msg tea.Msg) (pressed int, cmd tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab", "down":
			return -1, f.move(1)
		case "shift+tab", "up":
			return -1, f.move(-1)
		case "enter":
			if b := f.button(); b >= 0 {
				return b, nil
			}
			return -1, f.move(1)
		}
	}
	if i := f.input(); i >= 0 {
		f.inputs[i], cmd = f.inputs[i].Update(msg)
	}
	return -1, cmd
}

func (f *form) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

func (f *form) set(i int, v string) {
	f.inputs[i].SetValue(v)
}

func (f *form) reset() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.msg = ""
	return f.focusOn(0)
}

func (f *form) view() string {
	t := ui.Current()
	var b strings.Builder
	for i, in := range f.inputs {
		label := f.fields[i].label
		if i == f.focus {
			label = t.Accent.Render(label)
		}
		b.WriteString(label + "\n" + in.View() + "\n")
	}
	b.WriteString("\n")
	btns := make([]string, len(f.buttons))
	for i, s := range f.buttons {
		s = "[ " + s + " ]"
		if f.button() == i {
			s = t.Selected.Render(s)
		}
		btns[i] = s
	}
	b.WriteString(strings.Join(btns, "  "))
	if f.msg != "" {
		b.WriteString("\n\n" + t.Error.Render(f.msg))
	}
	return b.String()
}
