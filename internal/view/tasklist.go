package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Makepad-fr/contactbook/internal/tasks"
	"github.com/Makepad-fr/contactbook/internal/ui"
	"github.com/Makepad-fr/contactbook/internal/validation"
)

// taskItem adapts a stored task to bubbles/list.Item.
type taskItem struct {
	tasks.Entry
}

func (i taskItem) Title() string       { return i.Task.Title }
func (i taskItem) Description() string { return "" }
func (i taskItem) FilterValue() string { return i.Task.Title }

// Custom delegate to control how items render (single line).
type taskDelegate struct{}

func (d taskDelegate) Height() int                               { return 1 }
func (d taskDelegate) Spacing() int                              { return 0 }
func (d taskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(taskItem)
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	text := it.Task.Title
	if it.Task.Done {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}

type taskList struct {
	env  Env
	list list.Model

	// Inline add
	adding bool
	ti     textinput.Model // shared by add & edit
	err    string

	// Inline edit
	editing bool
	editKey string

	confirming bool

	// Undo support (single-level)
	undo      *taskItem
	undoIndex int
}

func newTaskList(env Env) Page {
	env.Log.Debug("page", zap.String("route", env.Route.String()))
	p := &taskList{env: env}

	entries, err := env.Tasks.All()
	if err != nil {
		env.Log.Error("list tasks", zap.Error(err))
		p.err = err.Error()
	}
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, taskItem{e})
	}

	l := list.New(items, taskDelegate{}, 60, 12)
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.PaginationStyle = ui.Current().Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	undoBind := key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, editBind, undoBind} }
	p.list = l
	p.retitle()

	p.ti = textinput.New()
	p.ti.Prompt = "> "
	p.ti.CharLimit = 200
	p.ti.Cursor.SetMode(cursor.CursorStatic)
	return p
}

// retitle refreshes the header counts.
func (p *taskList) retitle() {
	var entries []tasks.Entry
	for _, it := range p.list.Items() {
		if ti, ok := it.(taskItem); ok {
			entries = append(entries, ti.Entry)
		}
	}
	t := ui.Current()
	dn, pn := tasks.Stats(entries)
	p.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		"Tasks",
		t.Success.Render("✔"), dn,
		t.Pending.Render("•"), pn,
		t.Accent.Render("Total"), len(entries),
	)
}

func (p *taskList) Init() tea.Cmd { return nil }

// current returns the selected task and its position among all items, which
// differs from the cursor position while a filter is applied.
func (p *taskList) current() (int, taskItem, bool) {
	it, ok := p.list.SelectedItem().(taskItem)
	if !ok {
		return -1, taskItem{}, false
	}
	i := p.indexOf(it.Key)
	return i, it, i >= 0
}

func (p *taskList) indexOf(key string) int {
	for i, li := range p.list.Items() {
		if it, ok := li.(taskItem); ok && it.Key == key {
			return i
		}
	}
	return -1
}

// refilter applies the filter command a list mutation returns so the visible
// items match the stored ones before the next key arrives.
func (p *taskList) refilter(cmd tea.Cmd) {
	if cmd != nil {
		if msg, ok := cmd().(list.FilterMatchesMsg); ok {
			p.list, _ = p.list.Update(msg)
		}
	}
	if p.list.FilterState() == list.FilterApplied && len(p.list.VisibleItems()) == 0 {
		p.list.ResetFilter()
	}
	if n := len(p.list.VisibleItems()); p.list.Index() >= n {
		p.list.Select(max(n-1, 0))
	}
}

func (p *taskList) Update(msg tea.Msg) (Page, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		p.list.SetSize(ws.Width-4, max(ws.Height-16, 5))
		return p, nil
	}

	if p.adding || p.editing {
		return p, p.updateInput(msg)
	}

	k, ok := msg.(tea.KeyMsg)
	if ok && p.confirming {
		p.confirming = false
		if k.String() == "y" || k.String() == "Y" {
			p.remove()
		}
		return p, nil
	}
	if ok && p.list.FilterState() != list.Filtering {
		switch k.String() {
		case " ":
			if i, it, ok := p.current(); ok {
				it.Task.Done = !it.Task.Done
				if p.save(it) {
					p.refilter(p.list.SetItem(i, it))
					p.retitle()
				}
			}
			return p, nil
		case "d", "delete":
			if _, _, ok := p.current(); ok {
				p.confirming = true
			}
			return p, nil
		case "a":
			p.adding = true
			p.err = ""
			p.ti.SetValue("")
			p.ti.Placeholder = "New task..."
			return p, p.ti.Focus()
		case "e":
			if _, it, ok := p.current(); ok {
				p.editing = true
				p.editKey = it.Key
				p.err = ""
				p.ti.SetValue(it.Task.Title)
				p.ti.CursorEnd()
				p.ti.Placeholder = "Edit task..."
				return p, p.ti.Focus()
			}
			return p, nil
		case "u":
			if p.undo != nil && p.save(*p.undo) {
				idx := min(max(p.undoIndex, 0), len(p.list.Items()))
				p.refilter(p.list.InsertItem(idx, *p.undo))
				p.undo = nil
				p.retitle()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p *taskList) updateInput(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			text := p.ti.Value()
			if m := p.env.Validate.Check(validation.Task, text); m != "" {
				p.err = m
				return nil
			}
			if p.adding {
				e, err := p.env.Tasks.Add(text)
				if err != nil {
					p.err = err.Error()
					return nil
				}
				p.refilter(p.list.InsertItem(len(p.list.Items()), taskItem{e}))
				if p.list.FilterState() == list.Unfiltered {
					p.list.Select(len(p.list.Items()) - 1)
				}
			} else if i := p.indexOf(p.editKey); i >= 0 {
				it := p.list.Items()[i].(taskItem)
				it.Task.Title = strings.TrimSpace(text)
				if !p.save(it) {
					return nil
				}
				p.refilter(p.list.SetItem(i, it))
			}
			p.retitle()
			p.closeInput()
			return nil
		case "esc":
			p.closeInput()
			return nil
		}
	}
	var cmd tea.Cmd
	p.ti, cmd = p.ti.Update(msg)
	return cmd
}

func (p *taskList) closeInput() {
	p.adding, p.editing = false, false
	p.err = ""
	p.ti.SetValue("")
	p.ti.Blur()
}

func (p *taskList) save(it taskItem) bool {
	if err := p.env.Tasks.Put(it.Entry); err != nil {
		p.env.Log.Error("save task", zap.Error(err))
		p.err = err.Error()
		return false
	}
	return true
}

func (p *taskList) remove() {
	i, it, ok := p.current()
	if !ok {
		return
	}
	if err := p.env.Tasks.Remove(it.Key); err != nil {
		p.env.Log.Error("remove task", zap.Error(err))
		p.err = err.Error()
		return
	}
	tmp := it
	p.undo = &tmp
	p.undoIndex = i
	items := append([]list.Item(nil), p.list.Items()[:i]...)
	items = append(items, p.list.Items()[i+1:]...)
	p.refilter(p.list.SetItems(items))
	p.retitle()
}

func (p *taskList) View() string {
	t := ui.Current()
	out := p.list.View()
	if len(p.list.Items()) == 0 {
		out = p.list.Title + "\n\n" + t.Muted.Render("no tasks")
	}
	if p.adding || p.editing {
		title := "Add new task"
		if p.editing {
			title = "Edit task"
		}
		if p.err != "" {
			title += " - " + t.Error.Render(p.err)
		}
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		out += "\n" + bar.Render(title+"\n"+p.ti.View())
	} else if p.err != "" {
		out += "\n" + t.Error.Render(p.err)
	}
	if p.confirming {
		out += "\n" + t.Pending.Render("Are you sure? (y/n)")
	}
	return out
}

func (p *taskList) Capturing() bool {
	return p.adding || p.editing || p.confirming || p.list.FilterState() == list.Filtering
}

func (p *taskList) Help() string {
	return "a add • e edit • space toggle • d delete • u undo • / filter"
}
