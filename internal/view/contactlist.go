package view

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Makepad-fr/contactbook/internal/contacts"
	"github.com/Makepad-fr/contactbook/internal/route"
	"github.com/Makepad-fr/contactbook/internal/ui"
)

// contactList shows every stored contact with edit, delete and add actions.
type contactList struct {
	env        Env
	entries    []contacts.Entry
	table      table.Model
	confirming bool
	msg        string
}

func newContactList(env Env) Page {
	env.Log.Debug("page", zap.String("route", env.Route.String()))
	p := &contactList{env: env}

	entries, err := env.Contacts.List()
	if err != nil {
		env.Log.Error("list contacts", zap.Error(err))
		p.msg = err.Error()
	}
	p.entries = entries

	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			e.Contact.FullName,
			e.Contact.ContactNumber,
			e.Contact.EmailAddress,
		})
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Full Name", Width: 22},
			{Title: "Contact Number", Width: 18},
			{Title: "Email Address", Width: 28},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 12)),
	)
	s := table.DefaultStyles()
	s.Selected = ui.Current().Selected
	t.SetStyles(s)
	p.table = t
	return p
}

func (p *contactList) Init() tea.Cmd { return nil }

// selected returns the key of the highlighted row.
func (p *contactList) selected() (string, bool) {
	i := p.table.Cursor()
	if i < 0 || i >= len(p.entries) {
		return "", false
	}
	return p.entries[i].Key, true
}

func (p *contactList) Update(msg tea.Msg) (Page, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if ok && p.confirming {
		p.confirming = false
		if k.String() == "y" || k.String() == "Y" {
			if key, ok := p.selected(); ok {
				if err := p.env.Contacts.Remove(key); err != nil {
					p.env.Log.Error("remove contact", zap.Error(err))
				}
			}
		}
		// Reload the list whatever the answer.
		return p, p.env.Nav.Go(route.ContactList, "")
	}
	if ok {
		switch k.String() {
		case "a":
			return p, p.env.Nav.Go(route.Edit, AddData)
		case "e", "enter":
			if key, ok := p.selected(); ok {
				return p, p.env.Nav.Go(route.Edit, key)
			}
			return p, nil
		case "d", "delete":
			if _, ok := p.selected(); ok {
				p.confirming = true
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

func (p *contactList) View() string {
	t := ui.Current()
	out := ""
	if len(p.entries) == 0 {
		out = t.Muted.Render("no contacts")
	} else {
		out = p.table.View()
	}
	if p.confirming {
		out += "\n\n" + t.Pending.Render("Are you sure? (y/n)")
	}
	if p.msg != "" {
		out += "\n\n" + t.Error.Render(p.msg)
	}
	return out
}

func (p *contactList) Capturing() bool { return p.confirming }

func (p *contactList) Help() string { return "↑/↓ select • a add • e edit • d delete" }
