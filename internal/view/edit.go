package view

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Makepad-fr/contactbook/internal/codec"
	"github.com/Makepad-fr/contactbook/internal/model"
	"github.com/Makepad-fr/contactbook/internal/route"
	"github.com/Makepad-fr/contactbook/internal/store"
	"github.com/Makepad-fr/contactbook/internal/ui"
)

// AddData is the link data that opens the edit view in add mode. Any other
// value is the storage key of the contact to edit.
const AddData = "add"

const msgNotFound = "Contact not found."

const (
	btnSave = iota
	btnCancel
)

type edit struct {
	env  Env
	form form
	add  bool
	key  string
	// loaded is false when the key named no stored contact; such a form is
	// never saved.
	loaded bool
}

func newEdit(env Env) Page {
	env.Log.Debug("page", zap.String("route", env.Route.String()), zap.String("data", env.Data))
	p := &edit{env: env, add: env.Data == AddData, key: env.Data}
	if p.add {
		p.form = newForm(env.Validate, contactFields(), "Add", "Cancel")
		return p
	}
	p.form = newForm(env.Validate, contactFields(), "Edit", "Cancel")
	c, err := env.Contacts.Get(env.Data)
	switch {
	case errors.Is(err, store.ErrNotFound):
		p.form.msg = msgNotFound
	case err != nil:
		env.Log.Error("load contact", zap.String("key", env.Data), zap.Error(err))
		p.form.msg = err.Error()
	default:
		p.loaded = true
	}
	p.form.set(0, c.FullName)
	p.form.set(1, c.ContactNumber)
	p.form.set(2, c.EmailAddress)
	return p
}

func (p *edit) Init() tea.Cmd { return nil }

func (p *edit) Update(msg tea.Msg) (Page, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return p, p.env.Nav.Go(route.ContactList, "")
		case "ctrl+s":
			return p, p.save()
		}
	}
	pressed, cmd := p.form.update(msg)
	switch pressed {
	case btnSave:
		return p, p.save()
	case btnCancel:
		return p, p.env.Nav.Go(route.ContactList, "")
	}
	return p, cmd
}

func (p *edit) save() tea.Cmd {
	if !p.add && !p.loaded {
		p.form.msg = msgNotFound
		return nil
	}
	if !p.form.checkAll() {
		return nil
	}
	v := p.form.values()
	c := model.Contact{FullName: v[0], ContactNumber: v[1], EmailAddress: v[2]}
	var err error
	if p.add {
		_, err = p.env.Contacts.Add(c)
	} else {
		err = p.env.Contacts.Replace(p.key, c)
	}
	switch {
	case errors.Is(err, codec.ErrInvalidRecord):
		p.form.msg = "Please fill in every field."
		return nil
	case err != nil:
		p.env.Log.Error("save contact", zap.Error(err))
		p.form.msg = err.Error()
		return nil
	}
	return p.env.Nav.Go(route.ContactList, "")
}

func (p *edit) View() string {
	title := "Edit Contact"
	if p.add {
		title = "Add Contact"
	}
	return ui.Current().Title.Render(title) + "\n\n" + p.form.view()
}

func (p *edit) Capturing() bool { return true }

func (p *edit) Help() string { return "tab next • ctrl+s save • esc cancel" }
