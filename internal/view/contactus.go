package view

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Makepad-fr/contactbook/internal/codec"
	"github.com/Makepad-fr/contactbook/internal/model"
	"github.com/Makepad-fr/contactbook/internal/route"
	"github.com/Makepad-fr/contactbook/internal/ui"
	"github.com/Makepad-fr/contactbook/internal/validation"
)

func contactFields() []field {
	return []field{
		{label: "Full Name", check: &validation.FullName},
		{label: "Contact Number", check: &validation.ContactNumber},
		{label: "Email Address", check: &validation.EmailAddress},
	}
}

const (
	btnSubscribe = iota
	btnSend
	btnContactList
)

// contactUs is the public contact form. Sending only stores the contact when
// the visitor subscribed.
type contactUs struct {
	env        Env
	form       form
	subscribed bool
	notice     string
}

func newContactUs(env Env) Page {
	env.Log.Debug("page", zap.String("route", env.Route.String()))
	p := &contactUs{env: env}
	p.form = newForm(env.Validate, contactFields(), "", "Send", "Contact List")
	p.label()
	return p
}

func (p *contactUs) label() {
	box := ui.Current().BoxUnchecked
	if p.subscribed {
		box = ui.Current().BoxChecked
	}
	p.form.buttons[btnSubscribe] = box + " Subscribe"
}

func (p *contactUs) Init() tea.Cmd { return nil }

func (p *contactUs) Update(msg tea.Msg) (Page, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == " " && p.form.button() == btnSubscribe {
		p.subscribed = !p.subscribed
		p.label()
		return p, nil
	}
	pressed, cmd := p.form.update(msg)
	switch pressed {
	case btnSubscribe:
		p.subscribed = !p.subscribed
		p.label()
	case btnSend:
		p.send()
	case btnContactList:
		return p, p.env.Nav.Go(route.ContactList, "")
	}
	return p, cmd
}

func (p *contactUs) send() {
	p.notice = ""
	if !p.subscribed {
		p.notice = "Thanks! Tick subscribe to join our contact list."
		return
	}
	if !p.form.checkAll() {
		return
	}
	v := p.form.values()
	_, err := p.env.Contacts.Add(model.Contact{FullName: v[0], ContactNumber: v[1], EmailAddress: v[2]})
	switch {
	case errors.Is(err, codec.ErrInvalidRecord):
		p.form.msg = "Please fill in every field."
	case err != nil:
		p.env.Log.Error("add contact", zap.Error(err))
		p.form.msg = err.Error()
	default:
		p.form.reset()
		p.notice = "Thanks! You have been added to our contact list."
	}
}

func (p *contactUs) View() string {
	out := p.form.view()
	if p.notice != "" {
		out += "\n\n" + ui.Current().Success.Render(p.notice)
	}
	return out
}

func (p *contactUs) Capturing() bool { return p.form.input() >= 0 }

func (p *contactUs) Help() string { return "tab next • space toggle subscribe • enter activate" }
