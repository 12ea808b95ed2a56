// Package view holds the per-route interactive components and the table that
// maps each route to its template and initializer.
package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Makepad-fr/contactbook/internal/auth"
	"github.com/Makepad-fr/contactbook/internal/contacts"
	"github.com/Makepad-fr/contactbook/internal/content"
	"github.com/Makepad-fr/contactbook/internal/route"
	"github.com/Makepad-fr/contactbook/internal/store"
	"github.com/Makepad-fr/contactbook/internal/tasks"
	"github.com/Makepad-fr/contactbook/internal/validation"
)

// Navigator issues navigation requests. The returned command loads the
// target's content.
type Navigator interface {
	Go(r route.Route, data string) tea.Cmd
}

// Deps are the collaborators every view may use.
type Deps struct {
	Session  store.Session
	Contacts *contacts.Book
	Tasks    *tasks.List
	Auth     *auth.Authenticator
	Validate *validation.Validator
	Log      *zap.Logger
}

// Env is what an initializer receives: the shared deps plus the state of the
// navigation that produced it.
type Env struct {
	Deps
	Route route.Route
	Data  string
	Nav   Navigator
}

// Page is the interactive part of a view, shown below its template.
type Page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Page, tea.Cmd)
	View() string
	// Capturing reports whether keystrokes belong to the page (a text
	// input or a prompt has focus) rather than the global key map.
	Capturing() bool
	// Help is the one-line key legend for the footer.
	Help() string
}

// Initializer wires a view after its template has been injected.
type Initializer func(Env) Page

// Resolver maps routes to template locators and initializers.
type Resolver struct{}

// NewResolver returns the fixed route table.
func NewResolver() Resolver { return Resolver{} }

// Resolve returns the template locator and initializer for r.
func (Resolver) Resolve(r route.Route) (string, Initializer) {
	switch r {
	case route.Home:
		return content.Locator(r.String()), newHome
	case route.About, route.Products, route.Services, route.NotFound:
		return content.Locator(r.String()), newStatic
	case route.Contact:
		return content.Locator(r.String()), newContactUs
	case route.ContactList:
		return content.Locator(r.String()), newContactList
	case route.Edit:
		return content.Locator(r.String()), newEdit
	case route.Login:
		return content.Locator(r.String()), newLogin
	case route.Register:
		return content.Locator(r.String()), newRegister
	case route.TaskList:
		return content.Locator(r.String()), newTaskList
	}
	return content.Locator(route.NotFound.String()), newStatic
}
