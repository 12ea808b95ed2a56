package view

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Makepad-fr/contactbook/internal/auth"
	"github.com/Makepad-fr/contactbook/internal/model"
	"github.com/Makepad-fr/contactbook/internal/route"
)

// MsgInvalidLogin is shown when no reference entry matches.
const MsgInvalidLogin = "Error: Invalid Login Credentials"

const loginTimeout = 5 * time.Second

const (
	btnLogin = iota
	btnLoginCancel
	btnRegister
)

// loginResult carries the outcome of an asynchronous credential check.
type loginResult struct {
	user model.User
	err  error
}

type login struct {
	env     Env
	form    form
	pending bool
}

func newLogin(env Env) Page {
	env.Log.Debug("page", zap.String("route", env.Route.String()))
	return &login{
		env: env,
		form: newForm(nil, []field{
			{label: "Username"},
			{label: "Password", password: true},
		}, "Login", "Cancel", "Register"),
	}
}

func (p *login) Init() tea.Cmd { return nil }

func (p *login) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResult:
		if !p.pending {
			// started by a login page that has since been replaced
			return p, nil
		}
		return p, p.finish(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return p, p.cancel()
		case "enter":
			if p.form.input() == 1 {
				return p, p.submit()
			}
		}
	}
	pressed, cmd := p.form.update(msg)
	switch pressed {
	case btnLogin:
		return p, p.submit()
	case btnLoginCancel:
		return p, p.cancel()
	case btnRegister:
		return p, p.env.Nav.Go(route.Register, "")
	}
	return p, cmd
}

// submit checks the credentials off the update loop; the reference list is
// read again on every attempt.
func (p *login) submit() tea.Cmd {
	if p.pending {
		return nil
	}
	p.pending = true
	v := p.form.values()
	username, password := v[0], p.form.inputs[1].Value()
	a := p.env.Auth
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		defer cancel()
		u, err := a.Authenticate(ctx, username, password)
		return loginResult{user: u, err: err}
	}
}

func (p *login) finish(res loginResult) tea.Cmd {
	p.pending = false
	if res.err != nil {
		if errors.Is(res.err, auth.ErrInvalidCredentials) {
			p.form.msg = MsgInvalidLogin
		} else {
			p.env.Log.Error("login", zap.Error(res.err))
			p.form.msg = "Error: " + res.err.Error()
		}
		cmd := p.form.focusOn(0)
		p.form.inputs[0].CursorEnd()
		return cmd
	}
	if err := auth.Login(p.env.Session, res.user); err != nil {
		p.form.msg = "Error: " + err.Error()
		return nil
	}
	p.env.Log.Info("login", zap.String("username", res.user.Username),
		zap.String("session", auth.SessionID(p.env.Session)))
	p.form.msg = ""
	return p.env.Nav.Go(route.ContactList, "")
}

func (p *login) cancel() tea.Cmd {
	p.form.reset()
	return p.env.Nav.Go(route.Home, "")
}

func (p *login) View() string {
	out := p.form.view()
	if p.pending {
		out += "\n\nChecking…"
	}
	return out
}

func (p *login) Capturing() bool { return true }

func (p *login) Help() string { return "tab next • enter login • esc cancel" }
