package view

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Makepad-fr/contactbook/internal/route"
	"github.com/Makepad-fr/contactbook/internal/ui"
)

// link is an in-page hyperlink bound to a key.
type link struct {
	key   string
	label string
	to    route.Route
}

// static is a view whose only behavior is a few links.
type static struct {
	env   Env
	links []link
}

func newStatic(env Env) Page {
	env.Log.Debug("page", zap.String("route", env.Route.String()))
	return &static{env: env}
}

func newHome(env Env) Page {
	env.Log.Debug("page", zap.String("route", env.Route.String()))
	return &static{env: env, links: []link{{key: "a", label: "About Us", to: route.About}}}
}

func newRegister(env Env) Page {
	env.Log.Debug("page", zap.String("route", env.Route.String()))
	return &static{env: env, links: []link{{key: "l", label: "Login", to: route.Login}}}
}

func (p *static) Init() tea.Cmd { return nil }

func (p *static) Update(msg tea.Msg) (Page, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		for _, l := range p.links {
			if k.String() == l.key {
				return p, p.env.Nav.Go(l.to, "")
			}
		}
	}
	return p, nil
}

func (p *static) View() string {
	if len(p.links) == 0 {
		return ""
	}
	parts := make([]string, 0, len(p.links))
	for _, l := range p.links {
		parts = append(parts, ui.Current().Accent.Underline(true).Render(l.label)+" ("+l.key+")")
	}
	return strings.Join(parts, "   ")
}

func (p *static) Capturing() bool { return false }

func (p *static) Help() string {
	parts := make([]string, 0, len(p.links))
	for _, l := range p.links {
		parts = append(parts, l.key+" "+strings.ToLower(l.label))
	}
	return strings.Join(parts, " • ")
}
