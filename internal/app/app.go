// Package app is the Bubble Tea shell around the router: a header with the
// navigation links, the active view in the main area, and a footer.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Makepad-fr/contactbook/internal/auth"
	"github.com/Makepad-fr/contactbook/internal/content"
	"github.com/Makepad-fr/contactbook/internal/route"
	"github.com/Makepad-fr/contactbook/internal/router"
	"github.com/Makepad-fr/contactbook/internal/store"
	"github.com/Makepad-fr/contactbook/internal/ui"
)

// Options wires a Model.
type Options struct {
	Router   *router.Router
	Session  store.Session
	Content  content.Provider
	Renderer *content.Renderer
	Start    route.Route
	Log      *zap.Logger
	// Changes carries template locators edited on disk, see content.Watcher.
	Changes <-chan string
}

type footerLoaded struct {
	body string
	err  error
}

type templateChanged struct{ locator string }

// Model is the root tea.Model.
type Model struct {
	r        *router.Router
	session  store.Session
	content  content.Provider
	renderer *content.Renderer
	start    route.Route
	log      *zap.Logger
	changes  <-chan string

	width, height int
	title         string

	footer      string
	body        string
	bodySrc     string
	bodyWidth   int
	renderError string
}

// New returns the shell. Nothing is loaded until Init.
func New(opts Options) *Model {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Renderer == nil {
		opts.Renderer = content.NewRenderer("")
	}
	return &Model{
		r:        opts.Router,
		session:  opts.Session,
		content:  opts.Content,
		renderer: opts.Renderer,
		start:    opts.Start,
		log:      opts.Log,
		changes:  opts.Changes,
		width:    80,
		height:   24,
	}
}

// Init navigates to the start route and loads the footer component.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.r.Go(m.start, ""), m.loadFooter(), m.waitForChange())
}

// waitForChange blocks on the watcher until the next edited template.
func (m *Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		l, ok := <-ch
		if !ok {
			return nil
		}
		return templateChanged{locator: l}
	}
}

func (m *Model) reload(locator string) tea.Cmd {
	switch locator {
	case content.Component("footer"):
		return m.loadFooter()
	case m.r.Locator():
		m.log.Info("template reloaded", zap.String("locator", locator))
		return m.r.Reload()
	}
	return nil
}

func (m *Model) loadFooter() tea.Cmd {
	provider := m.content
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), router.DefaultTimeout)
		defer cancel()
		body, err := provider.Fetch(ctx, content.Component("footer"))
		return footerLoaded{body: body, err: err}
	}
}

// Links are the header entries in order: the public views, then the secure
// ones when a session exists.
func (m *Model) Links() []route.Route {
	links := []route.Route{route.Home, route.About, route.Products, route.Services, route.Contact}
	if m.r.Guard().HasSession() {
		links = append(links, route.ContactList, route.TaskList)
	}
	return links
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case footerLoaded:
		if msg.err != nil {
			m.log.Warn("footer", zap.Error(msg.err))
		}
		m.footer = strings.TrimSpace(msg.body)
		return m, nil
	case templateChanged:
		return m, tea.Batch(m.reload(msg.locator), m.waitForChange())
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cmd = m.r.Update(msg)
	case tea.KeyMsg:
		var handled bool
		cmd, handled = m.handleKey(msg)
		if !handled {
			cmd = m.r.Update(msg)
		}
	default:
		cmd = m.r.Update(msg)
	}
	m.refresh()
	if t := m.r.Title(); t != m.title {
		m.title = t
		cmd = tea.Batch(cmd, tea.SetWindowTitle("contactbook · "+t))
	}
	return m, cmd
}

// handleKey applies the global key map. Plain keys only apply while the page
// is not capturing input; alt chords always do.
func (m *Model) handleKey(k tea.KeyMsg) (tea.Cmd, bool) {
	s := k.String()
	switch s {
	case "ctrl+c":
		return tea.Quit, true
	case "alt+left":
		return m.r.Back(), true
	case "alt+right":
		return m.r.Forward(), true
	}
	if strings.HasPrefix(s, "alt+") {
		if cmd, ok := m.digit(strings.TrimPrefix(s, "alt+")); ok {
			return cmd, true
		}
	}
	if m.r.Loading() || (m.r.Page() != nil && m.r.Page().Capturing()) {
		return nil, false
	}
	switch s {
	case "q":
		return tea.Quit, true
	case "[":
		return m.r.Back(), true
	case "]":
		return m.r.Forward(), true
	case "L":
		return m.toggleSession(), true
	}
	return m.digit(s)
}

func (m *Model) digit(s string) (tea.Cmd, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return nil, false
	}
	links := m.Links()
	i := int(s[0] - '1')
	if i >= len(links) {
		return nil, false
	}
	return m.r.Go(links[i], ""), true
}

// toggleSession logs out when a session exists, otherwise opens the login
// view.
func (m *Model) toggleSession() tea.Cmd {
	if m.r.Guard().HasSession() {
		m.log.Info("logout", zap.String("session", auth.SessionID(m.session)))
		auth.Logout(m.session)
	}
	return m.r.Go(route.Login, "")
}

// refresh re-renders the template when it or the width changed.
func (m *Model) refresh() {
	w := m.contentWidth()
	if m.r.Body() == m.bodySrc && w == m.bodyWidth {
		return
	}
	m.bodySrc, m.bodyWidth = m.r.Body(), w
	out, err := m.renderer.Render(m.bodySrc, w)
	if err != nil {
		m.log.Error("render", zap.Stringer("route", m.r.State().Route), zap.Error(err))
		m.renderError = err.Error()
		m.body = m.bodySrc
		return
	}
	m.renderError = ""
	m.body = out
}

func (m *Model) contentWidth() int {
	return max(m.width-4, 20)
}

func (m *Model) View() string {
	t := ui.Current()
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")

	var main string
	switch {
	case m.r.Page() == nil:
		main = t.Muted.Render("Loading…")
	default:
		main = m.body
		if pv := m.r.Page().View(); pv != "" {
			main += "\n\n" + pv
		}
		if m.r.Loading() {
			main += "\n\n" + t.Muted.Render("Loading…")
		}
	}
	if m.renderError != "" {
		main += "\n\n" + t.Error.Render(m.renderError)
	}
	b.WriteString(lipgloss.NewStyle().Width(m.contentWidth()).Render(main))
	b.WriteString("\n\n")
	b.WriteString(m.footerView())
	return ui.Box(b.String())
}

func (m *Model) header() string {
	t := ui.Current()
	parts := make([]string, 0, 8)
	for i, r := range m.Links() {
		label := fmt.Sprintf("%d %s", i+1, r.Title())
		if r == m.r.Active() {
			parts = append(parts, t.NavActive.Render(label))
		} else {
			parts = append(parts, t.NavLink.Render(label))
		}
	}
	session := "L Login"
	if u, ok := auth.Current(m.session); ok {
		name := u.DisplayName
		if name == "" {
			name = u.Username
		}
		session = "L Logout (" + name + ")"
	}
	if m.r.Active() == route.Login {
		session = t.NavActive.Render(session)
	}
	parts = append(parts, session)
	return t.Title.Render("contactbook") + "  " + strings.Join(parts, "  ")
}

func (m *Model) footerView() string {
	t := ui.Current()
	help := "1-9 go • [ back • ] forward • L login/logout • q quit"
	if p := m.r.Page(); p != nil && p.Help() != "" {
		help = p.Help() + " • " + help
	}
	out := t.Help.Render(help)
	if m.footer != "" {
		out += "\n" + t.Muted.Render(m.footer)
	}
	return out
}

// Title is the current window title.
func (m *Model) Title() string { return m.title }

// Run drives m until the user quits or ctx is done.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	start := time.Now()
	_, err := p.Run()
	m.log.Info("exit", zap.Duration("uptime", time.Since(start)), zap.Error(err))
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
