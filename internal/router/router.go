// Package router owns the current route and runs every navigation through
// the auth guard before committing it.
package router

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Makepad-fr/contactbook/internal/content"
	"github.com/Makepad-fr/contactbook/internal/guard"
	"github.com/Makepad-fr/contactbook/internal/route"
	"github.com/Makepad-fr/contactbook/internal/view"
)

// DefaultTimeout bounds a template fetch.
const DefaultTimeout = 2 * time.Second

// Resolver maps a route to its template and initializer.
type Resolver interface {
	Resolve(r route.Route) (string, view.Initializer)
}

// State is the current route and the link data it was opened with.
type State struct {
	Route route.Route
	Data  string
}

// Loaded reports a finished template fetch. Gen identifies the navigation that
// started it.
type Loaded struct {
	Gen   uint64
	Route route.Route
	Body  string
	Err   error
	// Reload keeps the current page and only swaps the template.
	Reload bool
}

// Config wires a Router.
type Config struct {
	Guard    *guard.Guard
	Resolver Resolver
	Content  content.Provider
	Deps     view.Deps
	Timeout  time.Duration
	Log      *zap.Logger
}

// Router is the navigation state machine. All state changes go through Go,
// Back and Forward; it must only be used from the Bubble Tea update loop.
type Router struct {
	guard    *guard.Guard
	resolver Resolver
	content  content.Provider
	deps     view.Deps
	timeout  time.Duration
	log      *zap.Logger

	state   State
	history *History
	title   string
	active  route.Route
	gen     uint64

	body    string
	page    view.Page
	loading bool
	size    *tea.WindowSizeMsg
}

// New returns a Router whose state is route.Default with nothing loaded yet.
func New(cfg Config) *Router {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.Deps.Log == nil {
		cfg.Deps.Log = cfg.Log
	}
	return &Router{
		guard:    cfg.Guard,
		resolver: cfg.Resolver,
		content:  cfg.Content,
		deps:     cfg.Deps,
		timeout:  cfg.Timeout,
		log:      cfg.Log,
		state:    State{Route: route.Default},
		history:  NewHistory(),
		active:   route.Default,
		title:    route.Default.Title(),
	}
}

// Navigate parses name and navigates to it. Names outside the route table
// land on the 404 view.
func (r *Router) Navigate(name, data string) tea.Cmd {
	rt, err := route.Parse(name)
	if err != nil {
		r.log.Warn("navigate", zap.Error(err))
	}
	return r.Go(rt, data)
}

// Go performs a guarded transition to requested and returns the command that
// loads its content.
func (r *Router) Go(requested route.Route, data string) tea.Cmd {
	return r.transition(requested, data, true)
}

// Back re-enters the previous history entry, through the guard.
func (r *Router) Back() tea.Cmd {
	e, ok := r.history.Back()
	if !ok {
		return nil
	}
	return r.transition(e.Route, e.Data, false)
}

// Forward re-enters the next history entry, through the guard.
func (r *Router) Forward() tea.Cmd {
	e, ok := r.history.Forward()
	if !ok {
		return nil
	}
	return r.transition(e.Route, e.Data, false)
}

// transition is the only place state changes. The guard runs before anything
// is committed so a protected view is never shown without a session.
func (r *Router) transition(requested route.Route, data string, push bool) tea.Cmd {
	effective := r.guard.Authorize(requested)
	if effective != requested {
		r.log.Info("redirected", zap.Stringer("requested", requested), zap.Stringer("route", effective))
	}

	r.state = State{Route: effective, Data: data}
	if push {
		r.history.Push(Entry{Route: effective, Data: data})
	}
	r.title = effective.Title()
	r.active = effective

	r.gen++
	r.loading = true
	r.log.Debug("navigate", zap.Stringer("route", effective), zap.String("data", data), zap.Uint64("gen", r.gen))

	locator, _ := r.resolver.Resolve(effective)
	return r.fetch(r.gen, effective, locator, false)
}

// Reload fetches the current template again without touching the page, so
// input in progress survives a template edit. It is a no-op while a
// navigation is loading.
func (r *Router) Reload() tea.Cmd {
	if r.loading || r.page == nil {
		return nil
	}
	r.gen++
	r.log.Debug("reload", zap.Stringer("route", r.state.Route), zap.Uint64("gen", r.gen))
	return r.fetch(r.gen, r.state.Route, r.Locator(), true)
}

// Locator is the template path of the current route.
func (r *Router) Locator() string {
	locator, _ := r.resolver.Resolve(r.state.Route)
	return locator
}

func (r *Router) fetch(gen uint64, rt route.Route, locator string, reload bool) tea.Cmd {
	provider, timeout := r.content, r.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		body, err := provider.Fetch(ctx, locator)
		return Loaded{Gen: gen, Route: rt, Body: body, Err: err, Reload: reload}
	}
}

// Deliver injects a fetched template and wires its view. Results from a
// superseded navigation are dropped.
func (r *Router) Deliver(msg Loaded) tea.Cmd {
	if msg.Gen != r.gen {
		r.log.Debug("stale content dropped", zap.Uint64("gen", msg.Gen), zap.Uint64("current", r.gen))
		return nil
	}
	if msg.Err != nil {
		if errors.Is(msg.Err, context.DeadlineExceeded) {
			r.log.Warn("content fetch timed out", zap.Stringer("route", msg.Route))
		} else {
			r.log.Error("content fetch failed", zap.Stringer("route", msg.Route), zap.Error(msg.Err))
		}
	}
	if msg.Reload {
		if msg.Err == nil {
			r.body = msg.Body
		}
		return nil
	}
	r.body = msg.Body
	r.loading = false

	_, initialize := r.resolver.Resolve(r.state.Route)
	r.page = initialize(view.Env{
		Deps:  r.deps,
		Route: r.state.Route,
		Data:  r.state.Data,
		Nav:   r,
	})
	cmds := []tea.Cmd{r.page.Init()}
	if r.size != nil {
		var cmd tea.Cmd
		r.page, cmd = r.page.Update(*r.size)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update routes msg to the router or the current page.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case Loaded:
		return r.Deliver(msg)
	case tea.WindowSizeMsg:
		r.size = &msg
	default:
		// Keys and late command results belong to the page being replaced.
		if r.loading {
			r.log.Debug("dropped while loading", zap.String("msg", fmt.Sprintf("%T", msg)), zap.Uint64("gen", r.gen))
			return nil
		}
	}
	if r.page == nil {
		return nil
	}
	var cmd tea.Cmd
	r.page, cmd = r.page.Update(msg)
	return cmd
}

// State returns the current route and link data.
func (r *Router) State() State { return r.state }

// Title is the document title for the current route.
func (r *Router) Title() string { return r.title }

// Active is the navigation link shown as selected.
func (r *Router) Active() route.Route { return r.active }

// Body is the raw template of the last delivered view.
func (r *Router) Body() string { return r.body }

// Page is the wired view, nil until the first delivery.
func (r *Router) Page() view.Page { return r.page }

// Loading reports whether a fetch is outstanding.
func (r *Router) Loading() bool { return r.loading }

// Generation counts navigations.
func (r *Router) Generation() uint64 { return r.gen }

// History exposes the back/forward stack.
func (r *Router) History() *History { return r.history }

// Guard returns the guard used for every transition.
func (r *Router) Guard() *guard.Guard { return r.guard }
