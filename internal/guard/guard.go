// Package guard gates protected routes behind an active session.
package guard

import (
	"github.com/Makepad-fr/contactbook/internal/route"
	"github.com/Makepad-fr/contactbook/internal/store"
)

// SessionKey is where the authenticated user token lives in the session scope.
const SessionKey = "user"

// Authorize returns route.Login for a protected route when there is no
// session, and the requested route otherwise.
func Authorize(requested route.Route, hasSession bool) route.Route {
	if requested.Protected() && !hasSession {
		return route.Login
	}
	return requested
}

// Guard applies Authorize against a session scope.
type Guard struct {
	session store.Session
}

// New returns a Guard reading s.
func New(s store.Session) *Guard {
	return &Guard{session: s}
}

// HasSession reports whether a user is logged in.
func (g *Guard) HasSession() bool {
	_, ok := g.session.Get(SessionKey)
	return ok
}

// Authorize resolves the route that may actually be shown.
func (g *Guard) Authorize(requested route.Route) route.Route {
	return Authorize(requested, g.HasSession())
}
