// Package route enumerates the views the application can show.
package route

import (
	"errors"
	"fmt"
	"strings"
)

// Route names one view.
type Route int

const (
	Home Route = iota
	About
	Products
	Services
	Contact
	ContactList
	Edit
	Login
	Register
	TaskList
	NotFound
)

// Default is where the application starts.
const Default = Home

// ErrUnknownRoute is returned by Parse for names outside the enum.
var ErrUnknownRoute = errors.New("unknown route")

var names = [...]string{
	Home:        "home",
	About:       "about",
	Products:    "products",
	Services:    "services",
	Contact:     "contact",
	ContactList: "contact-list",
	Edit:        "edit",
	Login:       "login",
	Register:    "register",
	TaskList:    "task-list",
	NotFound:    "404",
}

// All returns every route in declaration order.
func All() []Route {
	out := make([]Route, 0, len(names))
	for r := range names {
		out = append(out, Route(r))
	}
	return out
}

// Parse maps a route name to its Route. Leading slashes and surrounding
// spaces are ignored so history paths parse too.
func Parse(s string) (Route, error) {
	name := strings.TrimLeft(strings.TrimSpace(s), "/")
	for r, n := range names {
		if n == name {
			return Route(r), nil
		}
	}
	return NotFound, fmt.Errorf("%w: %q", ErrUnknownRoute, s)
}

func (r Route) String() string {
	if r < 0 || int(r) >= len(names) {
		return fmt.Sprintf("Route(%d)", int(r))
	}
	return names[r]
}

// Path is the history path for r.
func (r Route) Path() string { return "/" + r.String() }

// Protected reports whether r needs an active session.
func (r Route) Protected() bool {
	return r == ContactList || r == TaskList
}

// Title is the route name with its first letter upper-cased.
func (r Route) Title() string {
	n := r.String()
	if n == "" {
		return n
	}
	return strings.ToUpper(n[:1]) + n[1:]
}
