package router

import "github.com/Makepad-fr/contactbook/internal/route"

// Entry is one history record.
type Entry struct {
	Route route.Route
	Data  string
}

// History is a back/forward stack of visited routes.
type History struct {
	entries []Entry
	index   int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{index: -1}
}

// Push records e as the newest entry, dropping anything ahead of the cursor.
func (h *History) Push(e Entry) {
	h.entries = append(h.entries[:h.index+1], e)
	h.index = len(h.entries) - 1
}

// Back moves the cursor one entry back.
func (h *History) Back() (Entry, bool) {
	if h.index <= 0 {
		return Entry{}, false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward moves the cursor one entry forward.
func (h *History) Forward() (Entry, bool) {
	if h.index >= len(h.entries)-1 {
		return Entry{}, false
	}
	h.index++
	return h.entries[h.index], true
}

// Len is the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Current returns the entry under the cursor.
func (h *History) Current() (Entry, bool) {
	if h.index < 0 {
		return Entry{}, false
	}
	return h.entries[h.index], true
}

// Paths lists the entries as URL-style paths, oldest first.
func (h *History) Paths() []string {
	out := make([]string, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.Route.Path()
	}
	return out
}
