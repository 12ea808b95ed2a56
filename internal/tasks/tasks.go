// Package tasks manages the task list in a durable scope.
package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Makepad-fr/contactbook/internal/model"
	"github.com/Makepad-fr/contactbook/internal/store"
)

// KeyPrefix starts every task key.
const KeyPrefix = "T"

// ErrEmptyTitle is returned for blank titles.
var ErrEmptyTitle = errors.New("empty title")

// Entry is a stored task and its key.
type Entry struct {
	Key  string
	Task model.Task
}

// List reads and writes tasks.
type List struct {
	d   store.Durable
	now func() time.Time
}

// New returns a List over d.
func New(d store.Durable, now func() time.Time) *List {
	if now == nil {
		now = time.Now
	}
	return &List{d: d, now: now}
}

// Add appends a pending task.
func (l *List) Add(title string) (Entry, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Entry{}, ErrEmptyTitle
	}
	key, err := store.NewKey(l.d, KeyPrefix, l.now)
	if err != nil {
		return Entry{}, fmt.Errorf("new key: %w", err)
	}
	e := Entry{Key: key, Task: model.Task{Title: title}}
	return e, l.Put(e)
}

// Put writes e at its key.
func (l *List) Put(e Entry) error {
	b, err := json.Marshal(e.Task)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := l.d.Set(e.Key, string(b)); err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// Remove deletes key.
func (l *List) Remove(key string) error {
	if err := l.d.Remove(key); err != nil {
		return fmt.Errorf("remove task: %w", err)
	}
	return nil
}

// All returns tasks in creation order. Undecodable values are skipped.
func (l *List) All() ([]Entry, error) {
	keys, err := l.d.Keys()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	sort.Strings(keys)
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		s, err := l.d.Get(k)
		if err != nil {
			continue
		}
		var t model.Task
		if err := json.Unmarshal([]byte(s), &t); err != nil {
			continue
		}
		out = append(out, Entry{Key: k, Task: t})
	}
	return out, nil
}

// Stats counts done and pending tasks.
func Stats(entries []Entry) (done, pending int) {
	for _, e := range entries {
		if e.Task.Done {
			done++
		} else {
			pending++
		}
	}
	return
}
