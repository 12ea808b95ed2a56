// Package store defines the two storage scopes the application uses: a
// session scope that lives as long as the process and durable scopes that
// survive restarts.
package store

import (
	"errors"
	"strconv"
	"time"
)

// ErrNotFound is returned when a key is absent from a durable scope.
var ErrNotFound = errors.New("key not found")

// Session is the process-local scope holding the authenticated user.
type Session interface {
	Set(key, value string)
	Get(key string) (string, bool)
	Clear()
}

// Durable is a persistent key-value scope. Keys come back in no
// particular order.
type Durable interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Remove(key string) error
	Keys() ([]string, error)
}

// NewKey returns prefix followed by the current unix milliseconds. When that
// key is already taken the millisecond is bumped until it is free.
func NewKey(d Durable, prefix string, now func() time.Time) (string, error) {
	ms := now().UnixMilli()
	for {
		key := prefix + strconv.FormatInt(ms, 10)
		_, err := d.Get(key)
		if errors.Is(err, ErrNotFound) {
			return key, nil
		}
		if err != nil {
			return "", err
		}
		ms++
	}
}
