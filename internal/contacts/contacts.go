// Package contacts manages contact records in a durable scope.
package contacts

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Makepad-fr/contactbook/internal/codec"
	"github.com/Makepad-fr/contactbook/internal/model"
	"github.com/Makepad-fr/contactbook/internal/store"
)

// Entry is a stored contact and its key.
type Entry struct {
	Key     string
	Contact model.Contact
}

// Book reads and writes contacts.
type Book struct {
	d   store.Durable
	now func() time.Time
	log *zap.Logger
}

// New returns a Book over d. now and log may be nil.
func New(d store.Durable, now func() time.Time, log *zap.Logger) *Book {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Book{d: d, now: now, log: log}
}

// Add stores c under a fresh key: the first character of the name followed by
// the creation time in milliseconds. Nothing is written when c is invalid.
func (b *Book) Add(c model.Contact) (string, error) {
	s, err := codec.Encode(c)
	if err != nil {
		b.log.Warn("contact not saved", zap.Error(err))
		return "", err
	}
	key, err := store.NewKey(b.d, firstChar(c.FullName), b.now)
	if err != nil {
		return "", fmt.Errorf("new key: %w", err)
	}
	if err := b.d.Set(key, s); err != nil {
		return "", fmt.Errorf("save contact: %w", err)
	}
	b.log.Info("contact added", zap.String("key", key))
	return key, nil
}

// Replace overwrites the record at key.
func (b *Book) Replace(key string, c model.Contact) error {
	s, err := codec.Encode(c)
	if err != nil {
		b.log.Warn("contact not saved", zap.String("key", key), zap.Error(err))
		return err
	}
	if err := b.d.Set(key, s); err != nil {
		return fmt.Errorf("save contact: %w", err)
	}
	b.log.Info("contact updated", zap.String("key", key))
	return nil
}

// Get decodes the record at key without validating it.
func (b *Book) Get(key string) (model.Contact, error) {
	s, err := b.d.Get(key)
	if err != nil {
		return model.Contact{}, err
	}
	return codec.DecodeContact(s), nil
}

// Remove deletes key. Removing a missing key is not an error.
func (b *Book) Remove(key string) error {
	if err := b.d.Remove(key); err != nil {
		return fmt.Errorf("remove contact: %w", err)
	}
	b.log.Info("contact removed", zap.String("key", key))
	return nil
}

// List returns every contact ordered by key.
func (b *Book) List() ([]Entry, error) {
	keys, err := b.d.Keys()
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	sort.Strings(keys)
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		s, err := b.d.Get(k)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Key: k, Contact: codec.DecodeContact(s)})
	}
	return out, nil
}

func firstChar(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
