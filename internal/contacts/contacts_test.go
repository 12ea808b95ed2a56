package contacts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/contactbook/internal/codec"
	"github.com/Makepad-fr/contactbook/internal/model"
	"github.com/Makepad-fr/contactbook/internal/store"
)

var jane = model.Contact{FullName: "Jane Doe", ContactNumber: "+1-555-123-4567", EmailAddress: "jane@x.com"}

func fixedNow() time.Time { return time.UnixMilli(1700000000000) }

func TestAddListsOnce(t *testing.T) {
	d := store.NewMemory().Durable()
	b := New(d, fixedNow, nil)

	key, err := b.Add(jane)
	require.NoError(t, err)
	assert.Equal(t, "J1700000000000", key)

	entries, err := b.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, jane, entries[0].Contact)

	raw, err := d.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe,+1-555-123-4567,jane@x.com", raw)
}

func TestAddInvalidWritesNothing(t *testing.T) {
	d := store.NewMemory().Durable()
	b := New(d, fixedNow, nil)

	_, err := b.Add(model.Contact{FullName: "Jane Doe", EmailAddress: "jane@x.com"})
	assert.ErrorIs(t, err, codec.ErrInvalidRecord)

	keys, err := d.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestSameMillisecondKeysDiffer(t *testing.T) {
	b := New(store.NewMemory().Durable(), fixedNow, nil)
	k1, err := b.Add(jane)
	require.NoError(t, err)
	k2, err := b.Add(jane)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k2)

	entries, err := b.List()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestReplaceAndRemove(t *testing.T) {
	b := New(store.NewMemory().Durable(), fixedNow, nil)
	key, err := b.Add(jane)
	require.NoError(t, err)

	edited := jane
	edited.EmailAddress = "jane@doe.org"
	require.NoError(t, b.Replace(key, edited))
	got, err := b.Get(key)
	require.NoError(t, err)
	assert.Equal(t, edited, got)

	assert.ErrorIs(t, b.Replace(key, model.Contact{}), codec.ErrInvalidRecord)
	got, err = b.Get(key)
	require.NoError(t, err)
	assert.Equal(t, edited, got)

	require.NoError(t, b.Remove(key))
	_, err = b.Get(key)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMalformedRecordDecodes(t *testing.T) {
	d := store.NewMemory().Durable()
	require.NoError(t, d.Set("X1", "just a name"))
	entries, err := New(d, nil, nil).List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.Contact{FullName: "just a name"}, entries[0].Contact)
}
