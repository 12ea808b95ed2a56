// Package storetest holds the contract every Durable implementation must meet.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/contactbook/internal/store"
)

// RunDurable exercises d, which must start empty.
func RunDurable(t *testing.T, d store.Durable) {
	t.Helper()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := d.Get("nope")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("SetGet", func(t *testing.T) {
		require.NoError(t, d.Set("J1", "Jane Doe,+1-555-123-4567,jane@x.com"))
		v, err := d.Get("J1")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe,+1-555-123-4567,jane@x.com", v)
	})

	t.Run("Replace", func(t *testing.T) {
		require.NoError(t, d.Set("J1", "Jane Roe,1,j@r.com"))
		v, err := d.Get("J1")
		require.NoError(t, err)
		assert.Equal(t, "Jane Roe,1,j@r.com", v)
	})

	t.Run("Keys", func(t *testing.T) {
		require.NoError(t, d.Set("K2", "x"))
		keys, err := d.Keys()
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"J1", "K2"}, keys)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, d.Remove("J1"))
		require.NoError(t, d.Remove("J1"))
		_, err := d.Get("J1")
		assert.ErrorIs(t, err, store.ErrNotFound)
		keys, err := d.Keys()
		require.NoError(t, err)
		assert.Equal(t, []string{"K2"}, keys)
	})
}
