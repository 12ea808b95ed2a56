package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/contactbook/internal/model"
	"github.com/Makepad-fr/contactbook/internal/store"
)

func TestAddToggleRemove(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	l := New(store.NewMemory().Durable(), func() time.Time { return at })

	milk, err := l.Add("  Buy milk ")
	require.NoError(t, err)
	assert.Equal(t, "T1700000000000", milk.Key)
	assert.Equal(t, "Buy milk", milk.Task.Title)

	bread, err := l.Add("Buy bread")
	require.NoError(t, err)

	milk.Task.Done = true
	require.NoError(t, l.Put(milk))

	all, err := l.All()
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Key: milk.Key, Task: model.Task{Title: "Buy milk", Done: true}},
		{Key: bread.Key, Task: model.Task{Title: "Buy bread"}},
	}, all)

	d, p := Stats(all)
	assert.Equal(t, 1, d)
	assert.Equal(t, 1, p)

	require.NoError(t, l.Remove(milk.Key))
	all, err = l.All()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAddEmpty(t *testing.T) {
	l := New(store.NewMemory().Durable(), nil)
	_, err := l.Add("   ")
	assert.ErrorIs(t, err, ErrEmptyTitle)
}
