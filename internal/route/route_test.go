package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	for _, r := range All() {
		got, err := Parse(r.String())
		require.NoError(t, err, r.String())
		assert.Equal(t, r, got)

		got, err = Parse(r.Path())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
}

func TestParseUnknown(t *testing.T) {
	for _, s := range []string{"", "nope", "Contact-List", "contact list"} {
		got, err := Parse(s)
		assert.ErrorIs(t, err, ErrUnknownRoute, s)
		assert.Equal(t, NotFound, got)
	}
}

func TestProtected(t *testing.T) {
	var protected []Route
	for _, r := range All() {
		if r.Protected() {
			protected = append(protected, r)
		}
	}
	assert.Equal(t, []Route{ContactList, TaskList}, protected)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Home", Home.Title())
	assert.Equal(t, "Contact-list", ContactList.Title())
	assert.Equal(t, "Task-list", TaskList.Title())
	assert.Equal(t, "404", NotFound.Title())
}

func TestAllCoversEnum(t *testing.T) {
	all := All()
	assert.Len(t, all, int(NotFound)+1)
	assert.Equal(t, Home, all[0])
	assert.Equal(t, NotFound, all[len(all)-1])
}
