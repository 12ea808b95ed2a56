package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/contactbook/internal/model"
)

func TestEncodeContact(t *testing.T) {
	got, err := Encode(model.Contact{
		FullName:      "Jane Doe",
		ContactNumber: "+1-555-123-4567",
		EmailAddress:  "jane@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe,+1-555-123-4567,jane@x.com", got)
}

func TestContactRoundTrip(t *testing.T) {
	cases := []model.Contact{
		{FullName: "Jane Doe", ContactNumber: "+1-555-123-4567", EmailAddress: "jane@x.com"},
		{FullName: "A", ContactNumber: "1", EmailAddress: "a@b.c"},
		{FullName: "Dr. Who", ContactNumber: "(555) 000 1111", EmailAddress: "who@tardis.space"},
	}
	for _, c := range cases {
		s, err := Encode(c)
		require.NoError(t, err)
		if diff := cmp.Diff(c, DecodeContact(s)); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestEncodeRejectsEmptyFields(t *testing.T) {
	cases := map[string]model.Contact{
		"no name":   {ContactNumber: "1", EmailAddress: "a@b.c"},
		"no number": {FullName: "A", EmailAddress: "a@b.c"},
		"no email":  {FullName: "A", ContactNumber: "1"},
		"empty":     {},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Encode(c)
			assert.ErrorIs(t, err, ErrInvalidRecord)
			assert.Empty(t, got)
		})
	}
}

func TestDecodeContactMalformed(t *testing.T) {
	c := DecodeContact("only-a-name")
	assert.Equal(t, model.Contact{FullName: "only-a-name"}, c)

	c = DecodeContact("a,b,c,d")
	assert.Equal(t, model.Contact{FullName: "a", ContactNumber: "b", EmailAddress: "c"}, c)
}

func TestUserToken(t *testing.T) {
	u := model.User{DisplayName: "Jane", EmailAddress: "jane@x.com", Username: "jane", Password: "secret"}
	s, err := Encode(u)
	require.NoError(t, err)
	assert.NotContains(t, s, "secret")

	got := DecodeUser(s)
	assert.Equal(t, "jane", got.Username)
	assert.Empty(t, got.Password)

	_, err = Encode(model.User{DisplayName: "nobody"})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	s, err = Encode(model.User{Username: "bare"})
	require.NoError(t, err)
	assert.Equal(t, "bare", DecodeUser(s).Username)
}
