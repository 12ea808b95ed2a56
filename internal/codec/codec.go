// Package codec converts flat records to and from the delimited strings kept
// in storage. Field values are not escaped: a value containing Separator does
// not survive a round trip.
package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Makepad-fr/contactbook/internal/model"
)

// Separator joins the fields of an encoded record.
const Separator = ","

// ErrInvalidRecord is returned when a required field is empty.
var ErrInvalidRecord = errors.New("one or more properties of the record are missing or invalid")

var validate = validator.New()

// Record is anything with an ordered list of string fields.
type Record interface {
	Fields() []string
}

// Encode validates r and joins its fields. Nothing is returned on
// failure, so callers must not write anything either.
func Encode(r Record) (string, error) {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return "", fmt.Errorf("%w: %s", ErrInvalidRecord, verrs[0].Field())
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return strings.Join(r.Fields(), Separator), nil
}

// DecodeContact splits s positionally. It does not validate: missing
// fields stay empty and extra ones are dropped.
func DecodeContact(s string) model.Contact {
	f := fields(s, 3)
	return model.Contact{FullName: f[0], ContactNumber: f[1], EmailAddress: f[2]}
}

// DecodeUser is the inverse of Encode for a session token.
func DecodeUser(s string) model.User {
	f := fields(s, 3)
	return model.User{DisplayName: f[0], EmailAddress: f[1], Username: f[2]}
}

func fields(s string, n int) []string {
	out := make([]string, n)
	copy(out, strings.Split(s, Separator))
	return out
}
