// Package validation holds the field predicates used by the contact and task forms.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	fullNameRe      = regexp.MustCompile(`^([A-Z][a-z]{1,3}\.?\s)?([A-Z][a-z]{1,})+([\s,-]([A-Z][a-z]{1,}))*$`)
	contactNumberRe = regexp.MustCompile(`^(\+\d{1,3}[\s-.])?\(?\d{3}\)?[\s-.]?\d{3}[\s-.]?\d{4}$`)
	emailAddressRe  = regexp.MustCompile(`[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,10}`)
)

// Messages shown under a form when a field is rejected.
const (
	MsgFullName      = "Please enter a valid Full Name."
	MsgContactNumber = "Please enter a valid Contact Number."
	MsgEmailAddress  = "Please enter a valid Email Address."
	MsgTask          = "Please enter a valid Task."
)

// FullNameValidator accepts capitalised names with an optional short title.
func FullNameValidator(fl validator.FieldLevel) bool {
	return fullNameRe.MatchString(fl.Field().String())
}

// ContactNumberValidator accepts North American style numbers with an
// optional country code.
func ContactNumberValidator(fl validator.FieldLevel) bool {
	return contactNumberRe.MatchString(fl.Field().String())
}

// EmailAddressValidator is a loose email check.
func EmailAddressValidator(fl validator.FieldLevel) bool {
	return emailAddressRe.MatchString(fl.Field().String())
}

// TaskValidator rejects empty text and text starting with a space.
func TaskValidator(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	return v != "" && !strings.HasPrefix(v, " ")
}

// Field is a pluggable predicate for one form input.
type Field struct {
	Tag     string
	Message string
}

var (
	FullName      = Field{Tag: "fullname", Message: MsgFullName}
	ContactNumber = Field{Tag: "contactnumber", Message: MsgContactNumber}
	EmailAddress  = Field{Tag: "emailaddress", Message: MsgEmailAddress}
	Task          = Field{Tag: "task", Message: MsgTask}
)

// Validator checks single values against the registered tags.
type Validator struct {
	v *validator.Validate
}

// New registers the form predicates.
func New() *Validator {
	v := validator.New()
	mustRegister(v, FullName.Tag, FullNameValidator)
	mustRegister(v, ContactNumber.Tag, ContactNumberValidator)
	mustRegister(v, EmailAddress.Tag, EmailAddressValidator)
	mustRegister(v, Task.Tag, TaskValidator)
	return &Validator{v: v}
}

// mustRegister panics on a bad tag; the tags are fixed at compile time.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %q: %v", tag, err))
	}
}

// Check returns "" when value passes f, otherwise f's message.
func (val *Validator) Check(f Field, value string) string {
	if err := val.v.Var(value, f.Tag); err != nil {
		return f.Message
	}
	return ""
}

// Contact checks the three contact fields in order and returns the first
// failing field's index and message, or -1 and "".
func (val *Validator) Contact(fullName, contactNumber, emailAddress string) (int, string) {
	fields := []Field{FullName, ContactNumber, EmailAddress}
	for i, v := range []string{fullName, contactNumber, emailAddress} {
		if msg := val.Check(fields[i], v); msg != "" {
			return i, msg
		}
	}
	return -1, ""
}
