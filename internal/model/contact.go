package model

import "fmt"

// Contact is a single entry of the contact list.
type Contact struct {
	FullName      string `validate:"required"`
	ContactNumber string `validate:"required"`
	EmailAddress  string `validate:"required"`
}

// Fields returns the values in storage order.
func (c Contact) Fields() []string {
	return []string{c.FullName, c.ContactNumber, c.EmailAddress}
}

func (c Contact) String() string {
	return fmt.Sprintf("Full Name:      %s\nContact Number: %s\nEmail Address:  %s",
		c.FullName, c.ContactNumber, c.EmailAddress)
}
