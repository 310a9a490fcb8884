// Package contact defines the contact record held by the phonebook.
package contact

import (
	"fmt"

	"github.com/smileynet/phonebook/internal/code"
)

// Contact is a person in the phonebook. Its code is derived from the name and
// surnames and is recomputed by every method that changes either of them.
// Contact is a value: copies never share state with the directory slot they
// were read from.
type Contact struct {
	name     string
	surnames string
	phone    string
	code     string
}

// New creates a Contact and computes its code.
func New(name, surnames, phone string) Contact {
	return Contact{
		name:     name,
		surnames: surnames,
		phone:    phone,
		code:     code.Generate(name, surnames),
	}
}

// Name returns the given name.
func (c Contact) Name() string { return c.name }

// Surnames returns the family names as entered.
func (c Contact) Surnames() string { return c.surnames }

// Phone returns the phone number.
func (c Contact) Phone() string { return c.phone }

// Code returns the derived key.
func (c Contact) Code() string { return c.code }

// FullName returns the name and surnames separated by a space.
func (c Contact) FullName() string {
	return c.name + " " + c.surnames
}

// WithName returns a copy with a new given name and a recomputed code.
func (c Contact) WithName(name string) Contact {
	return c.Renamed(name, c.surnames)
}

// WithSurnames returns a copy with new surnames and a recomputed code.
func (c Contact) WithSurnames(surnames string) Contact {
	return c.Renamed(c.name, surnames)
}

// Renamed returns a copy with both name parts replaced and a recomputed code.
func (c Contact) Renamed(name, surnames string) Contact {
	return New(name, surnames, c.phone)
}

// WithPhone returns a copy with a new phone number. The code is unchanged.
func (c Contact) WithPhone(phone string) Contact {
	c.phone = phone
	return c
}

// CallMyNumber describes the contact dialing its own number.
func (c Contact) CallMyNumber() string {
	return fmt.Sprintf("Contact %s is calling their own number %s.", c.FullName(), c.phone)
}

// CallOtherNumber describes the contact dialing number.
func (c Contact) CallOtherNumber(number string) string {
	return fmt.Sprintf("Contact %s is calling number %s.", c.FullName(), number)
}

// Details returns the full description shown when a contact is inspected.
func (c Contact) Details() string {
	return fmt.Sprintf("Code: %s, Name: %s, Phone number: %s.", c.code, c.FullName(), c.phone)
}

// String returns the one-line form used in listings.
func (c Contact) String() string {
	return fmt.Sprintf("Code: %s, Name: %s, Phone: %s", c.code, c.FullName(), c.phone)
}
