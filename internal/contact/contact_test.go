package contact

import (
	"testing"

	"github.com/smileynet/phonebook/internal/code"
)

func TestNew_ComputesCode(t *testing.T) {
	c := New("Juan", "Pérez López", "600111222")

	if c.Code() != "jplopez" {
		t.Errorf("Code() = %q, want %q", c.Code(), "jplopez")
	}
	if c.Name() != "Juan" || c.Surnames() != "Pérez López" || c.Phone() != "600111222" {
		t.Errorf("fields = (%q, %q, %q), want (Juan, Pérez López, 600111222)", c.Name(), c.Surnames(), c.Phone())
	}
	if c.FullName() != "Juan Pérez López" {
		t.Errorf("FullName() = %q, want %q", c.FullName(), "Juan Pérez López")
	}
}

func TestRenames_RecomputeCode(t *testing.T) {
	orig := New("Ana", "García", "600")

	tests := []struct {
		name string
		got  Contact
		want string
	}{
		{"WithName", orig.WithName("Berta"), "bgarcia"},
		{"WithSurnames", orig.WithSurnames("Ruiz Sanz"), "arsanz"},
		{"Renamed", orig.Renamed("José", "Muñoz"), "jmunoz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Code() != tt.want {
				t.Errorf("Code() = %q, want %q", tt.got.Code(), tt.want)
			}
			if tt.got.Code() != code.Generate(tt.got.Name(), tt.got.Surnames()) {
				t.Errorf("Code() drifted from Generate(%q, %q)", tt.got.Name(), tt.got.Surnames())
			}
			if tt.got.Phone() != "600" {
				t.Errorf("Phone() = %q, want phone preserved", tt.got.Phone())
			}
		})
	}

	// The original value is untouched.
	if orig.Code() != "agarcia" {
		t.Errorf("original Code() = %q, want %q", orig.Code(), "agarcia")
	}
}

func TestWithPhone_KeepsCode(t *testing.T) {
	c := New("Ana", "García", "600").WithPhone("700")
	if c.Phone() != "700" {
		t.Errorf("Phone() = %q, want %q", c.Phone(), "700")
	}
	if c.Code() != "agarcia" {
		t.Errorf("Code() = %q, want %q", c.Code(), "agarcia")
	}
}

func TestActions(t *testing.T) {
	c := New("Ana", "García", "600111222")

	if got, want := c.CallMyNumber(), "Contact Ana García is calling their own number 600111222."; got != want {
		t.Errorf("CallMyNumber() = %q, want %q", got, want)
	}
	if got, want := c.CallOtherNumber("911"), "Contact Ana García is calling number 911."; got != want {
		t.Errorf("CallOtherNumber() = %q, want %q", got, want)
	}
	if got, want := c.Details(), "Code: agarcia, Name: Ana García, Phone number: 600111222."; got != want {
		t.Errorf("Details() = %q, want %q", got, want)
	}
	if got, want := c.String(), "Code: agarcia, Name: Ana García, Phone: 600111222"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
