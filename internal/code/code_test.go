package code

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		given    string
		surnames string
		want     string
	}{
		{"single surname with accent", "Ana", "García", "agarcia"},
		{"two surnames", "Juan", "Pérez López", "jplopez"},
		{"tilde on n", "José", "Muñoz", "jmunoz"},
		{"both empty", "", "", ""},
		{"one letter name and no surnames", "A", "", "a"},
		{"empty name", "", "Smith", "smith"},
		{"whitespace only surnames", "Bea", "   ", "b"},
		{"three surnames", "María", "de la Fuente", "mdlafuente"},
		{"extra spaces between surnames", "Luis", "  Ruiz   Gómez ", "lrgomez"},
		{"tabs split surnames", "Eva", "Sanz\tOrtiz", "esortiz"},
		{"upper case folded", "ÁLVARO", "ÑÚÑEZ", "anunez"},
		{"accented first letter of first surname", "Iker", "Álvarez Écija", "iaecija"},
		// Hangul stays decomposed, so the name contributes its leading jamo.
		{"hangul syllables", "\uAC00\uB098", "\uAE40", "\u1100\u1100\u1175\u11B7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.given, tt.surnames); got != tt.want {
				t.Errorf("Generate(%q, %q) = %q, want %q", tt.given, tt.surnames, got, tt.want)
			}
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	// Given the same inputs
	// When Generate is called repeatedly
	first := Generate("Juan", "Pérez López")
	for i := 0; i < 10; i++ {
		// Then every call yields the same code
		if got := Generate("Juan", "Pérez López"); got != first {
			t.Fatalf("call %d = %q, want %q", i, got, first)
		}
	}
}

func TestGenerate_DiacriticInvariance(t *testing.T) {
	accented := Generate("José", "Núñez")
	plain := Generate("jose", "nunez")
	if accented != plain {
		t.Errorf("Generate(José, Núñez) = %q, Generate(jose, nunez) = %q, want equal", accented, plain)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"García", "garcia"},
		{"Muñoz", "munoz"},
		{"ÇÀÉÎÕÜ", "caeiou"},
		{"already plain", "already plain"},
		{"", ""},
		// Decomposed input (n + combining tilde) normalizes the same as precomposed.
		{"Mun\u0303oz", "munoz"},
		// Nothing is recomposed after the marks are stripped.
		{"\uAC00", "\u1100\u1161"},
		{"\u1100\u1161", "\u1100\u1161"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
