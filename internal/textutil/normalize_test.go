package textutil

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Proyector ROTO", "proyector roto"},
		{"strips accents", "clasificación automática", "clasificacion automatica"},
		{"keeps enye", "el baño está roto", "el bano esta roto"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"words", "no funciona el proyector", []string{"no", "funciona", "el", "proyector"}},
		{"punctuation dropped", "aula 12: sin luz!", []string{"aula", "12", "sin", "luz"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestContentTokens(t *testing.T) {
	got := ContentTokens("No funciona el proyector del aula")
	expected := []string{"funciona", "proyector", "aula"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("ContentTokens = %v, want %v", got, expected)
	}
}

func TestIsStopword(t *testing.T) {
	for _, word := range []string{"el", "la", "de", "que", "no"} {
		if !IsStopword(word) {
			t.Errorf("expected %q to be a stopword", word)
		}
	}
	if IsStopword("proyector") {
		t.Errorf("proyector should not be a stopword")
	}
}
