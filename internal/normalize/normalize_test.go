package normalize

import "testing"

func TestToken(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Fantasy", "fantasy"},
		{"  Sci-Fi  ", "sci-fi"},
		{"ФАНТАСТИКА", "фантастика"},
		{"Science  Fiction", "science  fiction"},
		{"dra\x00ma", "drama"},
		// Decomposed "й" composes to a single rune.
		{"\u0431\u043e\u0438\u0306", "\u0431\u043e\u0439"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := Token(tt.input)
			if result != tt.expected {
				t.Errorf("Token(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsASCIIDigit(t *testing.T) {
	for _, r := range "0123456789" {
		if !IsASCIIDigit(r) {
			t.Errorf("IsASCIIDigit(%q) = false, want true", r)
		}
	}
	for _, r := range "a лет٣²" {
		if IsASCIIDigit(r) {
			t.Errorf("IsASCIIDigit(%q) = true, want false", r)
		}
	}
}
