// Package normalize provides utilities for normalizing free-text tokens typed by readers.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Token prepares a single user-supplied token for lookup and display:
//   - removes null bytes
//   - composes unicode (NFC), so "й" typed as "и" + combining breve matches the table
//   - trims surrounding whitespace
//   - lowercases
//
// Inner whitespace, hyphens and punctuation are preserved ("sci-fi" stays "sci-fi").
func Token(raw string) string {
	if raw == "" {
		return ""
	}
	s := norm.NFC.String(sanitizeString(raw))
	return strings.ToLower(strings.TrimSpace(s))
}

// IsASCIIDigit reports whether r is one of '0'..'9'.
// Other unicode decimal digits are deliberately not treated as digits.
func IsASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// sanitizeString removes null bytes from strings, which can cause
// issues when the text is echoed back in logs or JSON.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, s)
}
