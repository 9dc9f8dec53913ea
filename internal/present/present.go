// Package present renders recommendation results as plain text.
package present

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/listenupapp/bookrec/internal/genre"
	"github.com/listenupapp/bookrec/internal/recommend"
)

// Example is a well-formed profile line shown to users.
const Example = "I am 13, I like: фантастика, фэнтези"

// Unspecified is printed in place of an absent age limit or rating.
const Unspecified = "unspecified"

// Header precedes the numbered recommendation list.
const Header = "Book recommendations:"

// Render writes the result to w: a header plus one numbered line per recommendation
// on success, otherwise a single explanatory message.
func Render(w io.Writer, res *recommend.Result) error {
	var b strings.Builder
	if res.OK() {
		b.WriteString(Header)
		b.WriteByte('\n')
		for _, line := range Lines(res) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	} else {
		b.WriteString(Message(res))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Lines returns the numbered recommendation lines, in result order.
func Lines(res *recommend.Result) []string {
	lines := make([]string, 0, len(res.Recommendations))
	for i, r := range res.Recommendations {
		ageLimit := Unspecified
		if r.AgeLimit != nil {
			ageLimit = strconv.Itoa(*r.AgeLimit)
		}
		rating := Unspecified
		if r.Rating != nil {
			rating = FormatRating(*r.Rating)
		}
		lines = append(lines, fmt.Sprintf("%d) %s (ageLimit: %s, rating: %s)", i+1, r.Title, ageLimit, rating))
	}
	return lines
}

// Message returns the one-line summary of a result. For negative outcomes it
// carries the profile's age and genres so the user can correct the input.
func Message(res *recommend.Result) string {
	switch res.Outcome {
	case recommend.OutcomeSuccess:
		return fmt.Sprintf("Found %d recommendation(s).", len(res.Recommendations))
	case recommend.OutcomeInvalidInput:
		return fmt.Sprintf("Invalid format (age %d, genres %s). Example: %s",
			res.Profile.Age, formatList(res.Profile.Genres), Example)
	case recommend.OutcomeNoMappedGenres:
		return fmt.Sprintf("No known genres in %s. Supported: %s.",
			formatList(res.Profile.Genres), strings.Join(genre.Tokens(), ", "))
	case recommend.OutcomeNoMatches:
		return fmt.Sprintf("No recommendations found for your preferences (age %d, genres %s).",
			res.Profile.Age, formatList(res.Profile.Genres))
	default:
		return res.Outcome.String()
	}
}

// FormatRating prints a rating the way single-precision decimals are usually shown
// to readers: shortest round-trip digits, always with a fractional part ("4.0", "4.5").
func FormatRating(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 32)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// formatList renders genres as "[a, b]".
func formatList(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}
