// Package genre maps reader genre vocabulary to canonical genre identifiers.
package genre

import (
	"slices"

	"github.com/listenupapp/bookrec/internal/normalize"
)

// Aliases maps reader vocabulary to canonical genre identifiers.
// Keys are normalize.Token form. The table is written once at init and only read afterwards.
//
//nolint:gochecknoglobals // Static lookup table for genre normalization
var Aliases = map[string]string{
	// Russian vocabulary.
	"фэнтези":     Fantasy,
	"фантастика":  ScienceFiction,
	"классика":    Classic,
	"детектив":    Detective,
	"роман":       Romance,
	"ужасы":       Horror,
	"приключения": Adventure,
	"драма":       Drama,
	"комедия":     Comedy,
	"мистика":     Mystery,
	"боевик":      Action,
	"трагедия":    Tragedy,
	"поэзия":      Poetry,

	// English vocabulary.
	"fantasy":         Fantasy,
	"science fiction": ScienceFiction,
	"sci-fi":          ScienceFiction,
	"scifi":           ScienceFiction,
	"classic":         Classic,
	"classics":        Classic,
	"detective":       Detective,
	"romance":         Romance,
	"horror":          Horror,
	"adventure":       Adventure,
	"drama":           Drama,
	"comedy":          Comedy,
	"mystery":         Mystery,
	"action":          Action,
	"tragedy":         Tragedy,
	"poetry":          Poetry,
}

// Normalize maps a single reader token to its canonical genre identifier.
// Lookup is exact after case folding; unknown tokens report ok=false.
func Normalize(token string) (id string, ok bool) {
	id, ok = Aliases[normalize.Token(token)]
	return id, ok
}

// Canonicalize maps every token through Normalize, drops unknown tokens and
// duplicates, and keeps first-seen order. The result may be empty.
func Canonicalize(tokens []string) []string {
	ids := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		id, ok := Normalize(token)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// Vocabulary returns the reader tokens that map to the given canonical genre, sorted.
func Vocabulary(id string) []string {
	var tokens []string
	for token, canonical := range Aliases {
		if canonical == id {
			tokens = append(tokens, token)
		}
	}
	slices.Sort(tokens)
	return tokens
}

// Tokens returns every known reader token, sorted.
func Tokens() []string {
	tokens := make([]string, 0, len(Aliases))
	for token := range Aliases {
		tokens = append(tokens, token)
	}
	slices.Sort(tokens)
	return tokens
}
