// Package profile turns a free-text reader line into a domain.UserProfile.
//
// Expected shape: "<something with the age>, <something>: <genre>, <genre>, ...",
// for example "Мне 13 лет, мне нравятся: фантастика, фэнтези".
// Parsing never fails. Malformed input degrades to age 0 and/or no genres,
// and the recommender rejects such profiles.
package profile

import (
	"strconv"
	"strings"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/normalize"
)

// Parse builds a profile from one input line.
func Parse(raw string) domain.UserProfile {
	head, rest, _ := strings.Cut(raw, ",")
	return domain.UserProfile{
		Age:    parseAge(head),
		Genres: parseGenres(rest),
	}
}

// parseAge returns the first run of ASCII digits in head as an int32-range integer, or 0.
func parseAge(head string) int {
	tokens := strings.FieldsFunc(head, func(r rune) bool {
		return !normalize.IsASCIIDigit(r)
	})
	if len(tokens) == 0 {
		return 0
	}
	age, err := strconv.ParseInt(tokens[0], 10, 32)
	if err != nil {
		return 0
	}
	return int(age)
}

// parseGenres splits the list after the first colon into lowercased, trimmed tokens.
// Pieces that trim to nothing are kept, so "likes:" yields one empty genre. Only
// trailing empty pieces of the untrimmed split are dropped ("a,," is just "a").
func parseGenres(rest string) []string {
	_, list, found := strings.Cut(rest, ":")
	if !found {
		return []string{}
	}

	pieces := strings.Split(strings.TrimSpace(list), ",")
	if len(pieces) > 1 {
		for len(pieces) > 0 && pieces[len(pieces)-1] == "" {
			pieces = pieces[:len(pieces)-1]
		}
	}

	genres := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		genres = append(genres, normalize.Token(piece))
	}
	return genres
}
