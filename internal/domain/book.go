// Package domain contains the core entities of the book recommender.
package domain

import (
	"slices"
	"strings"
)

// Book is a read-only catalog record.
// Optional attributes are pointers: nil means the attribute is absent,
// which is different from a zero age limit or a zero rating.
type Book struct {
	ID       string   `json:"id"`
	Title    *string  `json:"title,omitempty"`
	Genres   []string `json:"genres"`
	AgeLimit *int     `json:"age_limit,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
}

// Label returns the title when present, otherwise the local name of the identifier.
// "http://ontologies/books.owl#Dune" -> "Dune".
func (b *Book) Label() string {
	if b.Title != nil && *b.Title != "" {
		return *b.Title
	}
	return LocalName(b.ID)
}

// HasGenre reports whether the book is tagged with any of the given genre ids.
func (b *Book) HasGenre(ids []string) bool {
	for _, g := range b.Genres {
		if slices.Contains(ids, g) {
			return true
		}
	}
	return false
}

// AllowsAge reports whether a reader of the given age may read the book.
// A missing age limit means the book is unrestricted.
func (b *Book) AllowsAge(age int) bool {
	return b.AgeLimit == nil || *b.AgeLimit <= age
}

// LocalName returns the fragment after the last '#' or '/' of an identifier,
// or the identifier itself when it has neither.
func LocalName(id string) string {
	if i := strings.LastIndexAny(id, "#/"); i >= 0 && i < len(id)-1 {
		return id[i+1:]
	}
	return id
}

// CandidateFilter is the declarative constraint a catalog applies to select candidates:
// the book's genres intersect GenreIDs and its age limit is absent or <= MaxAge.
type CandidateFilter struct {
	GenreIDs []string
	MaxAge   int
}

// Matches reports whether the book satisfies the filter.
func (f CandidateFilter) Matches(b *Book) bool {
	return b.HasGenre(f.GenreIDs) && b.AllowsAge(f.MaxAge)
}

// Ptr returns a pointer to v. Handy for building optional book attributes.
func Ptr[T any](v T) *T {
	return &v
}
