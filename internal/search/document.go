// Package search serves the book catalog from a Bleve index.
// Genres are exact keyword terms and the age ceiling is a numeric range,
// so candidate selection is a single structured query.
package search

import (
	"github.com/listenupapp/bookrec/internal/domain"
)

// Index field names. Must match buildIndexMapping.
const (
	fieldID          = "id"
	fieldTitle       = "title"
	fieldGenres      = "genres"
	fieldAgeLimit    = "age_limit"
	fieldHasAgeLimit = "has_age_limit"
	fieldRating      = "rating"
	fieldSeq         = "seq"
)

// BookDocument is the indexed form of a catalog book.
// Seq is the catalog position and drives result order.
type BookDocument struct {
	Seq  int
	Book domain.Book
}

// ToMap converts the document to a map with the field names used by the mapping.
// Absent optional attributes are left out of the map entirely.
func (d *BookDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		fieldID:          d.Book.ID,
		fieldSeq:         d.Seq,
		fieldHasAgeLimit: d.Book.AgeLimit != nil,
	}
	if len(d.Book.Genres) > 0 {
		m[fieldGenres] = d.Book.Genres
	}
	if d.Book.Title != nil {
		m[fieldTitle] = *d.Book.Title
	}
	if d.Book.AgeLimit != nil {
		m[fieldAgeLimit] = *d.Book.AgeLimit
	}
	if d.Book.Rating != nil {
		m[fieldRating] = *d.Book.Rating
	}
	return m
}

// bookFromFields rebuilds a book from the stored fields of a search hit.
// Numeric fields come back as float64; a single-valued genre list comes back as a string.
func bookFromFields(id string, fields map[string]interface{}) domain.Book {
	b := domain.Book{ID: id, Genres: []string{}}

	switch v := fields[fieldGenres].(type) {
	case string:
		b.Genres = append(b.Genres, v)
	case []interface{}:
		for _, g := range v {
			if s, ok := g.(string); ok {
				b.Genres = append(b.Genres, s)
			}
		}
	}
	if t, ok := fields[fieldTitle].(string); ok {
		b.Title = domain.Ptr(t)
	}
	if a, ok := fields[fieldAgeLimit].(float64); ok {
		b.AgeLimit = domain.Ptr(int(a))
	}
	if r, ok := fields[fieldRating].(float64); ok {
		b.Rating = domain.Ptr(r)
	}
	return b
}
