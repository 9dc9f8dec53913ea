package graph

import (
	"fmt"

	"github.com/listenupapp/bookrec/internal/domain"
)

// bookRows converts books to the parameter rows consumed by replaceCypher.
// Absent attributes become nil, which Cypher leaves unset.
func bookRows(books []domain.Book) []any {
	rows := make([]any, 0, len(books))
	for seq, b := range books {
		genres := make([]any, 0, len(b.Genres))
		for pos, g := range b.Genres {
			genres = append(genres, map[string]any{"id": g, "position": int64(pos)})
		}

		row := map[string]any{
			"id":        b.ID,
			"seq":       int64(seq),
			"title":     nil,
			"age_limit": nil,
			"rating":    nil,
			"genres":    genres,
		}
		if b.Title != nil {
			row["title"] = *b.Title
		}
		if b.AgeLimit != nil {
			row["age_limit"] = int64(*b.AgeLimit)
		}
		if b.Rating != nil {
			row["rating"] = *b.Rating
		}
		rows = append(rows, row)
	}
	return rows
}

// bookFromRecord rebuilds a book from a candidateCypher result row.
// The driver returns integers as int64 and lists as []any.
func bookFromRecord(m map[string]any) (domain.Book, error) {
	id, ok := m["id"].(string)
	if !ok || id == "" {
		return domain.Book{}, fmt.Errorf("book record without id: %v", m["id"])
	}
	b := domain.Book{ID: id, Genres: []string{}}

	if t, ok := m["title"].(string); ok {
		b.Title = domain.Ptr(t)
	}
	switch v := m["age_limit"].(type) {
	case int64:
		b.AgeLimit = domain.Ptr(int(v))
	case float64:
		b.AgeLimit = domain.Ptr(int(v))
	}
	switch v := m["rating"].(type) {
	case float64:
		b.Rating = domain.Ptr(v)
	case int64:
		b.Rating = domain.Ptr(float64(v))
	}
	if genres, ok := m["genres"].([]any); ok {
		for _, g := range genres {
			if s, ok := g.(string); ok {
				b.Genres = append(b.Genres, s)
			}
		}
	}
	return b, nil
}
