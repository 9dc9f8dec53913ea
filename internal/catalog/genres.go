package catalog

import (
	"slices"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/genre"
)

// UnknownGenres returns the sorted, distinct genre ids in books that no reader
// word maps to. Books carrying only such genres can never be recommended.
func UnknownGenres(books []domain.Book) []string {
	var unknown []string
	for i := range books {
		for _, g := range books[i].Genres {
			if !genre.IsCanonical(g) && !slices.Contains(unknown, g) {
				unknown = append(unknown, g)
			}
		}
	}
	slices.Sort(unknown)
	return unknown
}
