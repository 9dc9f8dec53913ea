// Package catalog loads book catalogs from files and serves them from memory.
package catalog

import (
	"context"
	"slices"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/errors"
)

// Memory is an in-memory catalog. Books are kept in load order and never modified.
type Memory struct {
	books []domain.Book
}

// NewMemory creates a catalog over a copy of books.
func NewMemory(books []domain.Book) *Memory {
	return &Memory{books: slices.Clone(books)}
}

// QueryCandidates returns matching books in load order.
func (m *Memory) QueryCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []domain.Book
	for i := range m.books {
		if filter.Matches(&m.books[i]) {
			out = append(out, m.books[i])
		}
	}
	return out, nil
}

// Count returns the number of books in the catalog.
func (m *Memory) Count(_ context.Context) (int, error) {
	return len(m.books), nil
}

// GetBook returns the first book with the given id.
func (m *Memory) GetBook(_ context.Context, id string) (*domain.Book, error) {
	for i := range m.books {
		if m.books[i].ID == id {
			book := m.books[i]
			book.Genres = slices.Clone(book.Genres)
			return &book, nil
		}
	}
	return nil, errors.NotFoundf("book %s not found", id)
}
