package search

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/errors"
)

// buildCandidateQuery matches books carrying any of the genre ids whose age limit is
// absent or within the ceiling.
func buildCandidateQuery(filter domain.CandidateFilter) query.Query {
	genreQuery := bleve.NewDisjunctionQuery()
	for _, g := range filter.GenreIDs {
		tq := bleve.NewTermQuery(g)
		tq.SetField(fieldGenres)
		genreQuery.AddQuery(tq)
	}

	maxAge := float64(filter.MaxAge)
	inclusive := true
	withinLimit := bleve.NewNumericRangeInclusiveQuery(nil, &maxAge, nil, &inclusive)
	withinLimit.SetField(fieldAgeLimit)

	noLimit := bleve.NewBoolFieldQuery(false)
	noLimit.SetField(fieldHasAgeLimit)

	return bleve.NewConjunctionQuery(genreQuery, bleve.NewDisjunctionQuery(withinLimit, noLimit))
}

// QueryCandidates returns books matching the filter in catalog order.
func (s *CatalogIndex) QueryCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Book, error) {
	if len(filter.GenreIDs) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	total, err := s.index.DocCount()
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(buildCandidateQuery(filter), int(total), 0, false)
	req.Fields = []string{"*"}
	req.SortBy([]string{fieldSeq})

	result, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}

	books := make([]domain.Book, 0, len(result.Hits))
	for _, hit := range result.Hits {
		books = append(books, bookFromFields(hit.ID, hit.Fields))
	}
	return books, nil
}

// GetBook returns the indexed book with the given id.
func (s *CatalogIndex) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(bleve.NewDocIDQuery([]string{id}), 1, 0, false)
	req.Fields = []string{"*"}

	result, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if len(result.Hits) == 0 {
		return nil, errors.NotFoundf("book %s not found", id)
	}

	book := bookFromFields(result.Hits[0].ID, result.Hits[0].Fields)
	return &book, nil
}
