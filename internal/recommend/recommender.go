// Package recommend builds and runs the filter-and-rank query behind a reader profile.
package recommend

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/errors"
	"github.com/listenupapp/bookrec/internal/genre"
)

// Catalog is the read-only book store queried by the recommender.
//
// QueryCandidates returns books whose genres intersect filter.GenreIDs and whose
// age limit is absent or <= filter.MaxAge, in a stable catalog iteration order.
// Returning a superset is allowed; the recommender filters again.
type Catalog interface {
	QueryCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Book, error)
}

// Recommender validates profiles, derives canonical genres and ranks catalog candidates.
// It keeps no state between calls and is safe for concurrent use when the catalog is.
type Recommender struct {
	catalog Catalog
	logger  *slog.Logger
}

// New creates a recommender over the given catalog. logger may be nil.
func New(catalog Catalog, logger *slog.Logger) *Recommender {
	return &Recommender{catalog: catalog, logger: logger}
}

// Recommend runs one query round-trip for the profile.
// Negative outcomes are reported in the Result; the error is non-nil only when
// the catalog itself fails.
func (r *Recommender) Recommend(ctx context.Context, p domain.UserProfile) (*Result, error) {
	res := &Result{
		Profile:         p,
		GenreIDs:        []string{},
		Recommendations: []domain.Recommendation{},
	}

	if !p.IsValid() {
		res.Outcome = OutcomeInvalidInput
		return res, nil
	}

	res.GenreIDs = genre.Canonicalize(p.Genres)
	if len(res.GenreIDs) == 0 {
		res.Outcome = OutcomeNoMappedGenres
		return res, nil
	}

	filter := domain.CandidateFilter{GenreIDs: res.GenreIDs, MaxAge: p.Age}
	books, err := r.catalog.QueryCandidates(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeUnavailable, "query catalog")
	}

	candidates := selectCandidates(books, filter)
	if len(candidates) == 0 {
		res.Outcome = OutcomeNoMatches
		return res, nil
	}

	Rank(candidates)
	for i := range candidates {
		res.Recommendations = append(res.Recommendations, domain.NewRecommendation(&candidates[i]))
	}
	res.Outcome = OutcomeSuccess

	if r.logger != nil {
		r.logger.DebugContext(ctx, "recommendation query",
			"age", p.Age,
			"genres", res.GenreIDs,
			"candidates", len(books),
			"results", len(res.Recommendations),
		)
	}
	return res, nil
}

// selectCandidates re-applies the filter and drops repeated ids, keeping catalog order.
func selectCandidates(books []domain.Book, filter domain.CandidateFilter) []domain.Book {
	out := make([]domain.Book, 0, len(books))
	seen := make(map[string]bool, len(books))
	for i := range books {
		b := &books[i]
		if seen[b.ID] || !filter.Matches(b) {
			continue
		}
		seen[b.ID] = true
		out = append(out, *b)
	}
	return out
}

// Rank orders books by rating, highest first. Books without a rating go after every
// rated book. Ties keep their relative input order.
func Rank(books []domain.Book) {
	slices.SortStableFunc(books, func(a, b domain.Book) int {
		return compareRating(a.Rating, b.Rating)
	})
}

// compareRating orders present ratings descending and absent ratings last.
func compareRating(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*b, *a)
	}
}
