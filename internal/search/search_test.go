package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/errors"
)

// setupTestIndex creates a temporary on-disk catalog index for testing.
func setupTestIndex(t *testing.T) *CatalogIndex {
	t.Helper()

	index, err := NewCatalogIndex(Options{DataPath: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	return index
}

func testBooks() []domain.Book {
	return []domain.Book{
		{ID: "a", Title: domain.Ptr("A"), Genres: []string{"ScienceFiction"}, AgeLimit: domain.Ptr(12), Rating: domain.Ptr(4.5)},
		{ID: "b", Title: domain.Ptr("B"), Genres: []string{"ScienceFiction", "Fantasy"}, Rating: domain.Ptr(4.8)},
		{ID: "c", Genres: []string{"Horror"}, AgeLimit: domain.Ptr(18)},
		{ID: "d", Genres: []string{"Fantasy"}, AgeLimit: domain.Ptr(0)},
		{ID: "e", Genres: []string{}},
	}
}

func bookIDs(books []domain.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

func TestNewCatalogIndex(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCatalogIndex_QueryCandidates(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()
	require.NoError(t, index.ReplaceCatalog(ctx, testBooks()))

	tests := []struct {
		name   string
		filter domain.CandidateFilter
		want   []string
	}{
		{name: "genre and age", filter: domain.CandidateFilter{GenreIDs: []string{"ScienceFiction"}, MaxAge: 13}, want: []string{"a", "b"}},
		{name: "age ceiling", filter: domain.CandidateFilter{GenreIDs: []string{"ScienceFiction"}, MaxAge: 11}, want: []string{"b"}},
		{name: "limit equals age", filter: domain.CandidateFilter{GenreIDs: []string{"Horror"}, MaxAge: 18}, want: []string{"c"}},
		{name: "catalog order", filter: domain.CandidateFilter{GenreIDs: []string{"Fantasy", "ScienceFiction"}, MaxAge: 99}, want: []string{"a", "b", "d"}},
		{name: "no match", filter: domain.CandidateFilter{GenreIDs: []string{"Poetry"}, MaxAge: 99}, want: []string{}},
		{name: "no genres", filter: domain.CandidateFilter{MaxAge: 99}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := index.QueryCandidates(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, bookIDs(got))
		})
	}
}

func TestCatalogIndex_RoundTripsAttributes(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()
	require.NoError(t, index.ReplaceCatalog(ctx, testBooks()))

	got, err := index.QueryCandidates(ctx, domain.CandidateFilter{GenreIDs: []string{"ScienceFiction", "Horror", "Fantasy"}, MaxAge: 99})
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, testBooks()[0], got[0])
	assert.Equal(t, testBooks()[1], got[1])
	assert.Equal(t, testBooks()[2], got[2])
	assert.Equal(t, testBooks()[3], got[3])
}

func TestCatalogIndex_ReplaceCatalog(t *testing.T) {
	index, err := NewCatalogIndex(Options{})
	require.NoError(t, err)
	defer func() { _ = index.Close() }()

	ctx := context.Background()
	require.NoError(t, index.ReplaceCatalog(ctx, testBooks()))
	require.NoError(t, index.ReplaceCatalog(ctx, []domain.Book{{ID: "z", Genres: []string{"Poetry"}}}))

	count, err := index.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := index.QueryCandidates(ctx, domain.CandidateFilter{GenreIDs: []string{"Poetry"}, MaxAge: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, bookIDs(got))
}

func TestCatalogIndex_ReopensExisting(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewCatalogIndex(Options{DataPath: dir})
	require.NoError(t, err)
	require.NoError(t, first.ReplaceCatalog(ctx, testBooks()))
	require.NoError(t, first.Close())

	second, err := NewCatalogIndex(Options{DataPath: dir})
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	count, err := second.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(testBooks()), count)
}

func TestBookFromFields(t *testing.T) {
	b := bookFromFields("x", map[string]interface{}{
		fieldGenres:   "Drama",
		fieldAgeLimit: float64(16),
		fieldRating:   3.5,
	})

	assert.Equal(t, "x", b.ID)
	assert.Equal(t, []string{"Drama"}, b.Genres)
	assert.Nil(t, b.Title)
	require.NotNil(t, b.AgeLimit)
	assert.Equal(t, 16, *b.AgeLimit)
	require.NotNil(t, b.Rating)
	assert.InDelta(t, 3.5, *b.Rating, 1e-9)
}

func TestCatalogIndex_GetBook(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()
	require.NoError(t, index.ReplaceCatalog(ctx, testBooks()))

	got, err := index.GetBook(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, testBooks()[1], *got)

	_, err = index.GetBook(ctx, "missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
