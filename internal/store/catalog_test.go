package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/errors"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "catalog.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testBooks() []domain.Book {
	return []domain.Book{
		{ID: "a", Title: domain.Ptr("A"), Genres: []string{"ScienceFiction"}, AgeLimit: domain.Ptr(12), Rating: domain.Ptr(4.5)},
		{ID: "b", Title: domain.Ptr("B"), Genres: []string{"ScienceFiction", "Fantasy"}, Rating: domain.Ptr(4.8)},
		{ID: "c", Genres: []string{"Horror"}, AgeLimit: domain.Ptr(18)},
		{ID: "d", Genres: []string{"Fantasy"}, AgeLimit: domain.Ptr(16)},
		{ID: "e", Genres: []string{"FantasyX"}},
	}
}

func bookIDs(books []domain.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

func TestStore_QueryCandidates(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceCatalog(ctx, testBooks()))

	tests := []struct {
		name   string
		filter domain.CandidateFilter
		want   []string
	}{
		{name: "genre and age", filter: domain.CandidateFilter{GenreIDs: []string{"ScienceFiction"}, MaxAge: 13}, want: []string{"a", "b"}},
		{name: "age ceiling", filter: domain.CandidateFilter{GenreIDs: []string{"ScienceFiction"}, MaxAge: 11}, want: []string{"b"}},
		{name: "catalog order across genres", filter: domain.CandidateFilter{GenreIDs: []string{"Fantasy", "ScienceFiction"}, MaxAge: 99}, want: []string{"a", "b", "d"}},
		{name: "genre prefix does not leak", filter: domain.CandidateFilter{GenreIDs: []string{"Fantasy"}, MaxAge: 99}, want: []string{"b", "d"}},
		{name: "no match", filter: domain.CandidateFilter{GenreIDs: []string{"Poetry"}, MaxAge: 99}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.QueryCandidates(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, bookIDs(got))
		})
	}
}

func TestStore_RoundTripsOptionalFields(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceCatalog(ctx, testBooks()))

	got, err := s.QueryCandidates(ctx, domain.CandidateFilter{GenreIDs: []string{"Horror"}, MaxAge: 18})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, testBooks()[2], got[0])
}

func TestStore_ReplaceCatalog(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceCatalog(ctx, testBooks()))
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	replacement := []domain.Book{{ID: "z", Genres: []string{"Poetry"}}}
	require.NoError(t, s.ReplaceCatalog(ctx, replacement))

	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.QueryCandidates(ctx, domain.CandidateFilter{GenreIDs: []string{"ScienceFiction"}, MaxAge: 99})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = s.GetBook(ctx, "a")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestStore_GetBook(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.ReplaceCatalog(ctx, testBooks()))

	book, err := s.GetBook(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "B", *book.Title)

	_, err = s.GetBook(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestStore_InMemory(t *testing.T) {
	s, err := New("", nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.ReplaceCatalog(context.Background(), testBooks()))
	got, err := s.QueryCandidates(context.Background(), domain.CandidateFilter{GenreIDs: []string{"Fantasy"}, MaxAge: 16})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d"}, bookIDs(got))
}

func TestStore_CanceledContext(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.ReplaceCatalog(context.Background(), testBooks()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.QueryCandidates(ctx, domain.CandidateFilter{GenreIDs: []string{"Fantasy"}, MaxAge: 99})
	assert.ErrorIs(t, err, context.Canceled)
}
