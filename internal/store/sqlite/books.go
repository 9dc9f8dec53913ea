package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/listenupapp/bookrec/internal/domain"
	domainerrors "github.com/listenupapp/bookrec/internal/errors"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
var bookColumns = []string{"b.seq", "b.id", "b.title", "b.age_limit", "b.rating"}

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
// Genres are attached separately.
func scanBook(scanner interface{ Scan(dest ...any) error }) (int, domain.Book, error) {
	var (
		seq      int
		b        domain.Book
		title    sql.NullString
		ageLimit sql.NullInt64
		rating   sql.NullFloat64
	)

	if err := scanner.Scan(&seq, &b.ID, &title, &ageLimit, &rating); err != nil {
		return 0, b, err
	}

	if title.Valid {
		b.Title = domain.Ptr(title.String)
	}
	if ageLimit.Valid {
		b.AgeLimit = domain.Ptr(int(ageLimit.Int64))
	}
	if rating.Valid {
		b.Rating = domain.Ptr(rating.Float64)
	}
	b.Genres = []string{}
	return seq, b, nil
}

// candidateQuery builds the filter query: books tagged with any of the genres whose
// age limit is absent or within the ceiling, in catalog order.
func candidateQuery(filter domain.CandidateFilter) squirrel.SelectBuilder {
	genres := squirrel.Select("1").
		From("book_genres bg").
		Where("bg.book_id = b.id").
		Where(squirrel.Eq{"bg.genre_id": filter.GenreIDs})

	return squirrel.Select(bookColumns...).
		From("books b").
		Where(squirrel.Expr("EXISTS (?)", genres)).
		Where(squirrel.Or{
			squirrel.Eq{"b.age_limit": nil},
			squirrel.LtOrEq{"b.age_limit": filter.MaxAge},
		}).
		OrderBy("b.seq")
}

// QueryCandidates returns books matching the filter in catalog order.
func (s *Store) QueryCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Book, error) {
	query, args, err := candidateQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build candidate query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		_, b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}

	if err := s.attachGenres(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

// attachGenres loads the genre lists of books in one query, preserving stored order.
func (s *Store) attachGenres(ctx context.Context, books []domain.Book) error {
	if len(books) == 0 {
		return nil
	}

	ids := make([]string, len(books))
	byID := make(map[string]int, len(books))
	for i := range books {
		ids[i] = books[i].ID
		byID[books[i].ID] = i
	}

	query, args, err := squirrel.Select("book_id", "genre_id").
		From("book_genres").
		Where(squirrel.Eq{"book_id": ids}).
		OrderBy("book_id", "position").
		ToSql()
	if err != nil {
		return fmt.Errorf("build genre query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID, genreID string
		if err := rows.Scan(&bookID, &genreID); err != nil {
			return fmt.Errorf("scan genre: %w", err)
		}
		if i, ok := byID[bookID]; ok {
			books[i].Genres = append(books[i].Genres, genreID)
		}
	}
	return rows.Err()
}

// GetBook returns the book with the given id.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	query, args, err := squirrel.Select(bookColumns...).
		From("books b").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build book query: %w", err)
	}

	_, b, err := scanBook(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domainerrors.NotFoundf("book %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	books := []domain.Book{b}
	if err := s.attachGenres(ctx, books); err != nil {
		return nil, err
	}
	return &books[0], nil
}

// Count returns the number of stored books.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

// ReplaceCatalog deletes every stored book and inserts books in order, in one transaction.
func (s *Store) ReplaceCatalog(ctx context.Context, books []domain.Book) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after Commit is a no-op

	for _, stmt := range []string{"DELETE FROM book_genres", "DELETE FROM books"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
	}

	for seq, b := range books {
		query, args, err := squirrel.Insert("books").
			Columns("seq", "id", "title", "age_limit", "rating").
			Values(seq, b.ID, nullable(b.Title), nullable(b.AgeLimit), nullable(b.Rating)).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert book %s: %w", b.ID, err)
		}

		for pos, g := range b.Genres {
			query, args, err := squirrel.Insert("book_genres").
				Options("OR IGNORE").
				Columns("book_id", "genre_id", "position").
				Values(b.ID, g, pos).
				ToSql()
			if err != nil {
				return fmt.Errorf("build genre insert: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("insert genre %s for book %s: %w", g, b.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("catalog replaced", "books", len(books))
	}
	return nil
}

// nullable converts an optional attribute to a driver value: nil becomes NULL.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
