package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/errors"
)

const candidateCypher = `
MATCH (b:Book)-[:HAS_GENRE]->(g:Genre)
WHERE g.id IN $genre_ids AND (b.age_limit IS NULL OR b.age_limit <= $max_age)
WITH DISTINCT b
MATCH (b)-[r:HAS_GENRE]->(all:Genre)
WITH b, all ORDER BY b.seq, r.position
RETURN b.id AS id, b.title AS title, b.age_limit AS age_limit, b.rating AS rating, b.seq AS seq,
       collect(all.id) AS genres
ORDER BY seq
`

const bookCypher = `
MATCH (b:Book {id: $id})
OPTIONAL MATCH (b)-[r:HAS_GENRE]->(g:Genre)
WITH b, g ORDER BY b.seq, r.position
RETURN b.id AS id, b.title AS title, b.age_limit AS age_limit, b.rating AS rating, b.seq AS seq,
       collect(g.id) AS genres
ORDER BY seq
LIMIT 1
`

const replaceCypher = `
UNWIND $books AS row
CREATE (b:Book {id: row.id, seq: row.seq})
SET b.title = row.title, b.age_limit = row.age_limit, b.rating = row.rating
WITH b, row
UNWIND row.genres AS gr
MERGE (g:Genre {id: gr.id})
MERGE (b)-[r:HAS_GENRE]->(g)
ON CREATE SET r.position = gr.position
`

// candidateParams converts a filter to Cypher parameters.
func candidateParams(filter domain.CandidateFilter) map[string]any {
	ids := make([]any, len(filter.GenreIDs))
	for i, g := range filter.GenreIDs {
		ids[i] = g
	}
	return map[string]any{
		"genre_ids": ids,
		"max_age":   int64(filter.MaxAge),
	}
}

// QueryCandidates returns books matching the filter in catalog order.
func (c *Catalog) QueryCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Book, error) {
	if len(filter.GenreIDs) == 0 {
		return nil, nil
	}

	session := c.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, candidateCypher, candidateParams(filter))
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}

		books := make([]domain.Book, 0, len(records))
		for _, rec := range records {
			b, err := bookFromRecord(rec.AsMap())
			if err != nil {
				return nil, err
			}
			books = append(books, b)
		}
		return books, nil
	})
	if err != nil {
		return nil, fmt.Errorf("graph: query candidates: %w", err)
	}

	books, _ := out.([]domain.Book)
	return books, nil
}

// GetBook returns the first book with the given id.
func (c *Catalog) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	session := c.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, bookCypher, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, nil
		}
		b, err := bookFromRecord(records[0].AsMap())
		if err != nil {
			return nil, err
		}
		return &b, nil
	})
	if err != nil {
		return nil, fmt.Errorf("graph: get book: %w", err)
	}

	book, _ := out.(*domain.Book)
	if book == nil {
		return nil, errors.NotFoundf("book %s not found", id)
	}
	return book, nil
}

// ReplaceCatalog deletes every Book node and writes books in order, in one transaction.
// Genre nodes are shared and kept.
func (c *Catalog) ReplaceCatalog(ctx context.Context, books []domain.Book) error {
	session := c.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	// Best-effort schema init.
	for _, q := range []string{
		`CREATE CONSTRAINT book_id_unique IF NOT EXISTS FOR (b:Book) REQUIRE b.id IS UNIQUE`,
		`CREATE CONSTRAINT genre_id_unique IF NOT EXISTS FOR (g:Genre) REQUIRE g.id IS UNIQUE`,
	} {
		if res, err := session.Run(ctx, q, nil); err != nil {
			c.logger.Warn("neo4j schema init failed (continuing)", "error", err)
		} else {
			_, _ = res.Consume(ctx)
		}
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (b:Book) DETACH DELETE b`, nil)
		if err != nil {
			return nil, err
		}
		if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}

		if len(books) == 0 {
			return nil, nil
		}
		res, err = tx.Run(ctx, replaceCypher, map[string]any{"books": bookRows(books)})
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("graph: replace catalog: %w", err)
	}

	c.logger.Info("catalog replaced", "books", len(books))
	return nil
}

// Count returns the number of Book nodes.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	session := c.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (b:Book) RETURN count(b) AS n`, nil)
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		n, _ := rec.AsMap()["n"].(int64)
		return int(n), nil
	})
	if err != nil {
		return 0, fmt.Errorf("graph: count books: %w", err)
	}
	n, _ := out.(int)
	return n, nil
}
