package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/listenupapp/bookrec/internal/domain"
	domainerrors "github.com/listenupapp/bookrec/internal/errors"
)

// record is the stored form of a book. Seq is its position in the imported catalog.
type record struct {
	Seq  int         `json:"seq"`
	Book domain.Book `json:"book"`
}

// ReplaceCatalog drops every stored book and writes books in order.
func (s *Store) ReplaceCatalog(ctx context.Context, books []domain.Book) error {
	if err := s.db.DropPrefix([]byte(bookPrefix), []byte(indexPrefix)); err != nil {
		return fmt.Errorf("drop catalog: %w", err)
	}

	batch := s.db.NewWriteBatch()
	defer batch.Cancel()

	for i := range books {
		if err := ctx.Err(); err != nil {
			return err
		}

		book := books[i]
		seq := formatSeq(i)
		data, err := json.Marshal(record{Seq: i, Book: book})
		if err != nil {
			return fmt.Errorf("marshal book %s: %w", book.ID, err)
		}

		if err := batch.Set([]byte(bookSeqPrefix+seq), data); err != nil {
			return fmt.Errorf("batch set book: %w", err)
		}
		if err := batch.Set([]byte(bookByIDPrefix+book.ID), []byte(seq)); err != nil {
			return fmt.Errorf("batch set id index: %w", err)
		}
		for _, g := range book.Genres {
			key := indexPrefix + genreIndexName + ":" + g + ":" + seq
			if err := batch.Set([]byte(key), []byte{}); err != nil {
				return fmt.Errorf("batch set genre index: %w", err)
			}
		}
	}

	if err := batch.Flush(); err != nil {
		return fmt.Errorf("flush catalog: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("catalog replaced", "books", len(books))
	}
	return nil
}

// QueryCandidates returns books matching the filter in catalog order.
// The genre index narrows the scan; the age ceiling is checked on the decoded record.
func (s *Store) QueryCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Book, error) {
	var books []domain.Book

	err := s.db.View(func(txn *badger.Txn) error {
		seqs, err := s.genreSeqs(ctx, txn, filter.GenreIDs)
		if err != nil {
			return err
		}

		for _, seq := range seqs {
			if err := ctx.Err(); err != nil {
				return err
			}

			var rec record
			key := buildKey(bookSeqPrefix, seq)
			err := s.get(txn, key, &rec)
			releaseKey(key)
			if err != nil {
				return fmt.Errorf("get book %s: %w", seq, err)
			}

			if filter.Matches(&rec.Book) {
				books = append(books, rec.Book)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

// genreSeqs collects the catalog positions indexed under any of the genres, sorted.
func (s *Store) genreSeqs(ctx context.Context, txn *badger.Txn, genreIDs []string) ([]string, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	seen := make(map[string]bool)
	var seqs []string
	for _, g := range genreIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		prefix := buildIndexKey(genreIndexName, g, "")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			seq := key[strings.LastIndexByte(key, ':')+1:]
			if !seen[seq] {
				seen[seq] = true
				seqs = append(seqs, seq)
			}
		}
		releaseKey(prefix)
	}

	slices.Sort(seqs)
	return seqs, nil
}

// GetBook returns the stored book with the given id.
func (s *Store) GetBook(_ context.Context, id string) (*domain.Book, error) {
	var rec record
	err := s.db.View(func(txn *badger.Txn) error {
		key := buildKey(bookByIDPrefix, id)
		item, err := txn.Get(key)
		releaseKey(key)
		if err != nil {
			return err
		}
		seq, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		seqKey := buildKey(bookSeqPrefix, string(seq))
		defer releaseKey(seqKey)
		return s.get(txn, seqKey, &rec)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domainerrors.NotFoundf("book %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &rec.Book, nil
}

// Count returns the number of stored books.
func (s *Store) Count(ctx context.Context) (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(bookByIDPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}
