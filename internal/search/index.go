package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/listenupapp/bookrec/internal/domain"
)

// CatalogIndex wraps a Bleve index holding the book catalog.
//
// Thread safety: All public methods are safe for concurrent use.
// The mutex protects against index corruption during rebuild operations.
type CatalogIndex struct {
	index  bleve.Index
	path   string // empty for an in-memory index
	logger *slog.Logger
	mu     sync.RWMutex
}

// Options configures the catalog index.
type Options struct {
	DataPath string       // Directory for index storage; empty keeps the index in memory
	Logger   *slog.Logger // Logger for operations (uses discard if nil)
}

// mappingVersion is incremented whenever the index mapping changes.
// This triggers an automatic rebuild on startup when the version doesn't match.
const mappingVersion = "1"

// NewCatalogIndex creates or opens a catalog index.
// If an existing index is found, it opens it. Otherwise, creates a new one.
// If the existing index is corrupted or has an outdated mapping, it's removed and recreated.
func NewCatalogIndex(opts Options) (*CatalogIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if opts.DataPath == "" {
		index, err := bleve.NewMemOnly(buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create in-memory index: %w", err)
		}
		logger.Info("created in-memory catalog index", "mapping_version", mappingVersion)
		return &CatalogIndex{index: index, logger: logger}, nil
	}

	indexPath := filepath.Join(opts.DataPath, "catalog.bleve")
	versionPath := filepath.Join(opts.DataPath, "catalog.version")

	var index bleve.Index
	var err error
	needsRebuild := false

	indexExists := false
	if _, statErr := os.Stat(indexPath); statErr == nil {
		indexExists = true
	}

	if indexExists {
		existingVersion, readErr := os.ReadFile(versionPath)
		if readErr != nil {
			logger.Info("catalog index has no version file, will rebuild with current mapping",
				"new_version", mappingVersion,
			)
			needsRebuild = true
		} else if string(existingVersion) != mappingVersion {
			logger.Info("catalog index mapping version changed, will rebuild",
				"old_version", string(existingVersion),
				"new_version", mappingVersion,
			)
			needsRebuild = true
		}
	}

	if !needsRebuild && indexExists {
		index, err = bleve.Open(indexPath)
		if err != nil {
			logger.Warn("failed to open existing index, will recreate",
				"path", indexPath,
				"error", err,
			)
			needsRebuild = true
		}
	}

	if needsRebuild {
		if removeErr := os.RemoveAll(indexPath); removeErr != nil {
			return nil, fmt.Errorf("remove old index: %w", removeErr)
		}
		index = nil
	}

	if index == nil {
		if err := os.MkdirAll(opts.DataPath, 0o755); err != nil {
			return nil, fmt.Errorf("create index dir: %w", err)
		}
		index, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		if writeErr := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); writeErr != nil {
			logger.Warn("failed to write catalog index version file", "error", writeErr)
		}
		logger.Info("created new catalog index", "path", indexPath, "mapping_version", mappingVersion)
	} else {
		logger.Info("opened existing catalog index", "path", indexPath)
	}

	return &CatalogIndex{
		index:  index,
		path:   indexPath,
		logger: logger,
	}, nil
}

// Close closes the index and releases resources.
func (s *CatalogIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// Count returns the number of indexed books.
func (s *CatalogIndex) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, err := s.index.DocCount()
	return int(n), err
}

// ReplaceCatalog drops the index and indexes books in catalog order.
// For large catalogs (>500 books), documents are committed in chunks.
func (s *CatalogIndex) ReplaceCatalog(ctx context.Context, books []domain.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.rebuild(); err != nil {
		return err
	}

	const batchSize = 500

	for i := 0; i < len(books); i += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(i+batchSize, len(books))
		batch := s.index.NewBatch()
		for seq := i; seq < end; seq++ {
			doc := BookDocument{Seq: seq, Book: books[seq]}
			if err := batch.Index(doc.Book.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.Book.ID, err)
			}
		}

		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	s.logger.Info("catalog indexed", "books", len(books))
	return nil
}

// rebuild drops the existing index and creates an empty one. Caller holds mu.
func (s *CatalogIndex) rebuild() error {
	if err := s.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}

	var (
		index bleve.Index
		err   error
	)
	if s.path == "" {
		index, err = bleve.NewMemOnly(buildIndexMapping())
	} else {
		if err := os.RemoveAll(s.path); err != nil {
			return fmt.Errorf("remove index: %w", err)
		}
		index, err = bleve.New(s.path, buildIndexMapping())
	}
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	s.index = index
	return nil
}
