package providers

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/do/v2"

	"github.com/listenupapp/bookrec/internal/catalog"
	"github.com/listenupapp/bookrec/internal/config"
	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/errors"
	"github.com/listenupapp/bookrec/internal/graph"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/search"
	"github.com/listenupapp/bookrec/internal/store"
	"github.com/listenupapp/bookrec/internal/store/sqlite"
)

// Catalog is what every backend offers the rest of the application.
type Catalog interface {
	QueryCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Book, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	Count(ctx context.Context) (int, error)
}

// Replacer is implemented by backends that keep their own copy of the catalog.
type Replacer interface {
	ReplaceCatalog(ctx context.Context, books []domain.Book) error
}

// CatalogHandle wraps the configured catalog backend for lifecycle management.
type CatalogHandle struct {
	Catalog
	Backend string
	close   func() error
}

// Shutdown implements do.Shutdownable.
func (h *CatalogHandle) Shutdown() error {
	if h.close == nil {
		return nil
	}
	return h.close()
}

// ProvideCatalog opens the configured backend and, when a source file is
// configured for a persistent backend, replaces its contents with that file.
func ProvideCatalog(i do.Injector) (*CatalogHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
	defer cancel()

	handle, err := OpenCatalog(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if cfg.Catalog.IsPersistent() && cfg.Catalog.SourcePath != "" {
		if _, err := ImportCatalog(ctx, handle, cfg.Catalog.SourcePath, log); err != nil {
			_ = handle.Shutdown()
			return nil, err
		}
	}

	count, err := handle.Count(ctx)
	if err != nil {
		_ = handle.Shutdown()
		return nil, errors.Wrap(err, errors.CodeCatalog, "count catalog")
	}
	log.Info("Catalog ready", "backend", handle.Backend, "books", count)

	return handle, nil
}

// OpenCatalog opens the backend named in cfg without importing anything.
// The memory backend is loaded from the source file here, since it has no other content.
func OpenCatalog(ctx context.Context, cfg *config.Config, log *logger.Logger) (*CatalogHandle, error) {
	backendLog := log.With("catalog", cfg.Catalog.Backend)
	dataPath := cfg.Catalog.DataPath

	if dataPath != "" && cfg.Catalog.Backend != config.BackendNeo4j {
		if err := os.MkdirAll(dataPath, 0o750); err != nil {
			return nil, errors.Wrapf(err, errors.CodeCatalog, "create data path %s", dataPath)
		}
	}

	switch cfg.Catalog.Backend {
	case config.BackendMemory:
		books, err := catalog.LoadFile(cfg.Catalog.SourcePath)
		if err != nil {
			return nil, err
		}
		warnUnknownGenres(log, books)
		return &CatalogHandle{Catalog: catalog.NewMemory(books), Backend: cfg.Catalog.Backend}, nil

	case config.BackendBadger:
		path := ""
		if dataPath != "" {
			path = filepath.Join(dataPath, "badger")
		}
		s, err := store.New(path, backendLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeCatalog, "open badger catalog")
		}
		return &CatalogHandle{Catalog: s, Backend: cfg.Catalog.Backend, close: s.Close}, nil

	case config.BackendSQLite:
		path := ""
		if dataPath != "" {
			path = filepath.Join(dataPath, "catalog.db")
		}
		s, err := sqlite.Open(path, backendLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeCatalog, "open sqlite catalog")
		}
		return &CatalogHandle{Catalog: s, Backend: cfg.Catalog.Backend, close: s.Close}, nil

	case config.BackendBleve:
		idx, err := search.NewCatalogIndex(search.Options{DataPath: dataPath, Logger: backendLog})
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeCatalog, "open bleve catalog")
		}
		return &CatalogHandle{Catalog: idx, Backend: cfg.Catalog.Backend, close: idx.Close}, nil

	case config.BackendNeo4j:
		g, err := graph.Open(ctx, graph.Options{
			URI:         cfg.Neo4j.URI,
			User:        cfg.Neo4j.User,
			Password:    cfg.Neo4j.Password,
			Database:    cfg.Neo4j.Database,
			Timeout:     cfg.Neo4j.Timeout,
			MaxPoolSize: cfg.Neo4j.MaxPoolSize,
		}, backendLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeCatalog, "open neo4j catalog")
		}
		closeGraph := func() error {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Neo4j.Timeout)
			defer cancel()
			return g.Close(ctx)
		}
		return &CatalogHandle{Catalog: g, Backend: cfg.Catalog.Backend, close: closeGraph}, nil

	default:
		return nil, errors.Catalogf("unknown catalog backend %q", cfg.Catalog.Backend)
	}
}

// ImportCatalog loads path and replaces the backend contents with it.
// It returns the number of books imported.
func ImportCatalog(ctx context.Context, handle *CatalogHandle, path string, log *logger.Logger) (int, error) {
	replacer, ok := handle.Catalog.(Replacer)
	if !ok {
		return 0, errors.Catalogf("backend %s does not support import", handle.Backend)
	}

	start := time.Now()
	books, err := catalog.LoadFile(path)
	if err != nil {
		return 0, err
	}
	warnUnknownGenres(log, books)

	if err := replacer.ReplaceCatalog(ctx, books); err != nil {
		return 0, errors.Wrapf(err, errors.CodeCatalog, "import into %s", handle.Backend)
	}

	log.Info("Catalog imported",
		"backend", handle.Backend,
		"source", path,
		"books", len(books),
		"duration", time.Since(start),
	)
	return len(books), nil
}

// warnUnknownGenres logs genre ids that no reader word can select.
func warnUnknownGenres(log *logger.Logger, books []domain.Book) {
	if unknown := catalog.UnknownGenres(books); len(unknown) > 0 {
		log.Warn("Catalog uses genres outside the vocabulary", "genres", unknown)
	}
}
