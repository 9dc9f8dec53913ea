// Package main loads a catalog file into a persistent backend.
//
// It replaces the backend contents; the serving binaries can then start
// without -catalog and read the imported data.
//
// Usage:
//
//	go run ./cmd/catalog-import -catalog-backend sqlite -data-path ~/.bookrec -catalog books.owl
//	CATALOG_BACKEND=neo4j NEO4J_URI=neo4j://localhost:7687 go run ./cmd/catalog-import -catalog books.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/listenupapp/bookrec/internal/config"
	"github.com/listenupapp/bookrec/internal/di/providers"
	"github.com/listenupapp/bookrec/internal/id"
	"github.com/listenupapp/bookrec/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "catalog import failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if !cfg.Catalog.IsPersistent() {
		return fmt.Errorf("backend %q keeps no data; choose badger, sqlite, bleve or neo4j", cfg.Catalog.Backend)
	}
	if cfg.Catalog.SourcePath == "" {
		return fmt.Errorf("-catalog is required")
	}
	if cfg.Catalog.DataPath == "" && cfg.Catalog.Backend != config.BackendNeo4j {
		return fmt.Errorf("-data-path is required for the %s backend", cfg.Catalog.Backend)
	}

	log := logger.New(logger.Config{
		Writer:      os.Stderr,
		Environment: cfg.App.Environment,
		Level:       logger.ParseLevel(cfg.Logger.Level),
	}).WithField("import_id", id.MustGenerate("imp"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	handle, err := providers.OpenCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := handle.Shutdown(); err != nil {
			log.WithError(err).Error("Failed to close catalog")
		}
	}()

	n, err := providers.ImportCatalog(ctx, handle, cfg.Catalog.SourcePath, log)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d books into %s\n", n, cfg.Catalog.Backend)
	return nil
}
