// Package graph serves the book catalog from Neo4j.
//
// Books and genres are nodes linked by HAS_GENRE, so candidate selection is a
// single Cypher pattern match:
//
//	(:Book {id, title, age_limit, rating, seq})-[:HAS_GENRE {position}]->(:Genre {id})
package graph

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Options configures the Neo4j connection.
type Options struct {
	URI         string
	User        string
	Password    string
	Database    string
	Timeout     time.Duration
	MaxPoolSize int
}

// Catalog is a Neo4j-backed book catalog.
type Catalog struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *slog.Logger
}

// Open connects to Neo4j and verifies connectivity.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (*Catalog, error) {
	if opts.URI == "" {
		return nil, fmt.Errorf("graph: neo4j uri required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxPool := opts.MaxPoolSize
	if maxPool <= 0 {
		maxPool = 50
	}

	auth := neo4j.BasicAuth(opts.User, opts.Password, "")
	driver, err := neo4j.NewDriverWithContext(opts.URI, auth, func(cfg *neo4j.Config) {
		cfg.MaxConnectionPoolSize = maxPool
		cfg.SocketConnectTimeout = timeout
	})
	if err != nil {
		return nil, fmt.Errorf("graph: init driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("graph: verify connectivity: %w", err)
	}

	logger.Info("Neo4j catalog connected", "uri", opts.URI, "database", opts.Database)

	return &Catalog{
		driver:   driver,
		database: opts.Database,
		logger:   logger.With("client", "Neo4jCatalog"),
	}, nil
}

// Close releases the driver.
func (c *Catalog) Close(ctx context.Context) error {
	if c == nil || c.driver == nil {
		return nil
	}
	err := c.driver.Close(ctx)
	c.driver = nil
	return err
}

func (c *Catalog) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return c.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: c.database,
	})
}
