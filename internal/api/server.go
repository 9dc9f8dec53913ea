// Package api provides the HTTP API server and handlers for the book recommender.
package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/listenupapp/bookrec/internal/domain"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/ratelimit"
	"github.com/listenupapp/bookrec/internal/recommend"
)

// Version is reported in the OpenAPI document.
const Version = "1.0.0"

// Recommender answers one parsed profile.
type Recommender interface {
	Recommend(ctx context.Context, p domain.UserProfile) (*recommend.Result, error)
}

// Catalog is the read side of the catalog backend behind the recommender.
type Catalog interface {
	Count(ctx context.Context) (int, error)
	GetBook(ctx context.Context, id string) (*domain.Book, error)
}

// Deps groups what the server needs from the rest of the application.
type Deps struct {
	Recommender Recommender
	Catalog     Catalog // optional; health reports degraded and book lookups fail without it
	Backend     string         // catalog backend name shown by /health
	Limiter     *ratelimit.KeyedRateLimiter
	CORSOrigins []string
	Logger      *logger.Logger
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	recommender Recommender
	catalog     Catalog
	backend     string
	limiter     *ratelimit.KeyedRateLimiter
	router      *chi.Mux
	api         huma.API
	logger      *logger.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}

	s := &Server{
		recommender: deps.Recommender,
		catalog:     deps.Catalog,
		backend:     deps.Backend,
		limiter:     deps.Limiter,
		router:      chi.NewRouter(),
		logger:      deps.Logger,
	}

	s.setupMiddleware(deps.CORSOrigins)

	humaConfig := huma.DefaultConfig("Book Recommender API", Version)
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerGenreRoutes()
	s.registerRecommendationRoutes()
	s.registerBookRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(origins []string) {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestContext)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))
	if s.limiter != nil {
		s.router.Use(RateLimitMiddleware(s.limiter, s.logger))
	}
}
