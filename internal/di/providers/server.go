package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/listenupapp/bookrec/internal/api"
	"github.com/listenupapp/bookrec/internal/config"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/ratelimit"
	"github.com/listenupapp/bookrec/internal/recommend"
)

// HTTPServerHandle wraps the HTTP server for lifecycle management.
type HTTPServerHandle struct {
	*http.Server
	logger *logger.Logger
	errc   chan error
}

// Start begins serving in a goroutine. Errors other than a clean shutdown
// are reported on Err.
func (h *HTTPServerHandle) Start() {
	h.logger.Info("Starting HTTP server", "addr", h.Addr)
	go func() {
		if err := h.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("HTTP server failed", "error", err)
			h.errc <- err
		}
		close(h.errc)
	}()
}

// Err is closed when the server stops and receives its error if it failed.
func (h *HTTPServerHandle) Err() <-chan error {
	return h.errc
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	h.logger.Info("Shutting down HTTP server")
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer builds the API server. It does not start listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	handle := do.MustInvoke[*CatalogHandle](i)
	rec := do.MustInvoke[*recommend.Recommender](i)
	limiter := do.MustInvoke[*ratelimit.KeyedRateLimiter](i)

	apiServer := api.NewServer(api.Deps{
		Recommender: rec,
		Catalog:     handle,
		Backend:     handle.Backend,
		Limiter:     limiter,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      log,
	})

	return &HTTPServerHandle{
		Server: &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           apiServer,
			ReadTimeout:       cfg.Server.ReadTimeout,
			ReadHeaderTimeout: cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
			IdleTimeout:       cfg.Server.IdleTimeout,
		},
		logger: log,
		errc:   make(chan error, 1),
	}, nil
}
