package providers

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/listenupapp/bookrec/internal/config"
	"github.com/listenupapp/bookrec/internal/console"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/ratelimit"
	"github.com/listenupapp/bookrec/internal/recommend"
)

// ProvideRecommender builds the recommender over the configured catalog.
func ProvideRecommender(i do.Injector) (*recommend.Recommender, error) {
	handle := do.MustInvoke[*CatalogHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return recommend.New(handle, log.With("component", "recommend")), nil
}

// ProvideRateLimiter creates the per-IP limiter for the HTTP API.
// The container stops its cleanup goroutine on shutdown.
func ProvideRateLimiter(i do.Injector) (*ratelimit.KeyedRateLimiter, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return ratelimit.New(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst), nil
}

// ProvideConsole creates an interactive session on stdin/stdout.
func ProvideConsole(i do.Injector) (*console.Session, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	rec := do.MustInvoke[*recommend.Recommender](i)

	return console.New(rec, log, console.Options{
		In:        os.Stdin,
		Out:       os.Stdout,
		ExitToken: cfg.Console.ExitToken,
	}), nil
}
