package api

import (
	"encoding/json"
	"net"
	"net/http"

	domainerrors "github.com/listenupapp/bookrec/internal/errors"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/ratelimit"
)

// RateLimitMiddleware creates a middleware that rate limits requests by IP.
// Returns 429 Too Many Requests when limit is exceeded.
func RateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := getClientIP(r)

			if !limiter.Allow(key) {
				log.ForRequest(getRequestID(r.Context())).Warn("Rate limit exceeded",
					"ip", key,
					"path", r.URL.Path,
				)
				writeTooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeTooManyRequests(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(APIErrorEnvelope{
		Version: EnvelopeVersion,
		Code:    string(domainerrors.CodeRateLimited),
		Message: "Too many requests. Please try again later.",
	})
}

// getClientIP returns the client address without its port. middleware.RealIP
// has already replaced RemoteAddr with X-Forwarded-For / X-Real-IP when present.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
