package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/listenupapp/bookrec/internal/id"
)

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-ID"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const contextKeyRequestID contextKey = "request_id"

// maxClientRequestID bounds ids accepted from the X-Request-ID header.
const maxClientRequestID = 64

// requestContext assigns a request id, echoes it in the response and logs
// one line per request once it completes.
func (s *Server) requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxClientRequestID {
			requestID = id.NewRequestID()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		s.logger.ForRequest(requestID).InfoContext(ctx, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}

// getRequestID extracts the request id from request context.
// Returns empty string outside the middleware chain.
func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(contextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}
