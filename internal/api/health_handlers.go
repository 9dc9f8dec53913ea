package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// Health statuses.
const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status and the catalog backend in use",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Backend    string                     `json:"backend" doc:"Catalog backend serving recommendations"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	catalogHealth := s.checkCatalog(ctx)

	return &HealthOutput{
		Body: HealthResponse{
			Status:     catalogHealth.Status,
			Backend:    s.backend,
			Components: map[string]ComponentHealth{"catalog": catalogHealth},
		},
	}, nil
}

// checkCatalog verifies the catalog answers a count query.
func (s *Server) checkCatalog(ctx context.Context) ComponentHealth {
	// Handle nil catalog (e.g., in tests)
	if s.catalog == nil {
		return ComponentHealth{
			Status:  statusDegraded,
			Message: "catalog not configured",
		}
	}

	start := time.Now()
	count, err := s.catalog.Count(ctx)
	latency := time.Since(start)

	if err != nil {
		s.logger.ForRequest(getRequestID(ctx)).Warn("Catalog health check failed", "error", err)
		return ComponentHealth{
			Status:  statusUnhealthy,
			Latency: latency.String(),
			Message: "catalog unreachable",
		}
	}

	if count == 0 {
		return ComponentHealth{
			Status:  statusDegraded,
			Latency: latency.String(),
			Message: "catalog empty",
		}
	}

	return ComponentHealth{
		Status:  statusHealthy,
		Latency: latency.String(),
		Message: formatBookCount(count),
	}
}

func formatBookCount(count int) string {
	if count == 1 {
		return "1 book"
	}
	return strconv.Itoa(count) + " books"
}
