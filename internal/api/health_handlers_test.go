package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookrec/internal/catalog"
)

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		catalog    Catalog
		wantStatus string
	}{
		{name: "catalog with books", catalog: catalog.NewMemory(testBooks()), wantStatus: "healthy"},
		{name: "empty catalog", catalog: catalog.NewMemory(nil), wantStatus: "degraded"},
		{name: "no catalog", catalog: nil, wantStatus: "degraded"},
		{name: "catalog unreachable", catalog: failingCatalog{}, wantStatus: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestServer(t, func(d *Deps) {
				d.Catalog = tt.catalog
				d.Backend = "sqlite"
			})

			resp := ts.api.Get("/health")
			require.Equal(t, http.StatusOK, resp.Code)

			health := decodeEnvelope[HealthResponse](t, resp.Body.Bytes()).Data
			assert.Equal(t, tt.wantStatus, health.Status)
			assert.Equal(t, "sqlite", health.Backend)
			assert.Equal(t, tt.wantStatus, health.Components["catalog"].Status)
		})
	}
}

func TestFormatBookCount(t *testing.T) {
	assert.Equal(t, "1 book", formatBookCount(1))
	assert.Equal(t, "3 books", formatBookCount(3))
}
