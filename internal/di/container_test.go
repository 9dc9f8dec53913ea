package di

import (
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookrec/internal/config"
	"github.com/listenupapp/bookrec/internal/di/providers"
	"github.com/listenupapp/bookrec/internal/logger"
	"github.com/listenupapp/bookrec/internal/recommend"
)

// testContainer replaces the config provider so tests never read os.Args.
func testContainer(t *testing.T, cfg *config.Config) *do.RootScope {
	t.Helper()

	injector := NewContainer()
	do.OverrideValue(injector, cfg)
	do.OverrideValue(injector, logger.Discard())
	t.Cleanup(func() { _ = injector.Shutdown() })
	return injector
}

func testConfig(backend, source, dataPath string) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Environment: "development"},
		Logger:  config.LoggerConfig{Level: "info"},
		Catalog: config.CatalogConfig{Backend: backend, SourcePath: source, DataPath: dataPath},
		Server: config.ServerConfig{
			Port:           "0",
			RateLimitRPS:   10,
			RateLimitBurst: 20,
			CORSOrigins:    []string{"*"},
		},
		Console: config.ConsoleConfig{ExitToken: "exit"},
	}
}

const fixture = "../catalog/testdata/books.json"

func TestBootstrap_Backends(t *testing.T) {
	tests := []struct {
		name     string
		backend  string
		dataPath func(t *testing.T) string
	}{
		{name: "memory", backend: config.BackendMemory},
		{name: "badger in memory", backend: config.BackendBadger},
		{name: "badger on disk", backend: config.BackendBadger, dataPath: func(t *testing.T) string { return t.TempDir() }},
		{name: "sqlite in memory", backend: config.BackendSQLite},
		{name: "sqlite on disk", backend: config.BackendSQLite, dataPath: func(t *testing.T) string { return t.TempDir() }},
		{name: "bleve in memory", backend: config.BackendBleve},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataPath := ""
			if tt.dataPath != nil {
				dataPath = tt.dataPath(t)
			}
			injector := testContainer(t, testConfig(tt.backend, fixture, dataPath))

			require.NoError(t, Bootstrap(injector))

			handle := do.MustInvoke[*providers.CatalogHandle](injector)
			assert.Equal(t, tt.backend, handle.Backend)

			count, err := handle.Count(t.Context())
			require.NoError(t, err)
			assert.Equal(t, 3, count)

			book, err := handle.GetBook(t.Context(), "hobbit")
			require.NoError(t, err)
			assert.Equal(t, []string{"Fantasy", "Adventure"}, book.Genres)

			rec := do.MustInvoke[*recommend.Recommender](injector)
			require.NotNil(t, rec)
		})
	}
}

func TestBootstrap_BadCatalogFails(t *testing.T) {
	injector := testContainer(t, testConfig(config.BackendMemory, "testdata/missing.json", ""))

	err := Bootstrap(injector)
	require.Error(t, err)
}

func TestProvideHTTPServer(t *testing.T) {
	injector := testContainer(t, testConfig(config.BackendMemory, fixture, ""))
	require.NoError(t, Bootstrap(injector))

	handle, err := do.Invoke[*providers.HTTPServerHandle](injector)
	require.NoError(t, err)
	assert.Equal(t, ":0", handle.Addr)
	assert.NotNil(t, handle.Handler)
}
