package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configEnvKeys lists every variable Load reads.
var configEnvKeys = []string{
	"ENV", "LOG_LEVEL", "CATALOG_BACKEND", "CATALOG_PATH", "DATA_PATH",
	"NEO4J_URI", "NEO4J_USER", "NEO4J_PASSWORD", "NEO4J_DATABASE", "NEO4J_TIMEOUT", "NEO4J_MAX_POOL_SIZE",
	"SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ORIGINS", "EXIT_TOKEN",
}

// clearConfigEnv unsets config variables for the duration of the test.
// Variables must be absent, not empty, for .env values to apply.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "") // restores the original value on cleanup
		os.Unsetenv(key)  //nolint:errcheck // Test setup
	}
}

func validConfig() *Config {
	return &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info"},
		Catalog: CatalogConfig{Backend: BackendMemory, SourcePath: "/catalog/books.owl"},
		Server:  ServerConfig{RateLimitRPS: 10, RateLimitBurst: 20},
		Console: ConsoleConfig{ExitToken: "exit"},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true},  // case insensitive
		{"trace", false}, // not supported
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_Backends(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "memory with source", mutate: func(*Config) {}},
		{
			name:    "memory without source",
			mutate:  func(c *Config) { c.Catalog.SourcePath = "" },
			wantErr: "catalog path is required",
		},
		{name: "badger without source", mutate: func(c *Config) { c.Catalog.Backend = BackendBadger; c.Catalog.SourcePath = "" }},
		{name: "sqlite", mutate: func(c *Config) { c.Catalog.Backend = BackendSQLite }},
		{name: "bleve", mutate: func(c *Config) { c.Catalog.Backend = BackendBleve }},
		{
			name:    "neo4j without uri",
			mutate:  func(c *Config) { c.Catalog.Backend = BackendNeo4j },
			wantErr: "NEO4J_URI is required",
		},
		{
			name: "neo4j with uri",
			mutate: func(c *Config) {
				c.Catalog.Backend = BackendNeo4j
				c.Neo4j.URI = "neo4j://localhost:7687"
			},
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Catalog.Backend = "jena" },
			wantErr: "invalid catalog backend",
		},
		{
			name:    "zero rate",
			mutate:  func(c *Config) { c.Server.RateLimitRPS = 0 },
			wantErr: "rate limit rps",
		},
		{
			name:    "zero burst",
			mutate:  func(c *Config) { c.Server.RateLimitBurst = 0 },
			wantErr: "rate limit burst",
		},
		{
			name:    "blank exit token",
			mutate:  func(c *Config) { c.Console.ExitToken = "  " },
			wantErr: "exit token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load([]string{"-catalog", "/srv/books.owl", "-env-file", filepath.Join(t.TempDir(), "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, BackendMemory, cfg.Catalog.Backend)
	assert.Equal(t, "/srv/books.owl", cfg.Catalog.SourcePath)
	assert.Empty(t, cfg.Catalog.DataPath)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.InDelta(t, 10.0, cfg.Server.RateLimitRPS, 1e-9)
	assert.Equal(t, 20, cfg.Server.RateLimitBurst)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "neo4j", cfg.Neo4j.User)
	assert.Equal(t, 10*time.Second, cfg.Neo4j.Timeout)
	assert.Equal(t, 50, cfg.Neo4j.MaxPoolSize)
	assert.Equal(t, "exit", cfg.Console.ExitToken)
}

func TestLoad_Precedence(t *testing.T) {
	clearConfigEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := `# Test env file
CATALOG_BACKEND=sqlite
SERVER_PORT=9000
LOG_LEVEL=warn
`
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	// LOG_LEVEL from the environment beats the .env file.
	t.Setenv("LOG_LEVEL", "debug")
	// RATE_LIMIT_BURST is overridden by the flag.
	t.Setenv("RATE_LIMIT_BURST", "5")

	cfg, err := Load([]string{"-env-file", envFile, "-rate-limit-burst", "7", "-cors-origins", "https://a.example, https://b.example"})
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Catalog.Backend)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 7, cfg.Server.RateLimitBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearConfigEnv(t)

	_, err := Load([]string{"-catalog", "books.json", "-read-timeout", "soon", "-env-file", ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server_read_timeout")
}

func TestLoad_ValidationFailure(t *testing.T) {
	clearConfigEnv(t)

	_, err := Load([]string{"-env-file", ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoad_UnknownFlag(t *testing.T) {
	clearConfigEnv(t)

	_, err := Load([]string{"-no-such-flag"})
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	homeDir, _ := os.UserHomeDir() //nolint:errcheck // Test setup

	tests := []struct {
		name string
		in   string
		want func(string) bool
	}{
		{name: "empty", in: "", want: func(s string) bool { return s == "" }},
		{name: "tilde", in: "~/books.owl", want: func(s string) bool { return s == filepath.Join(homeDir, "books.owl") }},
		{name: "absolute", in: "/data/books.owl", want: func(s string) bool { return s == "/data/books.owl" }},
		{name: "relative", in: "data/books.owl", want: filepath.IsAbs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPath(tt.in, "")
			require.NoError(t, err)
			assert.True(t, tt.want(got), "got %q", got)
		})
	}
}

func TestGetConfigValue_Precedence(t *testing.T) {
	// Test flag value takes priority.
	result := getConfigValue("flag-value", "ENV_KEY", "default-value")
	assert.Equal(t, "flag-value", result)

	// Test env var when flag is empty.
	t.Setenv("TEST_ENV_KEY", "env-value")

	result = getConfigValue("", "TEST_ENV_KEY", "default-value")
	assert.Equal(t, "env-value", result)

	// Test default when both are empty.
	result = getConfigValue("", "NONEXISTENT_KEY", "default-value")
	assert.Equal(t, "default-value", result)
}

func TestGetNumericConfigValues(t *testing.T) {
	assert.Equal(t, 3, getIntConfigValue("3", "UNUSED", 1))
	assert.Equal(t, 1, getIntConfigValue("three", "UNUSED", 1))
	assert.InDelta(t, 2.5, getFloatConfigValue("2.5", "UNUSED", 1), 1e-9)
	assert.InDelta(t, 1.0, getFloatConfigValue("x", "UNUSED", 1), 1e-9)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Nil(t, splitList(""))
}

func TestCatalogConfig_IsPersistent(t *testing.T) {
	assert.False(t, (&CatalogConfig{Backend: BackendMemory}).IsPersistent())
	assert.True(t, (&CatalogConfig{Backend: BackendBadger}).IsPersistent())
}
