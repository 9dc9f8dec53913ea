// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Catalog backends.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendBleve  = "bleve"
	BackendNeo4j  = "neo4j"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Catalog CatalogConfig
	Neo4j   Neo4jConfig
	Server  ServerConfig
	Console ConsoleConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// CatalogConfig selects and locates the book catalog.
type CatalogConfig struct {
	// Backend is one of memory, badger, sqlite, bleve, neo4j (default: memory).
	Backend string
	// SourcePath is the catalog file (.json, .yaml, .owl). Required for memory;
	// for persistent backends it is imported at startup when set.
	SourcePath string
	// DataPath is where persistent backends keep their data. Empty means in-memory
	// for badger, sqlite and bleve.
	DataPath string
}

// Neo4jConfig holds the graph database connection.
type Neo4jConfig struct {
	URI         string
	User        string
	Password    string
	Database    string
	Timeout     time.Duration // Connect timeout (default: 10s)
	MaxPoolSize int           // Max pooled connections (default: 50)
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port           string        // Server port (default: 8080)
	ReadTimeout    time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout   time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout    time.Duration // HTTP idle timeout (default: 60s)
	RateLimitRPS   float64       // Requests per second per client IP (default: 10)
	RateLimitBurst int           // Burst per client IP (default: 20)
	CORSOrigins    []string      // Allowed origins (default: *)
}

// ConsoleConfig holds interactive console configuration.
type ConsoleConfig struct {
	// ExitToken ends the session, compared case-insensitively (default: exit).
	ExitToken string
}

// LoadConfig loads configuration from os.Args. See Load.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("bookrec", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")

	// Catalog flags
	backend := fs.String("catalog-backend", "", "Catalog backend (memory, badger, sqlite, bleve, neo4j)")
	sourcePath := fs.String("catalog", "", "Path to catalog file (.json, .yaml, .owl)")
	dataPath := fs.String("data-path", "", "Data directory for persistent backends (empty = in-memory)")

	// Neo4j flags
	neo4jURI := fs.String("neo4j-uri", "", "Neo4j URI (e.g., neo4j://localhost:7687)")
	neo4jUser := fs.String("neo4j-user", "", "Neo4j user (default: neo4j)")
	neo4jDatabase := fs.String("neo4j-database", "", "Neo4j database name")
	neo4jTimeout := fs.String("neo4j-timeout", "", "Neo4j connect timeout (default: 10s)")
	neo4jMaxPool := fs.String("neo4j-max-pool-size", "", "Neo4j connection pool size (default: 50)")

	// Server flags
	serverPort := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	rateLimitRPS := fs.String("rate-limit-rps", "", "Requests per second per client (default: 10)")
	rateLimitBurst := fs.String("rate-limit-burst", "", "Request burst per client (default: 20)")
	corsOrigins := fs.String("cors-origins", "", "Comma-separated allowed origins (default: *)")

	exitToken := fs.String("exit-token", "", "Console exit command (default: exit)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Load .env file if it exists (silently ignore if not found).
	// godotenv never overrides variables that are already set.
	_ = godotenv.Load(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Catalog: CatalogConfig{
			Backend:    strings.ToLower(getConfigValue(*backend, "CATALOG_BACKEND", BackendMemory)),
			SourcePath: getConfigValue(*sourcePath, "CATALOG_PATH", ""),
			DataPath:   getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Neo4j: Neo4jConfig{
			URI:         getConfigValue(*neo4jURI, "NEO4J_URI", ""),
			User:        getConfigValue(*neo4jUser, "NEO4J_USER", "neo4j"),
			Password:    getConfigValue("", "NEO4J_PASSWORD", ""),
			Database:    getConfigValue(*neo4jDatabase, "NEO4J_DATABASE", ""),
			MaxPoolSize: getIntConfigValue(*neo4jMaxPool, "NEO4J_MAX_POOL_SIZE", 50),
		},
		Server: ServerConfig{
			Port:           getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			RateLimitRPS:   getFloatConfigValue(*rateLimitRPS, "RATE_LIMIT_RPS", 10),
			RateLimitBurst: getIntConfigValue(*rateLimitBurst, "RATE_LIMIT_BURST", 20),
			CORSOrigins:    splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
		},
		Console: ConsoleConfig{
			ExitToken: getConfigValue(*exitToken, "EXIT_TOKEN", "exit"),
		},
	}

	durations := []struct {
		flagValue string
		envKey    string
		def       string
		dest      *time.Duration
	}{
		{*neo4jTimeout, "NEO4J_TIMEOUT", "10s", &cfg.Neo4j.Timeout},
		{*readTimeout, "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s", &cfg.Server.WriteTimeout},
		{*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
	}
	for _, d := range durations {
		s := getConfigValue(d.flagValue, d.envKey, d.def)
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", strings.ToLower(d.envKey), s, err)
		}
		*d.dest = parsed
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Catalog.Backend {
	case BackendMemory:
		if c.Catalog.SourcePath == "" {
			return errors.New("catalog path is required for the memory backend")
		}
	case BackendBadger, BackendSQLite, BackendBleve:
	case BackendNeo4j:
		if c.Neo4j.URI == "" {
			return errors.New("NEO4J_URI is required for the neo4j backend")
		}
	default:
		return fmt.Errorf("invalid catalog backend: %s (must be memory, badger, sqlite, bleve, or neo4j)", c.Catalog.Backend)
	}

	if c.Server.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive, got %v", c.Server.RateLimitRPS)
	}
	if c.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive, got %d", c.Server.RateLimitBurst)
	}

	if strings.TrimSpace(c.Console.ExitToken) == "" {
		return errors.New("exit token cannot be empty")
	}

	return nil
}

// IsPersistent reports whether the configured backend keeps its own copy of the catalog.
func (c *CatalogConfig) IsPersistent() bool {
	return c.Backend != BackendMemory
}

// expandPaths expands ~ and makes catalog paths absolute.
func (c *Config) expandPaths() error {
	source, err := expandPath(c.Catalog.SourcePath, "")
	if err != nil {
		return fmt.Errorf("invalid catalog path: %w", err)
	}
	c.Catalog.SourcePath = source

	data, err := expandPath(c.Catalog.DataPath, "")
	if err != nil {
		return fmt.Errorf("invalid data path: %w", err)
	}
	c.Catalog.DataPath = data
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strings.TrimSpace(strValue))
	if err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.ParseFloat(strings.TrimSpace(strValue), 64)
	if err != nil {
		return defaultValue
	}
	return result
}

// splitList splits a comma-separated value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
