package mcpserver

import (
	"go/token"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/schemagen/generator"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Generate tool defaults.
	PackageName       string
	UsePointers       bool
	IncludeValidation bool

	// Input limits.
	MaxInputSize int64
	ResultLimit  int

	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SCHEMAGEN_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		PackageName:        envIdent("SCHEMAGEN_PACKAGE", generator.DefaultPackageName),
		UsePointers:        !envBool("SCHEMAGEN_NO_POINTERS", false),
		IncludeValidation:  !envBool("SCHEMAGEN_NO_VALIDATION", false),
		MaxInputSize:       int64(envInt("SCHEMAGEN_MAX_INPUT_SIZE", 10*1024*1024)),
		ResultLimit:        envInt("SCHEMAGEN_RESULT_LIMIT", 100),
		CacheEnabled:       envBool("SCHEMAGEN_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("SCHEMAGEN_CACHE_MAX_SIZE", 10),
		CacheTTL:           envDuration("SCHEMAGEN_CACHE_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("SCHEMAGEN_CACHE_SWEEP_INTERVAL", 60*time.Second),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// envIdent reads a Go package name.
func envIdent(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if !token.IsIdentifier(v) {
		slog.Warn("invalid package name env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
