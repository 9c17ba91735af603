package mcpserver

import (
	"time"

	"github.com/erraggy/oasresolver/internal/settings"
)

// MCP-only environment variables. Resolution defaults are shared with the
// CLI and documented in package settings.
const (
	envCacheEnabled       = "OASRESOLVER_MCP_CACHE_ENABLED"
	envCacheMaxSize       = "OASRESOLVER_MCP_CACHE_MAX_SIZE"
	envCacheDocumentTTL   = "OASRESOLVER_MCP_CACHE_DOCUMENT_TTL"
	envCacheSweepInterval = "OASRESOLVER_MCP_CACHE_SWEEP_INTERVAL"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	*settings.Settings

	// Document cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheDocumentTTL   time.Duration
	CacheSweepInterval time.Duration
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASRESOLVER_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		Settings:           settings.FromEnv(),
		CacheEnabled:       settings.EnvBool(envCacheEnabled, true),
		CacheMaxSize:       settings.EnvInt(envCacheMaxSize, 10),
		CacheDocumentTTL:   settings.EnvDuration(envCacheDocumentTTL, 15*time.Minute),
		CacheSweepInterval: settings.EnvDuration(envCacheSweepInterval, 60*time.Second),
	}
}
