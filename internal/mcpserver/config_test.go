package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oasresolver/internal/settings"
	"github.com/erraggy/oasresolver/schema"
)

// clearEnv clears all OASRESOLVER_* env vars to isolate tests from the ambient environment.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := append(settings.EnvKeys(),
		envCacheEnabled, envCacheMaxSize, envCacheDocumentTTL, envCacheSweepInterval)
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheDocumentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, "replace-last-win", c.MergeStrategy)
	assert.Equal(t, schema.TextLocations(), c.NormalizeLocations)
	assert.Equal(t, 100, c.ListLimit)
	assert.False(t, c.FailFast)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(envCacheEnabled, "false")
	t.Setenv(envCacheMaxSize, "50")
	t.Setenv(envCacheDocumentTTL, "30m")
	t.Setenv(envCacheSweepInterval, "30s")
	t.Setenv(settings.EnvMergeStrategy, "combine-name")
	t.Setenv(settings.EnvListLimit, "20")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheDocumentTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, "combine-name", c.MergeStrategy)
	assert.Equal(t, 20, c.ListLimit)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(envCacheEnabled, "notabool")
	t.Setenv(envCacheMaxSize, "-1")
	t.Setenv(envCacheDocumentTTL, "bogus")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheDocumentTTL)
}
