package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oasresolver/loader"
	"github.com/erraggy/oasresolver/registry"
)

// specInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI or Swagger file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// loadedDocument is a loaded document with its registry.
type loadedDocument struct {
	doc   *loader.Document
	reg   *registry.Registry
	close func() error
}

// release frees the registry's store client.
func (d *loadedDocument) release() {
	if d.close == nil {
		return
	}
	if err := d.close(); err != nil {
		slog.Warn("closing registry store", "source", d.doc.SourcePath, "error", err)
	}
}

// cacheEntry holds a cached document with LRU ordering and TTL expiry.
type cacheEntry struct {
	value     *loadedDocument
	insertAt  time.Time
	expiresAt time.Time
}

// documentCacheStore provides a session-scoped cache of loaded documents.
// File inputs are keyed by (absolutePath, modTime), content inputs by a
// SHA-256 hash. Keeping the registry alive across calls keeps its compiled
// specs warm.
type documentCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var documentCache = &documentCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached document or nil. Expired entries are lazily removed.
func (c *documentCacheStore) get(key string) *loadedDocument {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			e.value.release()
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.value
	}
	return nil
}

// put stores a document, evicting the least recently used entry if at
// capacity.
func (c *documentCacheStore) put(key string, value *loadedDocument, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{value: value, insertAt: now, expiresAt: now.Add(ttl)}

	if old, ok := c.entries[key]; ok {
		old.value.release()
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			c.entries[oldestKey].value.release()
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *documentCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			e.value.release()
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries. Only the first call spawns a sweeper. It stops when ctx is
// cancelled.
func (c *documentCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *documentCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		e.value.release()
	}
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *documentCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given input, or "" when the
// input cannot be cached.
func makeCacheKey(s specInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}

// load returns the document and registry for the input, using the cache
// when enabled.
func (s specInput) load() (*loadedDocument, error) {
	count := 0
	if s.File != "" {
		count++
	}
	if s.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file or content must be provided (got %d)", count)
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASRESOLVER_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
	}
	if key != "" {
		if cached := documentCache.get(key); cached != nil {
			return cached, nil
		}
	}

	opts := []loader.Option{loader.WithLogger(logger())}
	if s.File != "" {
		opts = append(opts, loader.WithFilePath(s.File))
	} else {
		// Inline documents get distinct names so they never share a
		// namespace in a shared store.
		h := sha256.Sum256([]byte(s.Content))
		opts = append(opts,
			loader.WithBytes([]byte(s.Content)),
			loader.WithSourceName("inline-"+hex.EncodeToString(h[:6])+".yaml"))
	}
	doc, err := loader.LoadWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	reg, closeFn, err := cfg.NewRegistry(doc, logger())
	if err != nil {
		return nil, err
	}
	loaded := &loadedDocument{doc: doc, reg: reg, close: closeFn}

	if key != "" {
		documentCache.put(key, loaded, cfg.CacheDocumentTTL)
	}
	return loaded, nil
}
