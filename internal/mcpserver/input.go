package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/schemagen/document"
	"github.com/erraggy/schemagen/internal/options"
	"github.com/erraggy/schemagen/parser"
)

// schemaInput represents the two ways a schema can be provided to a tool.
// Exactly one of File or Content must be set.
type schemaInput struct {
	File      string `json:"file,omitempty"       jsonschema:"Path to a JSON Schema file on disk"`
	Content   string `json:"content,omitempty"    jsonschema:"Inline JSON Schema document (JSON or YAML)"`
	AutoTitle bool   `json:"auto_title,omitempty" jsonschema:"Name untitled object schemas after their location instead of failing"`
}

// cacheEntry holds a cached parse result with LRU ordering and TTL expiry.
type cacheEntry struct {
	result    *parser.ParseResult
	insertAt  time.Time
	expiresAt time.Time
}

// schemaCacheStore provides a session-scoped cache for compiled schemas.
// File inputs are keyed by (absolutePath, modTime), content inputs by a
// SHA-256 hash. A background sweeper removes expired entries.
type schemaCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var schemaCache = &schemaCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached result or nil. Expired entries are lazily removed.
func (c *schemaCacheStore) get(key string) *parser.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	e.insertAt = time.Now()
	return e.result
}

// put stores a result, evicting the least recently used entry at capacity.
func (c *schemaCacheStore) put(key string, result *parser.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{result: result, insertAt: now, expiresAt: now.Add(ttl)}
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *schemaCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a goroutine that periodically removes expired
// entries until ctx is cancelled. Only the first call spawns a sweeper.
func (c *schemaCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
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
func (c *schemaCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *schemaCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey identifies the input, or returns "" when it cannot be cached.
func (s schemaInput) cacheKey() string {
	var key string
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
		key = fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		key = "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
	if s.AutoTitle {
		key += ":auto-title"
	}
	return key
}

// resolve compiles the schema from whichever input was provided, using the
// cache when it is enabled.
func (s schemaInput) resolve() (*parser.ParseResult, error) {
	if err := options.ExactlyOne("", options.From("file", s.File != ""), options.From("content", s.Content != "")); err != nil {
		return nil, err
	}
	if int64(len(s.Content)) > cfg.MaxInputSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %s; use file input instead, or set SCHEMAGEN_MAX_INPUT_SIZE to increase",
			len(s.Content), parser.FormatBytes(cfg.MaxInputSize))
	}

	var key string
	if cfg.CacheEnabled {
		key = s.cacheKey()
		if key != "" {
			if cached := schemaCache.get(key); cached != nil {
				return cached, nil
			}
		}
	}

	opts := []parser.Option{
		parser.WithMaxFileSize(cfg.MaxInputSize),
		parser.WithAutoTitle(s.AutoTitle),
	}
	if s.File != "" {
		opts = append(opts, parser.WithFilePath(s.File))
	} else {
		opts = append(opts, parser.WithReader(strings.NewReader(s.Content)), parser.WithSourceName("content"))
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	if key != "" {
		schemaCache.put(key, result, cfg.CacheTTL)
	}
	return result, nil
}

// instanceInput is the data validated by the validate tool.
// Exactly one of File or Content must be set.
type instanceInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON or YAML data file"`
	Content string `json:"content,omitempty" jsonschema:"Inline JSON or YAML data"`
}

// decode reads and decodes the instance.
func (in instanceInput) decode() (any, error) {
	if err := options.ExactlyOne("", options.From("instance file", in.File != ""), options.From("content", in.Content != "")); err != nil {
		return nil, err
	}
	data := []byte(in.Content)
	if in.File != "" {
		info, err := os.Stat(in.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read instance: %w", err)
		}
		if info.Size() > cfg.MaxInputSize {
			return nil, fmt.Errorf("instance file size %s exceeds maximum %s",
				parser.FormatBytes(info.Size()), parser.FormatBytes(cfg.MaxInputSize))
		}
		data, err = os.ReadFile(in.File) //nolint:gosec // path is provided by the MCP client
		if err != nil {
			return nil, fmt.Errorf("failed to read instance: %w", err)
		}
	} else if int64(len(data)) > cfg.MaxInputSize {
		return nil, fmt.Errorf("inline instance size %d bytes exceeds maximum %s",
			len(data), parser.FormatBytes(cfg.MaxInputSize))
	}
	return document.DecodeInstance(data)
}
