package mcpserver

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagen/internal/testutil"
)

func TestSchemaInput_ResolveContent(t *testing.T) {
	schemaCache.reset()
	result, err := schemaInput{Content: storeSchema}.resolve()
	require.NoError(t, err)
	require.NotNil(t, result.Root)
	assert.Equal(t, "Store", result.Root.Name())
	assert.Equal(t, "content", result.SourcePath)
	assert.Equal(t, []string{"Pet"}, result.DefinitionNames)
}

func TestSchemaInput_ResolveFile(t *testing.T) {
	schemaCache.reset()
	path := testutil.WriteTempFile(t, "store.json", storeSchema)
	result, err := schemaInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "Store", result.Root.Name())
}

func TestSchemaInput_ResolveYAML(t *testing.T) {
	schemaCache.reset()
	content := "title: Point\ntype: object\nproperties:\n  x: {type: number}\n"
	result, err := schemaInput{Content: content}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "Point", result.Root.Name())
}

func TestSchemaInput_ResolveSourceCount(t *testing.T) {
	_, err := schemaInput{}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file or content must be provided")

	_, err = schemaInput{File: "a.json", Content: "{}"}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file or content must be provided")
}

func TestSchemaInput_ResolveFileNotFound(t *testing.T) {
	schemaCache.reset()
	_, err := schemaInput{File: "/nonexistent/schema.json"}.resolve()
	assert.Error(t, err)
}

func TestSchemaInput_ContentTooLarge(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.MaxInputSize = 16 })
	_, err := schemaInput{Content: strings.Repeat(" ", 17)}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCHEMAGEN_MAX_INPUT_SIZE")
}

func TestSchemaInput_AutoTitle(t *testing.T) {
	schemaCache.reset()
	content := `{"type": "object", "properties": {"home": {"type": "object", "properties": {"street": {"type": "string"}}}}}`

	_, err := schemaInput{Content: content}.resolve()
	require.Error(t, err, "untitled objects need auto_title")

	result, err := schemaInput{Content: content, AutoTitle: true}.resolve()
	require.NoError(t, err)
	assert.NotEmpty(t, result.Root.Name())
}

func TestSchemaCache_HitOnSameContent(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.CacheEnabled = true })
	schemaCache.reset()

	first, err := schemaInput{Content: storeSchema}.resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, schemaCache.size())

	second, err := schemaInput{Content: storeSchema}.resolve()
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = schemaInput{Content: storeSchema, AutoTitle: true}.resolve()
	require.NoError(t, err)
	assert.Equal(t, 2, schemaCache.size(), "auto_title is part of the key")
}

func TestSchemaCache_FileKeyTracksModTime(t *testing.T) {
	path := testutil.WriteTempFile(t, "store.json", storeSchema)
	in := schemaInput{File: path}
	key := in.cacheKey()
	require.NotEmpty(t, key)
	assert.True(t, strings.HasPrefix(key, "file:"))

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
	assert.NotEqual(t, key, in.cacheKey())

	assert.Empty(t, schemaInput{File: "/nonexistent/schema.json"}.cacheKey())
	assert.Empty(t, schemaInput{}.cacheKey())
}

func TestSchemaCache_Disabled(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.CacheEnabled = false })
	schemaCache.reset()

	_, err := schemaInput{Content: storeSchema}.resolve()
	require.NoError(t, err)
	assert.Equal(t, 0, schemaCache.size())
}

func TestSchemaCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := &schemaCacheStore{entries: make(map[string]*cacheEntry), maxSize: 2}
	c.put("a", nil, time.Minute)
	time.Sleep(time.Millisecond)
	c.put("b", nil, time.Minute)
	time.Sleep(time.Millisecond)
	c.get("a")
	c.put("c", nil, time.Minute)

	assert.Equal(t, 2, c.size())
	assert.Contains(t, c.entries, "a")
	assert.Contains(t, c.entries, "c")
	assert.NotContains(t, c.entries, "b")
}

func TestSchemaCache_ExpiryAndSweep(t *testing.T) {
	c := &schemaCacheStore{entries: make(map[string]*cacheEntry), maxSize: 5}
	c.put("old", nil, -time.Second)
	c.put("fresh", nil, time.Minute)

	assert.Nil(t, c.get("old"))
	assert.Equal(t, 1, c.size(), "expired entries are removed on access")

	c.put("old", nil, -time.Second)
	c.sweep()
	assert.Equal(t, 1, c.size())
	assert.Contains(t, c.entries, "fresh")
}

func TestSchemaCache_SweeperStopsWithContext(t *testing.T) {
	c := &schemaCacheStore{entries: make(map[string]*cacheEntry), maxSize: 5}
	c.put("old", nil, -time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	c.startSweeper(ctx, 5*time.Millisecond)
	c.startSweeper(ctx, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return c.size() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.Eventually(t, func() bool { return !c.sweeperStarted.Load() }, time.Second, 5*time.Millisecond)
}

func TestInstanceInput_Decode(t *testing.T) {
	v, err := instanceInput{Content: `{"name": "x"}`}.decode()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "x"}, v)

	v, err = instanceInput{Content: "name: y\n"}.decode()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "y"}, v)

	path := testutil.WriteTempFile(t, "data.json", `[true]`)
	v, err = instanceInput{File: path}.decode()
	require.NoError(t, err)
	assert.Equal(t, []any{true}, v)
}

func TestInstanceInput_DecodeErrors(t *testing.T) {
	_, err := instanceInput{}.decode()
	assert.ErrorContains(t, err, "exactly one of instance file or content")

	_, err = instanceInput{File: "/nonexistent/data.json"}.decode()
	assert.ErrorContains(t, err, "failed to read instance")

	withConfig(t, func(c *serverConfig) { c.MaxInputSize = 4 })
	_, err = instanceInput{Content: `"too long"`}.decode()
	assert.ErrorContains(t, err, "exceeds maximum")

	path := testutil.WriteTempFile(t, "big.json", `"too long"`)
	_, err = instanceInput{File: path}.decode()
	assert.ErrorContains(t, err, "exceeds maximum")
}
