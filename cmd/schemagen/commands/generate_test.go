package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleGenerate(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "pet.json", petSchema)

	t.Run("writes types", func(t *testing.T) {
		outDir := filepath.Join(dir, "petstore")
		out, _ := captureIO(t, "")
		require.NoError(t, HandleGenerate([]string{"-o", outDir, "-p", "petstore", schema}))

		assert.Contains(t, out.String(), "Package: petstore")
		assert.Contains(t, out.String(), "Types: 2")
		assert.Contains(t, out.String(), "✓ Generation successful")

		data, err := os.ReadFile(filepath.Join(outDir, "types.go"))
		require.NoError(t, err)
		src := string(data)
		assert.Contains(t, src, "package petstore")
		assert.Contains(t, src, "type Owner struct")
		assert.Contains(t, src, "type Pet struct")
		assert.Contains(t, src, `validate:"required,gte=1"`)
		assert.Less(t, strings.Index(src, "type Owner struct"), strings.Index(src, "type Pet struct"))
	})

	t.Run("without validation tags", func(t *testing.T) {
		outDir := filepath.Join(dir, "plain")
		captureIO(t, "")
		require.NoError(t, HandleGenerate([]string{"--output", outDir, "--no-validation", schema}))

		data, err := os.ReadFile(filepath.Join(outDir, "types.go"))
		require.NoError(t, err)
		assert.NotContains(t, string(data), "validate:")
	})

	t.Run("schema from stdin", func(t *testing.T) {
		outDir := filepath.Join(dir, "stdin")
		out, _ := captureIO(t, petSchema)
		require.NoError(t, HandleGenerate([]string{"-o", outDir, StdinFilePath}))
		assert.Contains(t, out.String(), "Schema: <stdin>")
		assert.FileExists(t, filepath.Join(outDir, "types.go"))
	})

	t.Run("missing output", func(t *testing.T) {
		captureIO(t, "")
		err := HandleGenerate([]string{schema})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "output directory is required")
	})

	t.Run("untitled object", func(t *testing.T) {
		untitled := writeFile(t, dir, "untitled.json", `{"type": "object", "properties": {"a": {"type": "string"}}}`)
		captureIO(t, "")
		err := HandleGenerate([]string{"-o", filepath.Join(dir, "untitled"), untitled})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing schema")

		require.NoError(t, HandleGenerate([]string{"-o", filepath.Join(dir, "auto"), "--auto-title", untitled}))
	})

	t.Run("help", func(t *testing.T) {
		captureIO(t, "")
		assert.NoError(t, HandleGenerate([]string{"--help"}))
	})
}

