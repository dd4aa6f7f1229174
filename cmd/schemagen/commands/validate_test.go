package commands

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestHandleValidate(t *testing.T) {
	dir := t.TempDir()
	schema := writeFile(t, dir, "pet.json", petSchema)
	valid := writeFile(t, dir, "rex.json", `{"id": 7, "name": "Rex"}`)
	invalid := writeFile(t, dir, "bad.json", `{"id": 0, "name": 3}`)

	t.Run("valid text", func(t *testing.T) {
		out, _ := captureIO(t, "")
		require.NoError(t, HandleValidate([]string{schema, valid}))
		assert.Contains(t, out.String(), "✓ "+valid+" is a valid Pet")
	})

	t.Run("invalid text", func(t *testing.T) {
		out, _ := captureIO(t, "")
		err := HandleValidate([]string{schema, invalid})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed with 2 error(s)")
		assert.Contains(t, out.String(), "is not a valid Pet (2 error(s))")
		assert.Contains(t, out.String(), "✗")
	})

	t.Run("quiet", func(t *testing.T) {
		out, _ := captureIO(t, "")
		require.Error(t, HandleValidate([]string{"-q", schema, invalid}))
		assert.Empty(t, out.String())
	})

	t.Run("json output", func(t *testing.T) {
		out, _ := captureIO(t, "")
		require.NoError(t, HandleValidate([]string{"--format", "json", schema, valid}))

		var got ValidateOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.True(t, got.Valid)
		assert.Equal(t, "Pet", got.Target)
		assert.Equal(t, map[string]any{"id": float64(7), "name": "Rex"}, got.Value)
	})

	t.Run("yaml output with errors", func(t *testing.T) {
		out, _ := captureIO(t, "")
		require.Error(t, HandleValidate([]string{"--format", "yaml", schema, invalid}))

		var got ValidateOutput
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
		assert.False(t, got.Valid)
		assert.Len(t, got.Errors, 2)
		assert.Nil(t, got.Value)
	})

	t.Run("data from stdin", func(t *testing.T) {
		out, _ := captureIO(t, "id: 3\n")
		require.NoError(t, HandleValidate([]string{schema, StdinFilePath}))
		assert.Contains(t, out.String(), "<stdin> is a valid Pet")
	})

	t.Run("definition", func(t *testing.T) {
		owner := writeFile(t, dir, "owner.json", `{"email": "not-an-email"}`)
		out, _ := captureIO(t, "")
		err := HandleValidate([]string{"-d", "Owner", schema, owner})
		require.Error(t, err)
		assert.Contains(t, out.String(), "is not a valid Owner")
	})

	t.Run("unknown definition", func(t *testing.T) {
		captureIO(t, "")
		err := HandleValidate([]string{"--definition", "Missing", schema, valid})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `definition "Missing" not found`)
	})

	t.Run("schema from stdin", func(t *testing.T) {
		captureIO(t, petSchema)
		err := HandleValidate([]string{StdinFilePath, valid})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be read from stdin")
	})

	t.Run("bad format", func(t *testing.T) {
		captureIO(t, "")
		assert.Error(t, HandleValidate([]string{"--format", "xml", schema, valid}))
	})

	t.Run("missing arguments", func(t *testing.T) {
		captureIO(t, "")
		err := HandleValidate([]string{schema})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires a schema path and a data path")
	})

	t.Run("undecodable data", func(t *testing.T) {
		broken := writeFile(t, dir, "broken.json", "{\"id\": [")
		captureIO(t, "")
		err := HandleValidate([]string{schema, broken})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding data")
	})
}
