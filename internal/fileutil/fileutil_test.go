package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModes(t *testing.T) {
	assert.Equal(t, "-rw-------", OwnerReadWrite.String())
	assert.Equal(t, "-rw-r--r--", ReadableByAll.String())
	assert.Equal(t, "-rwxr-xr-x", DirMode.String())
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		write func(string, []byte) error
		file  string
		mode  os.FileMode
	}{
		{"schema", WriteSchema, filepath.Join(dir, "schema.json"), OwnerReadWrite},
		{"source in new directory", WriteSource, filepath.Join(dir, "petstore", "types.go"), ReadableByAll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.write(tt.file, []byte("content")))
			data, err := os.ReadFile(tt.file)
			require.NoError(t, err)
			assert.Equal(t, "content", string(data))

			info, err := os.Stat(tt.file)
			require.NoError(t, err)
			assert.Zero(t, info.Mode().Perm()&^tt.mode, "no bits beyond %v", tt.mode)
		})
	}

	t.Run("parent is a file", func(t *testing.T) {
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, OwnerReadWrite))
		err := WriteSource(filepath.Join(blocker, "types.go"), []byte("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create directory")
	})
}
