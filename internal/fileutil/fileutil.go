// Package fileutil writes the files schemagen produces.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// OwnerReadWrite is the mode of normalized schema documents written by
// the serialize command.
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the mode of generated Go sources, which build tools and
// other users need to read.
const ReadableByAll os.FileMode = 0o644

// DirMode is the mode of directories created for output.
const DirMode os.FileMode = 0o755

// WriteSchema writes a serialized schema document to path.
func WriteSchema(path string, data []byte) error {
	return write(path, data, OwnerReadWrite)
}

// WriteSource writes a generated Go source file to path.
func WriteSource(path string, data []byte) error {
	return write(path, data, ReadableByAll)
}

// write creates the parent directory of path and writes data with mode.
// Modes only apply to new files; existing files keep theirs.
func write(path string, data []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), DirMode); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
