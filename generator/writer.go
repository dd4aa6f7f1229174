package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/schemagen/internal/fileutil"
	"github.com/erraggy/schemagen/internal/pathutil"
)

// WriteFiles writes all generated files to the specified output directory.
// The directory is created if it doesn't exist.
func (r *GenerateResult) WriteFiles(outputDir string) error {
	dir, err := pathutil.SanitizeOutputDir(outputDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, fileutil.DirMode); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, file := range r.Files {
		safeName := filepath.Base(file.Name)
		if safeName != file.Name {
			return fmt.Errorf("invalid file name %q: must not contain path separators", file.Name)
		}
		if err := file.WriteFile(filepath.Join(dir, safeName)); err != nil {
			return fmt.Errorf("failed to write file %s: %w", file.Name, err)
		}
	}
	return nil
}

// WriteFile writes a single generated file to the specified path. Existing
// symlinks are refused.
func (f *GeneratedFile) WriteFile(path string) error {
	target, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return err
	}
	return fileutil.WriteSource(target, f.Content)
}
