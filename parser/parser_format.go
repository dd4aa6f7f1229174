package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// SourceFormat is the encoding of a schema document.
type SourceFormat string

const (
	SourceFormatYAML    SourceFormat = "yaml"
	SourceFormatJSON    SourceFormat = "json"
	SourceFormatUnknown SourceFormat = "unknown"
)

// Extension returns the file extension for the format. Unknown documents
// are read as YAML, which JSON is a subset of.
func (f SourceFormat) Extension() string {
	if f == SourceFormatJSON {
		return ".json"
	}
	return ".yaml"
}

// detectFormat names the format of data read from path. A .json, .yaml or
// .yml extension decides; otherwise the first non-blank byte does, '{' and
// '[' meaning JSON.
func detectFormat(path string, data []byte) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	switch {
	case len(trimmed) == 0:
		return SourceFormatUnknown
	case trimmed[0] == '{' || trimmed[0] == '[':
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

var byteUnits = []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

// FormatBytes renders a size with binary units: "512 B", "1.5 KiB".
func FormatBytes(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%d B", size)
	}
	value := float64(size) / 1024
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", value, byteUnits[unit])
}
