// Package commands provides CLI command handlers for schemagen.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemagen"
	"github.com/erraggy/schemagen/element"
	"github.com/erraggy/schemagen/internal/cliutil"
	"github.com/erraggy/schemagen/parser"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid format '%s'. Valid formats: %v", format, allowed)
}

// OutputStructured writes data to stdout in the specified format (json or yaml).
func OutputStructured(data any, format string) error {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(stdout, "%s\n", out)
	return nil
}

// FormatSchemaPath returns a display-friendly path for the schema.
func FormatSchemaPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// NewLogger returns the logger for the --verbose flag: debug-level text
// on stderr when verbose, otherwise nil.
func NewLogger(verbose bool) parser.Logger {
	if !verbose {
		return nil
	}
	handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return parser.NewSlogAdapter(slog.New(handler))
}

// SchemaOptions are the parser settings shared by every command.
type SchemaOptions struct {
	AutoTitle bool
	Verbose   bool
}

// LoadSchema compiles the schema at path, or from stdin when path is "-".
func LoadSchema(path string, opts SchemaOptions) (*parser.ParseResult, error) {
	parseOpts := []parser.Option{parser.WithAutoTitle(opts.AutoTitle)}
	if logger := NewLogger(opts.Verbose); logger != nil {
		parseOpts = append(parseOpts, parser.WithLogger(logger))
	}
	if path == StdinFilePath {
		parseOpts = append(parseOpts, parser.WithReader(stdin))
	} else {
		parseOpts = append(parseOpts, parser.WithFilePath(path))
	}

	result, err := parser.ParseWithOptions(parseOpts...)
	if err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return result, nil
}

// OutputSchemaHeader writes the common schema header to stderr.
func OutputSchemaHeader(path string, result *parser.ParseResult) {
	Writef(stderr, "schemagen version: %s\n", schemagen.Version())
	Writef(stderr, "Schema: %s\n", FormatSchemaPath(path))
	Writef(stderr, "Source Size: %s\n", parser.FormatBytes(result.SourceSize))
	Writef(stderr, "Definitions: %d\n", len(result.Definitions))
}

// plainValue converts constructed values into data that every encoder
// understands: instances become maps keyed by their JSON keys and decoded
// numbers become int64 or float64.
func plainValue(v any) any {
	switch t := v.(type) {
	case *element.Instance:
		m := t.ToMap()
		for k, item := range m {
			m[k] = plainValue(item)
		}
		return m
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = plainValue(item)
		}
		return out
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plainValue(item)
		}
		return out
	}
	return v
}
