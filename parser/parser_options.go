package parser

import (
	"fmt"
	"io"

	"github.com/erraggy/schemagen/element"
	"github.com/erraggy/schemagen/internal/options"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte
	document any

	// Configuration options
	resolveRefs bool
	autoTitle   bool
	titleFunc   TitleFunc
	formats     element.Formats
	logger      Logger

	// Resource limits (0 means use default)
	maxRefDepth int
	maxFileSize int64

	// Source identification
	sourceName *string // Override SourcePath in the result
}

// ParseWithOptions parses a JSON Schema document using functional options.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("schema.json"),
//	    parser.WithTitleFunc(parser.DefaultTitleFunc),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		ResolveRefs: cfg.resolveRefs,
		AutoTitle:   cfg.autoTitle,
		TitleFunc:   cfg.titleFunc,
		Formats:     cfg.formats,
		Logger:      cfg.logger,
		MaxRefDepth: cfg.maxRefDepth,
		MaxFileSize: cfg.maxFileSize,
	}

	var result *ParseResult
	var parseErr error
	switch {
	case cfg.filePath != nil:
		result, parseErr = p.Parse(*cfg.filePath)
	case cfg.reader != nil:
		result, parseErr = p.ParseReader(cfg.reader)
	case cfg.bytes != nil:
		result, parseErr = p.ParseBytes(cfg.bytes)
	case cfg.document != nil:
		result, parseErr = p.ParseDocument(cfg.document)
	default:
		// Should never reach here due to validation in applyOptions
		return nil, fmt.Errorf("parser: no input source specified")
	}

	if parseErr != nil {
		return result, parseErr
	}

	if result != nil && cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}

	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		resolveRefs: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ExactlyOne("parser",
		options.From("WithFilePath", cfg.filePath != nil),
		options.From("WithReader", cfg.reader != nil),
		options.From("WithBytes", cfg.bytes != nil),
		options.From("WithDocument", cfg.document != nil),
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("parser: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("parser: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithDocument specifies an already loaded document (*document.Map,
// map[string]any or bool) as the input source. The document is modified
// in place.
func WithDocument(doc any) Option {
	return func(cfg *parseConfig) error {
		if doc == nil {
			return fmt.Errorf("parser: document cannot be nil")
		}
		cfg.document = doc
		return nil
	}
}

// WithResolveRefs enables or disables reference resolution ($ref)
// Default: true
func WithResolveRefs(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.resolveRefs = enabled
		return nil
	}
}

// WithAutoTitle labels untitled object schemas from their JSON pointer
// before references are resolved.
// Default: false
func WithAutoTitle(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.autoTitle = enabled
		return nil
	}
}

// WithTitleFunc sets the function naming untitled object schemas.
// Without one, an untitled object schema is a parse error.
func WithTitleFunc(fn TitleFunc) Option {
	return func(cfg *parseConfig) error {
		cfg.titleFunc = fn
		return nil
	}
}

// WithFormats sets the format checkers used by the "format" keyword.
// Default: element.DefaultFormats()
func WithFormats(formats element.Formats) Option {
	return func(cfg *parseConfig) error {
		cfg.formats = formats
		return nil
	}
}

// WithLogger sets the logger for debug output. A nil logger disables logging.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxRefDepth sets the maximum number of $ref hops for one reference.
// A value of 0 uses the default (100).
func WithMaxRefDepth(depth int) Option {
	return func(cfg *parseConfig) error {
		if depth < 0 {
			return fmt.Errorf("parser: max ref depth cannot be negative")
		}
		cfg.maxRefDepth = depth
		return nil
	}
}

// WithMaxFileSize sets the maximum document size in bytes.
// A value of 0 uses the default (10MB).
func WithMaxFileSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size < 0 {
			return fmt.Errorf("parser: max file size cannot be negative")
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithSourceName overrides SourcePath in the result.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}
