package generator

import (
	"fmt"
	"time"

	"github.com/erraggy/schemagen/element"
	"github.com/erraggy/schemagen/internal/issues"
	"github.com/erraggy/schemagen/internal/options"
	"github.com/erraggy/schemagen/internal/severity"
	"github.com/erraggy/schemagen/orderer"
	"github.com/erraggy/schemagen/parser"
	"github.com/erraggy/schemagen/serializer"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates schema features that map to Go lossily
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates problems with the input
	SeverityError = severity.SeverityError
	// SeverityCritical indicates schema features that cannot be generated
	SeverityCritical = severity.SeverityCritical
)

// DefaultPackageName is used when no package name is configured.
const DefaultPackageName = "schema"

// Generated file names.
const (
	TypesFile  = "types.go"
	SchemaFile = "schema.json"
)

// GenerateIssue represents a single generation issue or limitation
type GenerateIssue = issues.Issue

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "types.go", "schema.json")
	Name string
	// Content is the generated file content
	Content []byte
}

// GenerateResult contains the results of generating Go code from a schema
type GenerateResult struct {
	// Files contains all generated files
	Files []GeneratedFile
	// SourcePath is the path of the parsed document, if there was one
	SourcePath string
	// SourceFormat is the format of the source document (JSON or YAML)
	SourceFormat parser.SourceFormat
	// PackageName is the Go package name used in generation
	PackageName string
	// Issues contains all generation issues
	Issues []GenerateIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if generation completed without critical issues
	Success bool
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// GenerateTime is the time taken to generate code
	GenerateTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// GeneratedTypes lists the Go type names in declaration order
	GeneratedTypes []string
}

// HasCriticalIssues returns true if there are any critical issues
func (r *GenerateResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Generator turns compiled schemas into Go type declarations
type Generator struct {
	// PackageName is the Go package name for generated code.
	// If empty, defaults to "schema".
	PackageName string

	// UsePointers uses pointer types for optional fields.
	// Default: true
	UsePointers bool

	// IncludeValidation adds validate tags to generated struct fields.
	// Default: true
	IncludeValidation bool

	// IncludeSchema adds schema.json, the serialized input schema, to the
	// generated files.
	// Default: false
	IncludeSchema bool

	// StrictMode causes generation to fail on warnings and critical issues
	StrictMode bool

	// IncludeInfo determines whether to include informational messages
	IncludeInfo bool

	// Logger receives debug output about emitted types.
	// Default: parser.NopLogger
	Logger parser.Logger

	// Parser compiles file and byte inputs. Nil uses parser.New().
	Parser *parser.Parser
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{
		PackageName:       DefaultPackageName,
		UsePointers:       true,
		IncludeValidation: true,
		IncludeInfo:       true,
	}
}

func (g *Generator) log() parser.Logger {
	if g.Logger == nil {
		return parser.NopLogger{}
	}
	return g.Logger
}

func (g *Generator) newParser() *parser.Parser {
	if g.Parser != nil {
		return g.Parser
	}
	p := parser.New()
	p.Logger = g.Logger
	return p
}

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	bytes    []byte
	elements []*element.Element
	parsed   *parser.ParseResult

	packageName       string
	usePointers       bool
	includeValidation bool
	includeSchema     bool
	strictMode        bool
	includeInfo       bool
	logger            parser.Logger
	parserOptions     []parser.Option
}

// GenerateWithOptions generates Go code using functional options.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("pet.json"),
//	    generator.WithPackageName("petstore"),
//	    generator.WithSchema(true),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := &Generator{
		PackageName:       cfg.packageName,
		UsePointers:       cfg.usePointers,
		IncludeValidation: cfg.includeValidation,
		IncludeSchema:     cfg.includeSchema,
		StrictMode:        cfg.strictMode,
		IncludeInfo:       cfg.includeInfo,
		Logger:            cfg.logger,
	}

	switch {
	case cfg.filePath != nil:
		res, err := parser.ParseWithOptions(cfg.parseOptions(parser.WithFilePath(*cfg.filePath))...)
		if err != nil {
			return nil, fmt.Errorf("generator: failed to parse schema: %w", err)
		}
		return g.GenerateParsed(res)
	case cfg.bytes != nil:
		res, err := parser.ParseWithOptions(cfg.parseOptions(parser.WithBytes(cfg.bytes))...)
		if err != nil {
			return nil, fmt.Errorf("generator: failed to parse schema: %w", err)
		}
		return g.GenerateParsed(res)
	case cfg.parsed != nil:
		return g.GenerateParsed(cfg.parsed)
	}
	return g.GenerateElements(cfg.elements...)
}

func (cfg *generateConfig) parseOptions(source parser.Option) []parser.Option {
	opts := []parser.Option{source}
	if cfg.logger != nil {
		opts = append(opts, parser.WithLogger(cfg.logger))
	}
	return append(opts, cfg.parserOptions...)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		packageName:       DefaultPackageName,
		usePointers:       true,
		includeValidation: true,
		includeInfo:       true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ExactlyOne("",
		options.From("WithFilePath", cfg.filePath != nil),
		options.From("WithBytes", cfg.bytes != nil),
		options.From("WithElements", cfg.elements != nil),
		options.From("WithParsed", cfg.parsed != nil),
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a schema file as the input source
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithBytes specifies raw JSON or YAML schema data as the input source
func WithBytes(data []byte) Option {
	return func(cfg *generateConfig) error {
		if data == nil {
			return fmt.Errorf("bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithElements specifies compiled elements as the input source. The first
// element is the root.
func WithElements(elements ...*element.Element) Option {
	return func(cfg *generateConfig) error {
		if len(elements) == 0 {
			return fmt.Errorf("at least one element is required")
		}
		cfg.elements = elements
		return nil
	}
}

// WithParsed specifies a ParseResult as the input source
func WithParsed(result *parser.ParseResult) Option {
	return func(cfg *generateConfig) error {
		if result == nil {
			return fmt.Errorf("parse result cannot be nil")
		}
		cfg.parsed = result
		return nil
	}
}

// WithPackageName specifies the Go package name for generated code
// Default: "schema"
func WithPackageName(name string) Option {
	return func(cfg *generateConfig) error {
		if name == "" {
			return fmt.Errorf("package name cannot be empty")
		}
		cfg.packageName = name
		return nil
	}
}

// WithPointers enables or disables pointer types for optional fields
// Default: true
func WithPointers(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.usePointers = enabled
		return nil
	}
}

// WithValidation enables or disables validate tags in generated structs
// Default: true
func WithValidation(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.includeValidation = enabled
		return nil
	}
}

// WithSchema enables or disables schema.json output
// Default: false
func WithSchema(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.includeSchema = enabled
		return nil
	}
}

// WithStrictMode enables or disables strict mode (fail on warnings)
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithIncludeInfo enables or disables informational messages
// Default: true
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// WithLogger sets the logger used by the generator and, for file and byte
// inputs, the parser.
func WithLogger(l parser.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithParserOptions passes extra options to the parser for file and byte
// inputs, e.g. parser.WithAutoTitle(true).
func WithParserOptions(opts ...parser.Option) Option {
	return func(cfg *generateConfig) error {
		cfg.parserOptions = append(cfg.parserOptions, opts...)
		return nil
	}
}

// Generate parses the schema file at path and generates code from it
func (g *Generator) Generate(path string) (*GenerateResult, error) {
	res, err := g.newParser().Parse(path)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to parse schema: %w", err)
	}
	return g.GenerateParsed(res)
}

// GenerateBytes parses JSON or YAML schema data and generates code from it
func (g *Generator) GenerateBytes(data []byte) (*GenerateResult, error) {
	res, err := g.newParser().ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to parse schema: %w", err)
	}
	return g.GenerateParsed(res)
}

// GenerateParsed generates code from the root and definitions of a parse
// result
func (g *Generator) GenerateParsed(res *parser.ParseResult) (*GenerateResult, error) {
	if res == nil || res.Root == nil {
		return nil, fmt.Errorf("generator: parse result has no root element")
	}
	return g.generate(res.Elements(), res)
}

// GenerateElements generates one Go struct per object element reachable
// from elements. The first element is the root.
func (g *Generator) GenerateElements(elements ...*element.Element) (*GenerateResult, error) {
	return g.generate(elements, nil)
}

func (g *Generator) generate(elements []*element.Element, source *parser.ParseResult) (*GenerateResult, error) {
	if len(elements) == 0 || elements[0] == nil {
		return nil, fmt.Errorf("generator: no root element")
	}
	startTime := time.Now()

	result := &GenerateResult{
		PackageName: g.PackageName,
		Issues:      make([]GenerateIssue, 0),
	}
	if source != nil {
		result.SourcePath = source.SourcePath
		result.SourceFormat = source.SourceFormat
		result.SourceSize = source.SourceSize
		result.LoadTime = source.LoadTime
	}
	if result.PackageName == "" {
		result.PackageName = DefaultPackageName
	}

	objects, err := orderer.Order(elements...)
	if err != nil {
		objects = orderer.Objects(elements...)
		result.Issues = append(result.Issues, GenerateIssue{
			Path:     TypesFile,
			Message:  "objects refer to each other; types are declared in discovery order",
			Severity: SeverityInfo,
			Context:  err.Error(),
		})
	}

	cg := newTypesGenerator(g, result, objects)
	if err := cg.generateTypes(); err != nil {
		return nil, fmt.Errorf("generator: failed to generate types: %w", err)
	}

	if g.IncludeSchema {
		data, err := serializer.MarshalJSON(elements...)
		if err != nil {
			return nil, fmt.Errorf("generator: failed to serialize schema: %w", err)
		}
		result.Files = append(result.Files, GeneratedFile{Name: SchemaFile, Content: data})
	}

	result.GenerateTime = time.Since(startTime)
	g.updateCounts(result)
	result.Success = result.CriticalCount == 0

	if g.StrictMode && (result.CriticalCount > 0 || result.WarningCount > 0) {
		return result, fmt.Errorf("generator: generation failed in strict mode: %d critical issue(s), %d warning(s)",
			result.CriticalCount, result.WarningCount)
	}

	if !g.IncludeInfo {
		filtered := make([]GenerateIssue, 0, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Severity != SeverityInfo {
				filtered = append(filtered, issue)
			}
		}
		result.Issues = filtered
		result.InfoCount = 0
	}

	g.log().Debug("generated types",
		"package", result.PackageName,
		"types", len(result.GeneratedTypes),
		"issues", len(result.Issues))
	return result, nil
}

// updateCounts updates the issue counts in the result
func (g *Generator) updateCounts(result *GenerateResult) {
	result.InfoCount, result.WarningCount, _, result.CriticalCount = issues.Count(result.Issues)
}
