package parser

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/erraggy/schemagen/document"
	"github.com/erraggy/schemagen/element"
)

// DefaultMaxFileSize bounds the size of a schema document read by Parse and
// ParseReader.
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// definitionKeys hold named schemas parsed next to the root.
var definitionKeys = []string{"definitions", "$defs"}

// Parser compiles JSON Schema documents into element trees.
type Parser struct {
	// ResolveRefs determines whether local $ref pointers are dereferenced
	// before parsing. Without it a $ref is a parse error.
	ResolveRefs bool
	// AutoTitle labels untitled object schemas from their JSON pointer
	// before dereferencing, using TitleFunc (DefaultTitleFunc when nil).
	AutoTitle bool
	// TitleFunc names untitled object schemas met during parsing. When nil
	// an untitled object schema is a parse error.
	TitleFunc TitleFunc
	// Formats overrides the format checkers used by "format".
	// Default: element.DefaultFormats()
	Formats element.Formats
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger

	// Resource limits (0 means use default)

	// MaxRefDepth is the maximum number of $ref hops for one reference.
	// Default: 100
	MaxRefDepth int
	// MaxFileSize is the maximum document size in bytes.
	// Default: 10MB
	MaxFileSize int64
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		ResolveRefs: true,
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// ParseResult contains the compiled elements and metadata about the source.
//
// The elements form a graph that may contain cycles; callers should treat
// them as read-only.
type ParseResult struct {
	// SourcePath is the document's input source path that it was read from.
	// Note: if the source was not a file path, this will be set to the name of the method
	// and end in '.yaml' or '.json' based on the detected format
	SourcePath string
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat SourceFormat
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// LoadTime is the time taken to read the source data
	LoadTime time.Duration
	// Document is the loaded document after labelling and dereferencing.
	Document any
	// Root is the element compiled from the document root.
	Root *element.Element
	// Definitions holds the elements compiled from "definitions" and
	// "$defs", in document order.
	Definitions []*element.Element
	// DefinitionNames holds the key of each entry in Definitions.
	DefinitionNames []string
	// Labelled counts the schemas titled by AutoTitle.
	Labelled int
	// Renamed counts objects that got a suffixed name.
	Renamed int
	// Deduplicated counts objects replaced by an equal one.
	Deduplicated int
}

// Elements returns the root followed by the definitions.
func (pr *ParseResult) Elements() []*element.Element {
	if pr == nil || pr.Root == nil {
		return nil
	}
	out := make([]*element.Element, 0, 1+len(pr.Definitions))
	out = append(out, pr.Root)
	return append(out, pr.Definitions...)
}

// Definition returns the element parsed from the named definition.
func (pr *ParseResult) Definition(name string) (*element.Element, bool) {
	for i, n := range pr.DefinitionNames {
		if n == name {
			return pr.Definitions[i], true
		}
	}
	return nil, false
}

// Parse parses the schema document at path.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	loadStart := time.Now()
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	if info.Size() > p.maxFileSize() {
		return nil, fmt.Errorf("parser: file %s is %s, exceeds limit of %s",
			path, FormatBytes(info.Size()), FormatBytes(p.maxFileSize()))
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the caller
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	loadTime := time.Since(loadStart)

	res, err := p.parseData(data)
	if err != nil {
		return nil, err
	}
	res.SourcePath = path
	res.LoadTime = loadTime
	res.SourceFormat = detectFormat(path, data)
	return res, nil
}

// ParseReader parses a schema document from an io.Reader
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseReader.yaml or ParseReader.json
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("parser: input exceeds limit of %s", FormatBytes(limit))
	}
	res, err := p.parseData(data)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	res.SourcePath = sourceName("ParseReader", res.SourceFormat)
	return res, nil
}

// ParseBytes parses a schema document from a byte slice
// Note: since there is no actual ParseResult.SourcePath, it will be set to: ParseBytes.yaml or ParseBytes.json
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parseData(data)
	if err != nil {
		return nil, err
	}
	res.SourcePath = sourceName("ParseBytes", res.SourceFormat)
	return res, nil
}

func sourceName(method string, format SourceFormat) string {
	return method + format.Extension()
}

func (p *Parser) parseData(data []byte) (*ParseResult, error) {
	doc, err := document.Load(data)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	res, err := p.ParseDocument(doc)
	if err != nil {
		return nil, err
	}
	res.SourceFormat = detectFormat("", data)
	res.SourceSize = int64(len(data))
	return res, nil
}

// ParseDocument compiles an already loaded document: a *document.Map, a
// map[string]any or a bool. The document is modified in place when titles
// are added or references are resolved.
//
// Untitled entries of "definitions" and "$defs" take their key as title.
// The root and every definition are parsed with one State, so a schema
// reached from several places compiles to one element.
func (p *Parser) ParseDocument(doc any) (*ParseResult, error) {
	if m, ok := doc.(map[string]any); ok {
		doc = document.FromGo(m)
	}
	res := &ParseResult{}
	log := p.log()

	root, _ := doc.(*document.Map)
	for _, key := range definitionKeys {
		defs, ok := definitionsOf(root, key)
		if !ok {
			continue
		}
		for name, raw := range defs.All() {
			if m, isMap := raw.(*document.Map); isMap && !m.Has("title") {
				if _, isRef := refOf(m); !isRef {
					m.Set("title", name)
				}
			}
		}
	}

	if p.AutoTitle {
		res.Labelled = LabelTitles(doc, p.TitleFunc)
		log.Debug("labelled untitled schemas", "count", res.Labelled)
	}

	if p.ResolveRefs {
		resolver := NewRefResolver(doc)
		resolver.SetLogger(log)
		resolver.SetMaxDepth(p.MaxRefDepth)
		resolved, err := resolver.Dereference()
		if err != nil {
			return nil, fmt.Errorf("parser: failed to resolve references: %w", err)
		}
		doc = resolved
	}
	res.Document = doc

	state := NewState()
	state.formats = p.Formats
	state.titles = p.TitleFunc
	state.logger = log
	b := &builder{state: state}

	el, err := b.parse(doc, nil)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to parse schema: %w", err)
	}
	res.Root = el

	for _, key := range definitionKeys {
		defs, ok := definitionsOf(root, key)
		if !ok {
			continue
		}
		for name, raw := range defs.All() {
			el, err := b.parse(raw, []string{key, name})
			if err != nil {
				return nil, fmt.Errorf("parser: failed to parse %s %q: %w", key, name, err)
			}
			res.Definitions = append(res.Definitions, el)
			res.DefinitionNames = append(res.DefinitionNames, name)
		}
	}

	state.reconcile(append([]*element.Element{res.Root}, res.Definitions...)...)
	res.Root = state.canonical(res.Root)
	for i, def := range res.Definitions {
		res.Definitions[i] = state.canonical(def)
	}

	res.Renamed = state.Renamed()
	res.Deduplicated = state.Deduplicated()
	log.Debug("parsed schema",
		"nodes", state.Len(),
		"definitions", len(res.Definitions),
		"renamed", res.Renamed,
		"deduplicated", res.Deduplicated)
	return res, nil
}

func definitionsOf(root *document.Map, key string) (*document.Map, bool) {
	raw, ok := root.Get(key)
	if !ok {
		return nil, false
	}
	defs, ok := raw.(*document.Map)
	return defs, ok
}
