// Package parser compiles JSON Schema documents into element trees.
//
// A document is loaded from JSON or YAML, its local $ref pointers are
// dereferenced in place, and the result is parsed recursively into
// *element.Element values. The root and every entry under "definitions"
// (or "$defs") are compiled with one shared State.
//
// # Quick Start
//
// Parse a file using functional options:
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("schema.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	value, err := result.Root.Call(map[string]any{"name": "Rex"})
//
// Or create a reusable Parser instance:
//
//	p := parser.New()
//	p.TitleFunc = parser.DefaultTitleFunc
//	result, _ := p.Parse("schema.yaml")
//
// Parse a single loaded schema node directly:
//
//	el, err := parser.ParseElement(map[string]any{"type": "string"}, nil)
//
// # References
//
// Only local references ("#/definitions/Pet") are resolved. A reference with
// a file or URL part fails with an error matching
// schemaerrors.ErrNotImplemented. A resolved schema without a title takes
// the last pointer segment as its title, so "#/definitions/Pet" names an
// object "Pet". Keywords next to "$ref" are ignored.
//
// # Recursion
//
// Dereferencing maps every reference to the same target onto one node, so
// a recursive schema becomes a cyclic graph. The parser registers each
// element before parsing its children and looks nodes up by identity, so
// a node reached again resolves to the element already under construction.
// Nodes that are merely equal are not merged this way.
//
// # Titles and Deduplication
//
// Object schemas must have a title. Untitled objects can be named with
// WithTitleFunc (consulted during parsing) or WithAutoTitle (labels the
// document before dereferencing); DefaultTitleFunc builds names from the
// JSON pointer.
//
// Two objects with the same title are compared structurally. An equal one
// is replaced by the first; a different one is renamed Title_1, Title_2,
// and so on in the order they are met.
//
// # Errors
//
// Malformed schemas fail with *schemaerrors.ParseError, which names the
// JSON pointer and a summary of the offending fragment. Reference failures
// are *schemaerrors.ReferenceError and unsupported features are
// *schemaerrors.NotImplementedError. Use errors.Is with the schemaerrors
// sentinels to classify them.
package parser
