package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagen/document"
	"github.com/erraggy/schemagen/element"
	"github.com/erraggy/schemagen/schemaerrors"
)

const petStore = `{
	"title": "Store",
	"type": "object",
	"properties": {
		"pets": {"type": "array", "items": {"$ref": "#/definitions/Pet"}},
		"owner": {"$ref": "#/definitions/Owner"}
	},
	"definitions": {
		"Pet": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string"},
				"owner": {"$ref": "#/definitions/Owner"}
			}
		},
		"Owner": {
			"type": "object",
			"properties": {
				"pets": {"type": "array", "items": {"$ref": "#/definitions/Pet"}}
			}
		},
		"Color": {"type": "string", "enum": ["red", "green"]}
	}
}`

func TestParseBytesDocument(t *testing.T) {
	res, err := New().ParseBytes([]byte(petStore))
	require.NoError(t, err)

	assert.Equal(t, "ParseBytes.json", res.SourcePath)
	assert.Equal(t, SourceFormatJSON, res.SourceFormat)
	assert.Equal(t, int64(len(petStore)), res.SourceSize)
	assert.Equal(t, []string{"Pet", "Owner", "Color"}, res.DefinitionNames)

	elements := res.Elements()
	require.Len(t, elements, 4)
	assert.Same(t, res.Root, elements[0])

	pet, ok := res.Definition("Pet")
	require.True(t, ok)
	owner, ok := res.Definition("Owner")
	require.True(t, ok)
	assert.Equal(t, "Pet", pet.Title())
	assert.Same(t, pet, res.Root.Property("pets").Element.Items(), "a definition and its references compile to one element")
	assert.Same(t, owner, pet.Property("owner").Element)
	assert.Same(t, pet, owner.Property("pets").Element.Items())

	color, ok := res.Definition("Color")
	require.True(t, ok)
	assert.Equal(t, element.KindString, color.Kind())
	assert.Equal(t, "Color", color.Title(), "definition keys title untitled entries")

	_, ok = res.Definition("Missing")
	assert.False(t, ok)

	_, err = res.Root.Call(map[string]any{
		"pets": []any{map[string]any{"name": "Rex", "owner": map[string]any{"pets": []any{}}}},
	})
	assert.NoError(t, err)
	_, err = res.Root.Call(map[string]any{"pets": []any{map[string]any{}}})
	assert.ErrorIs(t, err, schemaerrors.ErrValidation)
}

func TestParseYAMLRecursive(t *testing.T) {
	src := `
title: Tree
type: object
required: [value]
properties:
  value:
    type: integer
  children:
    type: array
    items:
      $ref: "#"
`
	res, err := New().ParseBytes([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "ParseBytes.yaml", res.SourcePath)
	assert.Equal(t, SourceFormatYAML, res.SourceFormat)

	tree := res.Root
	assert.Same(t, tree, tree.Property("children").Element.Items())

	_, err = tree.Call(map[string]any{"value": 1, "children": []any{
		map[string]any{"value": 2},
		map[string]any{"value": 3, "children": []any{map[string]any{"value": 4}}},
	}})
	assert.NoError(t, err)
	_, err = tree.Call(map[string]any{"value": 1, "children": []any{map[string]any{"value": "x"}}})
	assert.ErrorIs(t, err, schemaerrors.ErrValidation)
}

func TestParseYAMLAnchors(t *testing.T) {
	src := `
title: List
type: object
properties:
  head: &node
    title: Node
    type: object
    properties:
      next: *node
`
	res, err := New().ParseBytes([]byte(src))
	require.NoError(t, err)
	head := res.Root.Property("head").Element
	assert.Same(t, head, head.Property("next").Element)
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		sentinel error
		contains string
	}{
		{name: "remote ref", src: `{"items": {"$ref": "other.json#/Pet"}}`, sentinel: schemaerrors.ErrNotImplemented, contains: "remote references"},
		{name: "missing pointer", src: `{"items": {"$ref": "#/definitions/Nope"}}`, sentinel: schemaerrors.ErrParse, contains: "Nope"},
		{name: "circular chain", src: `{"definitions": {"a": {"$ref": "#/definitions/b"}, "b": {"$ref": "#/definitions/a"}}, "items": {"$ref": "#/definitions/a"}}`, sentinel: schemaerrors.ErrCircularReference},
		{name: "untitled object", src: `{"type": "object", "properties": {"inner": {"type": "object"}}, "title": "Outer"}`, sentinel: schemaerrors.ErrParse, contains: "requires a title"},
		{name: "bad definition", src: `{"definitions": {"Bad": {"type": "float"}}}`, sentinel: schemaerrors.ErrParse, contains: `definitions "Bad"`},
		{name: "not a document", src: `{"a": [}`, contains: "parser:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().ParseBytes([]byte(tt.src))
			require.Error(t, err)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestParseWithoutResolvingRefs(t *testing.T) {
	p := New()
	p.ResolveRefs = false
	_, err := p.ParseBytes([]byte(petStore))
	require.Error(t, err)
	assert.ErrorIs(t, err, schemaerrors.ErrParse)
	assert.Contains(t, err.Error(), "unresolved $ref")
}

func TestParseTitleFuncAndAutoTitle(t *testing.T) {
	src := `{"type": "object", "properties": {"home": {"type": "object", "properties": {"street": {"type": "string"}}}}}`

	res, err := ParseWithOptions(WithBytes([]byte(src)), WithTitleFunc(DefaultTitleFunc))
	require.NoError(t, err)
	assert.Equal(t, "Root", res.Root.Title())
	assert.Equal(t, "Home", res.Root.Property("home").Element.Title())
	assert.Zero(t, res.Labelled)

	res, err = ParseWithOptions(WithBytes([]byte(src)), WithAutoTitle(true))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Labelled)
	assert.Equal(t, "Home", res.Root.Property("home").Element.Title())
}

func TestParseDeduplicationCounts(t *testing.T) {
	res, err := New().ParseBytes([]byte(`{
		"title": "Order",
		"type": "object",
		"properties": {
			"ship": {"title": "Address", "type": "object", "properties": {"street": {"type": "string"}}},
			"bill": {"title": "Address", "type": "object", "properties": {"street": {"type": "string"}}},
			"pickup": {"title": "Address", "type": "object", "properties": {"store": {"type": "integer"}}}
		}
	}`))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Deduplicated)
	assert.Equal(t, 1, res.Renamed)
	assert.Equal(t, "Address_1", res.Root.Property("pickup").Element.Name())
}

func TestParseDeduplicatesRecursivePairs(t *testing.T) {
	res, err := New().ParseBytes([]byte(`{
		"title": "Root",
		"type": "object",
		"properties": {
			"first": {"$ref": "#/definitions/Node1"},
			"second": {"$ref": "#/definitions/Node2"}
		},
		"definitions": {
			"Node1": {"title": "Node", "type": "object", "properties": {"leaf": {"$ref": "#/definitions/Leaf1"}}},
			"Leaf1": {"title": "Leaf", "type": "object", "properties": {"back": {"$ref": "#/definitions/Node1"}}},
			"Node2": {"title": "Node", "type": "object", "properties": {"leaf": {"$ref": "#/definitions/Leaf2"}}},
			"Leaf2": {"title": "Leaf", "type": "object", "properties": {"back": {"$ref": "#/definitions/Node2"}}}
		}
	}`))
	require.NoError(t, err)

	node := res.Root.Property("first").Element
	leaf := node.Property("leaf").Element
	assert.Same(t, node, res.Root.Property("second").Element)
	assert.Same(t, node, leaf.Property("back").Element)
	assert.Equal(t, "Leaf", leaf.Name())
	assert.Equal(t, 2, res.Deduplicated)
	assert.Zero(t, res.Renamed)

	for i, def := range res.Definitions {
		want := node
		if strings.HasPrefix(res.DefinitionNames[i], "Leaf") {
			want = leaf
		}
		assert.Same(t, want, def, res.DefinitionNames[i])
	}

	var names []string
	element.Walk(func(el *element.Element) bool {
		if el.Kind() == element.KindObject {
			names = append(names, el.Name())
		}
		return true
	}, res.Elements()...)
	assert.Equal(t, []string{"Root", "Node", "Leaf"}, names)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.JSON")
	require.NoError(t, os.WriteFile(path, []byte(petStore), 0o600))

	res, err := New().Parse(path)
	require.NoError(t, err)
	assert.Equal(t, path, res.SourcePath)
	assert.Equal(t, SourceFormatJSON, res.SourceFormat)

	yamlPath := filepath.Join(dir, "store.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("title: S\ntype: object\n"), 0o600))
	res, err = New().Parse(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, SourceFormatYAML, res.SourceFormat)

	p := New()
	p.MaxFileSize = 10
	_, err = p.Parse(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit of 10 B")

	_, err = New().Parse(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseReader(t *testing.T) {
	res, err := New().ParseReader(strings.NewReader(petStore))
	require.NoError(t, err)
	assert.Equal(t, "ParseReader.json", res.SourcePath)

	p := New()
	p.MaxFileSize = 16
	_, err = p.ParseReader(strings.NewReader(petStore))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input exceeds limit")
}

func TestParseWithOptions(t *testing.T) {
	t.Run("document source", func(t *testing.T) {
		res, err := ParseWithOptions(
			WithDocument(map[string]any{"type": "string", "maxLength": 3}),
			WithSourceName("inline"),
		)
		require.NoError(t, err)
		assert.Equal(t, "inline", res.SourcePath)
		assert.Equal(t, element.KindString, res.Root.Kind())
		assert.Empty(t, res.Definitions)
	})

	t.Run("formats", func(t *testing.T) {
		formats := element.DefaultFormats()
		formats["upper"] = func(s string) bool { return strings.ToUpper(s) == s }
		res, err := ParseWithOptions(
			WithReader(strings.NewReader(`{"type": "string", "format": "upper"}`)),
			WithFormats(formats),
		)
		require.NoError(t, err)
		_, err = res.Root.Call("abc")
		assert.Error(t, err)
	})

	t.Run("ref depth", func(t *testing.T) {
		_, err := ParseWithOptions(
			WithBytes([]byte(`{"definitions": {"a": {"$ref": "#/definitions/b"}, "b": {"$ref": "#/definitions/c"}, "c": true}, "items": {"$ref": "#/definitions/a"}}`)),
			WithMaxRefDepth(1),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schemaerrors.ErrReference)
	})

	t.Run("resolve refs off", func(t *testing.T) {
		_, err := ParseWithOptions(WithBytes([]byte(petStore)), WithResolveRefs(false))
		assert.ErrorIs(t, err, schemaerrors.ErrParse)
	})

	invalid := []struct {
		name string
		opts []Option
		msg  string
	}{
		{"no source", nil, "exactly one of WithFilePath, WithReader, WithBytes or WithDocument must be provided"},
		{"two sources", []Option{WithBytes([]byte("{}")), WithFilePath("a.json")}, "got WithFilePath and WithBytes"},
		{"nil reader", []Option{WithReader(nil)}, "reader cannot be nil"},
		{"nil bytes", []Option{WithBytes(nil)}, "bytes cannot be nil"},
		{"nil document", []Option{WithDocument(nil)}, "document cannot be nil"},
		{"negative depth", []Option{WithBytes([]byte("{}")), WithMaxRefDepth(-1)}, "cannot be negative"},
		{"negative size", []Option{WithBytes([]byte("{}")), WithMaxFileSize(-1)}, "cannot be negative"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWithOptions(tt.opts...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid options")
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDefaultTitleFunc(t *testing.T) {
	tests := []struct {
		pointer string
		want    string
	}{
		{"#", "Root"},
		{"", "Root"},
		{"#/properties/owner", "Owner"},
		{"#/properties/owner/properties/home_address", "OwnerHomeAddress"},
		{"#/properties/tags/items", "TagsItem"},
		{"#/definitions/pet", "Pet"},
		{"#/$defs/pet/additionalProperties", "PetValue"},
		{"#/patternProperties/^x-", "Value"},
		{"#/items/1", "Item1"},
		{"#/anyOf/0", "Root0"},
		{"#/properties/a~1b", "AB"},
	}
	for _, tt := range tests {
		t.Run(tt.pointer, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultTitleFunc(tt.pointer))
		})
	}
}

func TestLabelTitles(t *testing.T) {
	doc := load(t, `{
		"type": "object",
		"properties": {
			"owner": {"type": "object", "properties": {"pet": {"type": ["object", "null"]}}},
			"named": {"type": "object", "title": "Kept"},
			"tags": {"type": "array", "items": {"type": "object"}},
			"count": {"type": "integer"},
			"ref": {"$ref": "#/definitions/X"}
		},
		"enum": [{"type": "object"}]
	}`)
	n := LabelTitles(doc, nil)
	assert.Equal(t, 4, n)
	assert.Equal(t, "Root", get(t, doc, "title"))
	assert.Equal(t, "Owner", get(t, doc, "properties", "owner", "title"))
	assert.Equal(t, "OwnerPet", get(t, doc, "properties", "owner", "properties", "pet", "title"))
	assert.Equal(t, "Kept", get(t, doc, "properties", "named", "title"))
	assert.Equal(t, "TagsItem", get(t, doc, "properties", "tags", "items", "title"))
	assert.False(t, get(t, doc, "properties", "count").(*document.Map).Has("title"))
	assert.False(t, get(t, doc, "properties", "ref").(*document.Map).Has("title"))

	custom := load(t, `{"type": "object"}`)
	LabelTitles(custom, func(pointer string) string { return "At" + pointer })
	assert.Equal(t, "At#", get(t, custom, "title"))
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{-1, "-1 B"},
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{10 * 1024 * 1024, "10.0 MiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.size))
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		data string
		want SourceFormat
	}{
		{"a/b.Json", "type: string", SourceFormatJSON},
		{"b.yml", "{}", SourceFormatYAML},
		{"b.txt", "  \n[1]", SourceFormatJSON},
		{"", "type: string", SourceFormatYAML},
		{"", " \t", SourceFormatUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, detectFormat(tt.path, []byte(tt.data)), "%s %q", tt.path, tt.data)
	}
	assert.Equal(t, ".json", SourceFormatJSON.Extension())
	assert.Equal(t, ".yaml", SourceFormatUnknown.Extension())
}
