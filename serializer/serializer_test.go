package serializer

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemagen/document"
	"github.com/erraggy/schemagen/element"
	"github.com/erraggy/schemagen/parser"
	"github.com/erraggy/schemagen/schemaerrors"
)

func parse(t *testing.T, data []byte) *parser.ParseResult {
	t.Helper()
	res, err := parser.New().ParseBytes(data)
	require.NoError(t, err)
	return res
}

// roundTrip parses src, serializes the result and parses that again.
func roundTrip(t *testing.T, src string) (first, second *parser.ParseResult, out []byte) {
	t.Helper()
	first = parse(t, []byte(src))
	out, err := MarshalJSON(first.Elements()...)
	require.NoError(t, err)
	second = parse(t, out)
	return first, second, out
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "mutually recursive objects",
			src: `{
				"title": "Store",
				"type": "object",
				"description": "a pet store",
				"properties": {
					"pets": {"type": "array", "items": {"$ref": "#/definitions/Pet"}, "minItems": 1},
					"owner": {"$ref": "#/definitions/Owner"}
				},
				"definitions": {
					"Pet": {
						"type": "object",
						"required": ["name"],
						"properties": {
							"name": {"type": "string", "maxLength": 20},
							"owner": {"$ref": "#/definitions/Owner"}
						}
					},
					"Owner": {
						"type": "object",
						"properties": {
							"pets": {"type": "array", "items": {"$ref": "#/definitions/Pet"}}
						}
					}
				}
			}`,
		},
		{
			name: "self referencing root",
			src: `{
				"title": "Node",
				"type": "object",
				"properties": {
					"value": {"type": "integer", "minimum": 0},
					"children": {"type": "array", "items": {"$ref": "#"}}
				}
			}`,
		},
		{
			name: "type list",
			src:  `{"type": ["string", "null"], "default": null}`,
		},
		{
			name: "compositions",
			src: `{
				"title": "Shape",
				"type": "object",
				"properties": {
					"kind": {"oneOf": [{"const": "circle"}, {"const": "square"}]},
					"size": {"anyOf": [{"type": "number", "exclusiveMinimum": 0}, {"type": "null"}]},
					"label": {"not": {"type": "integer"}},
					"box": {"allOf": [{"$ref": "#/definitions/Box"}, {"required": ["w"]}]}
				},
				"definitions": {
					"Box": {"type": "object", "properties": {"w": {"type": "number"}, "h": {"type": "number"}}}
				}
			}`,
		},
		{
			name: "object keywords",
			src: `{
				"title": "Bag",
				"type": "object",
				"patternProperties": {"^x-": {"type": "string"}},
				"additionalProperties": false,
				"propertyNames": {"maxLength": 10},
				"dependencies": {
					"a": ["b"],
					"c": {"required": ["d"]}
				},
				"minProperties": 1
			}`,
		},
		{
			name: "tuple",
			src: `{
				"type": "array",
				"items": [{"type": "string"}, {"type": "boolean"}],
				"additionalItems": false,
				"contains": {"type": "string", "format": "email"},
				"uniqueItems": true
			}`,
		},
		{
			name: "recursive array root",
			src:  `{"type": "array", "items": {"anyOf": [{"type": "string"}, {"$ref": "#"}]}}`,
		},
		{name: "true", src: `true`},
		{name: "false", src: `false`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second, out := roundTrip(t, tt.src)
			assert.True(t, element.Equal(first.Root, second.Root), "round trip changed the root:\n%s", out)

			again, err := Serialize(second.Elements()...)
			require.NoError(t, err)
			want, err := Serialize(first.Elements()...)
			require.NoError(t, err)
			if diff := cmp.Diff(want.ToMap(), again.ToMap()); diff != "" {
				t.Errorf("serialized document not stable (-first +second):\n%s", diff)
			}
		})
	}
}

func TestSerializeLayout(t *testing.T) {
	first, _, out := roundTrip(t, `{
		"title": "Store",
		"type": "object",
		"properties": {
			"pets": {"type": "array", "items": {"$ref": "#/definitions/Pet"}}
		},
		"definitions": {
			"Tag": {"type": "object", "properties": {"label": {"type": "string"}}},
			"Pet": {
				"type": "object",
				"properties": {"tag": {"$ref": "#/definitions/Tag"}, "name": {"type": "string"}},
				"required": ["name"]
			}
		}
	}`)

	doc, err := Serialize(first.Elements()...)
	require.NoError(t, err)
	assert.Equal(t, []string{"$schema", "title", "type", "properties", "definitions"}, doc.Keys())

	got := doc.ToMap()
	assert.Equal(t, SchemaURI, got["$schema"])
	assert.Equal(t, map[string]any{
		"pets": map[string]any{
			"type":  "array",
			"items": map[string]any{"$ref": "#/definitions/Pet"},
		},
	}, got["properties"])

	defs, ok := doc.Get("definitions")
	require.True(t, ok)
	assert.Equal(t, []string{"Tag", "Pet"}, defs.(*document.Map).Keys(), "dependencies first")

	pet, _ := defs.(*document.Map).Get("Pet")
	assert.Equal(t, []string{"title", "type", "properties", "required"}, pet.(*document.Map).Keys())
	assert.Equal(t, []any{"name"}, pet.(*document.Map).ToMap()["required"])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "definitions")
}

func TestSerializeSelfReferencingRoot(t *testing.T) {
	res := parse(t, []byte(`{
		"title": "Node",
		"type": "object",
		"properties": {
			"next": {"$ref": "#"},
			"tag": {"$ref": "#/definitions/Tag"}
		},
		"definitions": {
			"Tag": {"type": "object", "properties": {"owner": {"$ref": "#"}}}
		}
	}`))

	doc, err := Serialize(res.Elements()...)
	require.NoError(t, err)
	assert.Equal(t, []string{"$schema", "title", "type", "properties", "definitions"}, doc.Keys())
	assert.Equal(t, map[string]any{
		"$schema": SchemaURI,
		"title":   "Node",
		"type":    "object",
		"properties": map[string]any{
			"next": map[string]any{"$ref": "#"},
			"tag":  map[string]any{"$ref": "#/definitions/Tag"},
		},
		"definitions": map[string]any{
			"Tag": map[string]any{
				"title": "Tag",
				"type":  "object",
				"properties": map[string]any{
					"owner": map[string]any{"$ref": "#"},
				},
			},
		},
	}, doc.ToMap())

	out, err := MarshalJSON(res.Elements()...)
	require.NoError(t, err)
	_, err = Verify(out)
	require.NoError(t, err)
	again := parse(t, out)
	assert.True(t, element.Equal(res.Root, again.Root))
}

func TestSerializeBooleanSchemas(t *testing.T) {
	obj := element.NewObject("Loose", []element.NamedProperty{
		{Key: "any", Element: element.Anything()},
		{Key: "never", Element: element.Nothing()},
		{Key: "unset"},
	}, nil)

	doc, err := Serialize(obj)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"any": true, "never": false, "unset": true}, doc.ToMap()["properties"])

	doc, err = Serialize(element.Anything())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"$schema": SchemaURI}, doc.ToMap())

	doc, err = Serialize(element.Nothing())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"$schema": SchemaURI, "not": map[string]any{}}, doc.ToMap())
}

func TestSerializeRecursiveNonObject(t *testing.T) {
	list := element.NewArray(nil, nil)
	list.SetItems(list)
	root := element.NewObject("Holder", []element.NamedProperty{{Key: "list", Element: list}}, nil)

	_, err := Serialize(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, schemaerrors.ErrNotImplemented)

	doc, err := Serialize(list)
	require.NoError(t, err, "a recursive root refers to itself with #")
	assert.Equal(t, map[string]any{"$ref": "#"}, doc.ToMap()["items"])
}

func TestSerializeNoElements(t *testing.T) {
	_, err := Serialize()
	assert.Error(t, err)
	_, err = MarshalJSON()
	assert.Error(t, err)
	_, err = MarshalYAML(nil)
	assert.Error(t, err)
}

func TestMarshalYAML(t *testing.T) {
	res := parse(t, []byte(`
title: Config
type: object
required: [port]
properties:
  port:
    type: integer
    minimum: 1
    maximum: 65535
  ratio:
    type: number
    multipleOf: 0.5
`))

	out, err := MarshalYAML(res.Elements()...)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, SchemaURI, decoded["$schema"])
	assert.Equal(t, "Config", decoded["title"])

	props, ok := decoded["properties"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"type": "integer", "maximum": 65535, "minimum": 1}, props["port"])
	assert.Equal(t, map[string]any{"type": "number", "multipleOf": 0.5}, props["ratio"])

	again := parse(t, out)
	assert.True(t, element.Equal(res.Root, again.Root))
}
