// Package schemautil provides helpers shared by the parser: reading the
// "type" keyword of raw schema nodes, structural hashing of elements, and
// same-title deduplication of object elements.
package schemautil

import (
	"slices"

	"github.com/erraggy/schemagen/document"
)

// GetSchemaTypes returns the type(s) of a raw schema node, handling both
// the string form and the list form of "type".
//
// Examples:
//   - {"type": "string"} returns ["string"]
//   - {"type": ["string", "null"]} returns ["string", "null"]
func GetSchemaTypes(node *document.Map) []string {
	if node == nil {
		return nil
	}
	raw, _ := node.Get("type")
	switch t := raw.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		result := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return slices.Clone(t)
	}
	return nil
}

// HasTypeList reports whether "type" is given as a list, even of one entry.
func HasTypeList(node *document.Map) bool {
	if node == nil {
		return false
	}
	raw, _ := node.Get("type")
	switch raw.(type) {
	case []any, []string:
		return true
	}
	return false
}

// GetPrimaryType returns the first non-null type, or the first type when
// all are null. It returns "" when the node has no type.
func GetPrimaryType(node *document.Map) string {
	types := GetSchemaTypes(node)
	for _, t := range types {
		if t != "null" {
			return t
		}
	}
	if len(types) > 0 {
		return types[0]
	}
	return ""
}

// IsNullable reports whether "null" is among the node's types.
func IsNullable(node *document.Map) bool {
	return HasType(node, "null")
}

// HasType reports whether the node declares targetType.
func HasType(node *document.Map, targetType string) bool {
	return slices.Contains(GetSchemaTypes(node), targetType)
}

// IsSingleType reports whether the node has exactly one non-null type.
func IsSingleType(node *document.Map) bool {
	n := 0
	for _, t := range GetSchemaTypes(node) {
		if t != "null" {
			n++
		}
	}
	return n == 1
}
