package generator

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/erraggy/schemagen/internal/naming"
)

// maxDescriptionLength is the maximum length for descriptions in Go comments
// before truncation.
const maxDescriptionLength = 200

// toTypeName converts an element name to an exported Go type name.
func toTypeName(s string) string {
	return naming.ToTypeName(s)
}

// toFieldName converts a normalized property name to an exported Go field
// name.
func toFieldName(s string) string {
	return naming.ToFieldName(s)
}

// cleanDescription prepares a schema description for use in Go comments.
// It removes newlines, trims whitespace, and truncates long descriptions.
func cleanDescription(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) > maxDescriptionLength {
		s = string(runes[:maxDescriptionLength-3]) + "..."
	}
	return s
}

// formatValue renders a keyword value as compact JSON for comments.
func formatValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "?"
	}
	return cleanDescription(string(data))
}
