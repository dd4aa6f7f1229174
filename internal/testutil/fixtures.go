// Package testutil provides schema fixtures and temp-file helpers for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
)

// NewPetSchema returns a Pet object schema whose optional owner refers to
// an untitled Owner definition.
func NewPetSchema() map[string]any {
	return map[string]any{
		"title": "Pet",
		"type":  "object",
		"properties": map[string]any{
			"id":    map[string]any{"type": "integer", "minimum": 1},
			"name":  map[string]any{"type": "string"},
			"owner": map[string]any{"$ref": "#/definitions/Owner"},
		},
		"required": []any{"id"},
		"definitions": map[string]any{
			"Owner": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"email": map[string]any{"type": "string", "format": "email"},
				},
			},
		},
	}
}

// NewStoreSchema returns a Store object holding a list of Pet definitions.
func NewStoreSchema() map[string]any {
	return map[string]any{
		"title": "Store",
		"type":  "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "minLength": 1},
			"pets": map[string]any{
				"type":  "array",
				"items": map[string]any{"$ref": "#/definitions/Pet"},
			},
		},
		"required": []any{"name"},
		"definitions": map[string]any{
			"Pet": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": "integer", "minimum": 1},
					"name": map[string]any{"type": "string", "description": "Call name."},
				},
				"required": []any{"id"},
			},
		},
	}
}

// NewCyclicSchema returns a Person and a Pet that refer to each other.
func NewCyclicSchema() map[string]any {
	return map[string]any{
		"title": "Person",
		"type":  "object",
		"properties": map[string]any{
			"pet": map[string]any{"$ref": "#/definitions/Pet"},
		},
		"definitions": map[string]any{
			"Pet": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"owner": map[string]any{"$ref": "#"},
				},
			},
		},
	}
}

// MustJSON marshals doc to JSON or fails the test.
func MustJSON(t *testing.T, doc any) string {
	t.Helper()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return string(data)
}

// WriteTempFile writes content to name inside a fresh temporary directory
// and returns the path. The directory is removed when the test completes.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return path
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return WriteTempFile(t, "schema.yaml", string(data))
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()
	return WriteTempFile(t, "schema.json", MustJSON(t, doc))
}
