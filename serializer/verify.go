package serializer

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"
)

// Verify loads a document written by MarshalJSON into an independent
// draft-07 implementation and resolves every $ref in it. The resolved
// schema can validate data on its own.
func Verify(data []byte) (*jsonschema.Resolved, error) {
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("serializer: document is not a schema: %w", err)
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("serializer: document does not resolve: %w", err)
	}
	return resolved, nil
}
