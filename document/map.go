package document

import (
	"bytes"
	"iter"
	"slices"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
)

// Map is a JSON object that remembers the order its keys were set in.
// The zero value is not usable; create maps with NewMap.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap creates an empty Map. Pairs are alternating string keys and values
// and are set in order; a non-string key panics.
func NewMap(pairs ...any) *Map {
	m := &Map{values: make(map[string]any, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1])
	}
	return m
}

// Set stores v under key. Existing keys keep their position.
func (m *Map) Set(key string, v any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present, even when its value is nil.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key from the map.
func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// All iterates over key/value pairs in insertion order.
func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy of m.
func (m *Map) Clone() *Map {
	out := &Map{keys: slices.Clone(m.keys), values: make(map[string]any, len(m.values))}
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}

// ToMap converts m into a plain map[string]any tree.
func (m *Map) ToMap() map[string]any {
	out, _ := ToGo(m).(map[string]any)
	return out
}

// MarshalJSON encodes m with its keys in insertion order.
// The map must not contain cycles.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler, keeping insertion order.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		var valueNode yaml.Node
		if err := valueNode.Encode(yamlValue(m.values[k])); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, &valueNode)
	}
	return node, nil
}

// yamlValue converts json.Number, which yaml does not know about, into a
// native number. Containers are handled by their own marshalers.
func yamlValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = yamlValue(item)
		}
		return out
	default:
		return v
	}
}
