package document

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
)

// Load decodes a JSON or YAML document into ordered Maps, []any and scalars.
// Integers become int64 (json.Number when they overflow), floats float64.
func Load(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("document: failed to decode: %w", err)
	}
	if root.Kind == 0 {
		return nil, errors.New("document: empty document")
	}
	c := &nodeConverter{seen: make(map[*yaml.Node]any)}
	return c.convert(&root)
}

// LoadFile reads and decodes the document at path.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the caller
	if err != nil {
		return nil, fmt.Errorf("document: failed to read file: %w", err)
	}
	return Load(data)
}

type nodeConverter struct {
	// seen maps anchored nodes to their converted value so aliases share identity
	seen map[*yaml.Node]any
}

func (c *nodeConverter) convert(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		if v, ok := c.seen[n.Alias]; ok {
			return v, nil
		}
		return c.convert(n.Alias)
	case yaml.MappingNode:
		m := NewMap()
		c.seen[n] = m
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("document: line %d: mapping keys must be scalars", k.Line)
			}
			v, err := c.convert(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(k.Value, v)
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.convert(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		c.seen[n] = out
		return out, nil
	case yaml.ScalarNode:
		return scalar(n)
	}
	return nil, fmt.Errorf("document: line %d: unsupported node kind %v", n.Line, n.Kind)
}

func scalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("document: line %d: %w", n.Line, err)
		}
		return b, nil
	case "!!int":
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return i, nil
		}
		var i int64
		if err := n.Decode(&i); err == nil {
			return i, nil
		}
		return json.Number(n.Value), nil
	case "!!float":
		switch strings.ToLower(strings.TrimPrefix(n.Value, "+")) {
		case ".inf":
			return math.Inf(1), nil
		case "-.inf":
			return math.Inf(-1), nil
		case ".nan":
			return math.NaN(), nil
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("document: line %d: invalid float %q", n.Line, n.Value)
		}
		return f, nil
	default:
		return n.Value, nil
	}
}

// DecodeInstance decodes instance data for validation. JSON is decoded with
// numbers kept as json.Number; anything that is not valid JSON is retried as
// YAML. Objects come back as map[string]any.
func DecodeInstance(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	jsonErr := dec.Decode(&v)
	if jsonErr == nil {
		return v, nil
	}
	doc, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("document: instance is neither JSON (%v) nor YAML: %w", jsonErr, err)
	}
	return ToGo(doc), nil
}

// ToGo converts Maps into map[string]any, recursing through lists.
// Shared and cyclic Maps stay shared and cyclic in the result.
func ToGo(v any) any {
	return toGo(v, make(map[*Map]map[string]any))
}

func toGo(v any, seen map[*Map]map[string]any) any {
	switch t := v.(type) {
	case *Map:
		if out, ok := seen[t]; ok {
			return out
		}
		out := make(map[string]any, t.Len())
		seen[t] = out
		for k, item := range t.All() {
			out[k] = toGo(item, seen)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = toGo(item, seen)
		}
		return out
	default:
		return v
	}
}

// FromGo converts map[string]any trees into Maps with sorted keys.
// A Go map reachable along several paths becomes one shared *Map, so
// recursive structures built in Go stay recursive.
func FromGo(v any) any {
	return fromGo(v, make(map[uintptr]*Map))
}

func fromGo(v any, seen map[uintptr]*Map) any {
	switch t := v.(type) {
	case *Map:
		return t
	case map[string]any:
		id := reflect.ValueOf(t).Pointer()
		if m, ok := seen[id]; ok {
			return m
		}
		m := NewMap()
		seen[id] = m
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			m.Set(k, fromGo(t[k], seen))
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = fromGo(item, seen)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	default:
		return v
	}
}
