package element

import (
	"bytes"
	"slices"

	"github.com/goccy/go-json"
)

// Instance is the validated form of a JSON object.
//
// Declared properties are reachable by their normalized name through Get,
// and by their JSON key through GetSource. Keys that only matched pattern or
// additional properties are named by their JSON key, suffixed with _1, _2,
// ... when that name belongs to a declared property.
type Instance struct {
	class    *Element
	names    []string
	sources  []string
	byName   map[string]any
	bySource map[string]any
}

func newInstance(class *Element) *Instance {
	return &Instance{
		class:    class,
		byName:   make(map[string]any),
		bySource: make(map[string]any),
	}
}

func (in *Instance) set(name, source string, v any) {
	if _, ok := in.bySource[source]; !ok {
		in.names = append(in.names, name)
		in.sources = append(in.sources, source)
	}
	in.byName[name] = v
	in.bySource[source] = v
}

func (in *Instance) has(name string) bool {
	_, ok := in.byName[name]
	return ok
}

// Class returns the element the instance was validated against. Untyped
// data wrapped during validation has an untitled class.
func (in *Instance) Class() *Element { return in.class }

// Get returns the value of a property by normalized name, or NotProvided.
func (in *Instance) Get(name string) any {
	if v, ok := in.byName[name]; ok {
		return v
	}
	return NotProvided
}

// GetSource returns the value stored under JSON key source, or NotProvided.
func (in *Instance) GetSource(source string) any {
	if v, ok := in.bySource[source]; ok {
		return v
	}
	return NotProvided
}

// Keys returns the normalized names of the present values, in order.
func (in *Instance) Keys() []string { return slices.Clone(in.names) }

// SourceKeys returns the JSON keys of the present values, in order.
func (in *Instance) SourceKeys() []string { return slices.Clone(in.sources) }

// Len returns the number of present values.
func (in *Instance) Len() int { return len(in.sources) }

// ToMap converts the instance back into plain JSON data keyed by JSON key.
// Nested instances and lists are converted too.
func (in *Instance) ToMap() map[string]any {
	out := make(map[string]any, len(in.sources))
	for _, k := range in.sources {
		out[k] = plain(in.bySource[k])
	}
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case *Instance:
		return t.ToMap()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plain(item)
		}
		return out
	}
	return v
}

// MarshalJSON encodes the instance by JSON key, in order.
func (in *Instance) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range in.sources {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(in.bySource[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String renders the instance as ClassName(key=value, ...).
func (in *Instance) String() string {
	name := "Instance"
	if in.class != nil && in.class.Name() != "" {
		name = in.class.Name()
	}
	var b bytes.Buffer
	b.WriteString(name)
	b.WriteByte('(')
	for i, k := range in.names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(formatKeyword(in.byName[k]))
	}
	b.WriteByte(')')
	return b.String()
}
