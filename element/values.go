package element

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/erraggy/schemagen/document"
)

// toRat converts a numeric value to an exact rational. Floats go through
// their shortest decimal form so that 0.1 stays 1/10. Booleans, NaN and
// infinities are not numbers here.
func toRat(v any) (*big.Rat, bool) {
	switch t := v.(type) {
	case json.Number:
		r, ok := new(big.Rat).SetString(t.String())
		return r, ok
	case float64:
		return floatRat(t)
	case float32:
		return floatRat(float64(t))
	case bool, string, nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return new(big.Rat).SetInt64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Rat).SetInt(new(big.Int).SetUint64(rv.Uint())), true
	case reflect.Float32, reflect.Float64:
		return floatRat(rv.Float())
	}
	return nil, false
}

func floatRat(f float64) (*big.Rat, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
}

// isNumber reports whether v is a JSON number.
func isNumber(v any) bool {
	switch t := v.(type) {
	case float64:
		return true
	case json.Number:
		_, ok := toRat(t)
		return ok
	}
	_, ok := toRat(v)
	return ok
}

// isInteger reports whether v is a number with an integral value.
// 1.0 counts as an integer, as JSON Schema draft 6 and later define it.
func isInteger(v any) bool {
	r, ok := toRat(v)
	return ok && r.IsInt()
}

// compareNumbers compares two numbers; ok is false if either is not one.
func compareNumbers(a, b any) (cmp int, ok bool) {
	ra, ok := toRat(a)
	if !ok {
		return 0, false
	}
	rb, ok := toRat(b)
	if !ok {
		return 0, false
	}
	return ra.Cmp(rb), true
}

// asList returns v as a list of values if it is a JSON array.
func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case nil, string, []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// object is an ordered view over any JSON-object-like value.
type object struct {
	keys   []string
	values map[string]any
}

func (o *object) get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// asObject returns an ordered view of v if it is a JSON object.
// Ordered sources keep their order; Go maps are sorted by key.
func asObject(v any) (*object, bool) {
	switch t := v.(type) {
	case *document.Map:
		o := &object{keys: t.Keys(), values: make(map[string]any, t.Len())}
		for k, val := range t.All() {
			o.values[k] = val
		}
		return o, true
	case *Instance:
		return &object{keys: t.SourceKeys(), values: t.bySource}, true
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return &object{keys: keys, values: t}, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	o := &object{values: make(map[string]any, rv.Len())}
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		o.keys = append(o.keys, k)
		o.values[k] = iter.Value().Interface()
	}
	slices.Sort(o.keys)
	return o, true
}

// jsonEqual compares two values by JSON semantics: numbers by value,
// arrays element-wise, objects key-wise regardless of order.
func jsonEqual(a, b any) bool {
	if IsNotProvided(a) || IsNotProvided(b) {
		return IsNotProvided(a) && IsNotProvided(b)
	}
	if cmp, ok := compareNumbers(a, b); ok {
		return cmp == 0
	}
	if isNumber(a) || isNumber(b) {
		return false
	}
	switch ta := a.(type) {
	case nil:
		return b == nil
	case string:
		tb, ok := b.(string)
		return ok && ta == tb
	case bool:
		tb, ok := b.(bool)
		return ok && ta == tb
	}
	if la, ok := asList(a); ok {
		lb, ok := asList(b)
		if !ok || len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !jsonEqual(la[i], lb[i]) {
				return false
			}
		}
		return true
	}
	if oa, ok := asObject(a); ok {
		ob, ok := asObject(b)
		if !ok || len(oa.keys) != len(ob.keys) {
			return false
		}
		for _, k := range oa.keys {
			vb, ok := ob.get(k)
			if !ok || !jsonEqual(oa.values[k], vb) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// formatKeyword renders a keyword value for a validation message.
func formatKeyword(v any) string {
	switch t := v.(type) {
	case *Element:
		return t.String()
	case []*Element:
		parts := make([]string, len(t))
		for i, el := range t {
			parts[i] = el.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case string:
		return strconv.Quote(t)
	case nil:
		return "null"
	case json.Number:
		return t.String()
	}
	if data, err := json.Marshal(v); err == nil {
		return string(data)
	}
	return fmt.Sprintf("%v", v)
}
