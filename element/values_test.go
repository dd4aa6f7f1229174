package element

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagen/document"
)

func TestIsInteger(t *testing.T) {
	for _, v := range []any{0, int8(-3), uint64(math.MaxUint64), 2.0, json.Number("10"), json.Number("1e3")} {
		assert.True(t, isInteger(v), "%T %v", v, v)
	}
	for _, v := range []any{1.5, json.Number("0.1"), true, "1", nil, math.Inf(1), math.NaN()} {
		assert.False(t, isInteger(v), "%T %v", v, v)
	}
}

func TestCompareNumbersExact(t *testing.T) {
	c, ok := compareNumbers(json.Number("9007199254740993"), int64(9007199254740992))
	require.True(t, ok)
	assert.Equal(t, 1, c, "large integers compare without float rounding")

	c, ok = compareNumbers(0.1, json.Number("0.1"))
	require.True(t, ok)
	assert.Zero(t, c)

	_, ok = compareNumbers("1", 1)
	assert.False(t, ok)
}

func TestJSONEqual(t *testing.T) {
	tests := []struct {
		a, b any
		want bool
	}{
		{1, 1.0, true},
		{json.Number("2"), int64(2), true},
		{1, "1", false},
		{true, 1, false},
		{nil, nil, true},
		{nil, false, false},
		{[]any{1, "a"}, []any{1.0, "a"}, true},
		{[]any{1}, []any{1, 2}, false},
		{map[string]any{"a": 1, "b": 2}, map[string]any{"b": 2, "a": 1}, true},
		{map[string]any{"a": 1}, map[string]any{"a": 2}, false},
		{document.NewMap("a", 1), map[string]any{"a": 1}, true},
		{NotProvided, NotProvided, true},
		{NotProvided, nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, jsonEqual(tt.a, tt.b), "%v == %v", tt.a, tt.b)
	}
}

func TestFormatKeyword(t *testing.T) {
	assert.Equal(t, `"a"`, formatKeyword("a"))
	assert.Equal(t, "null", formatKeyword(nil))
	assert.Equal(t, "1.5", formatKeyword(1.5))
	assert.Equal(t, "12", formatKeyword(json.Number("12")))
	assert.Equal(t, `["a","b"]`, formatKeyword([]string{"a", "b"}))
	assert.Equal(t, "Pet", formatKeyword(NewObject("Pet", nil, nil)))
	assert.Equal(t, "[String, Integer]", formatKeyword([]*Element{NewString(nil), NewInteger(nil)}))
}

func TestAsObjectOrder(t *testing.T) {
	m := document.NewMap("z", 1, "a", 2)
	obj, ok := asObject(m)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a"}, obj.keys)

	obj, ok = asObject(map[string]int{"z": 1, "a": 2})
	require.True(t, ok)
	assert.Equal(t, []string{"a", "z"}, obj.keys)

	_, ok = asObject([]any{})
	assert.False(t, ok)
	_, ok = asList("abc")
	assert.False(t, ok)
}
