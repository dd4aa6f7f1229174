package schemautil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/schemagen/element"
)

func petObject(title string) *element.Element {
	return element.NewObject(title, []element.NamedProperty{
		{Key: "id", Element: element.NewInteger(nil), Required: true},
		{Key: "name", Element: element.NewString(element.Keywords{element.KwMaxLength: 40})},
	}, nil)
}

func linkedNode(title string) *element.Element {
	node := element.NewObject(title, nil, nil)
	node.SetProperties([]element.NamedProperty{
		{Key: "value", Element: element.NewString(nil)},
		{Key: "next", Element: node},
	})
	return node
}

func TestSchemaHasher_Hash(t *testing.T) {
	h := NewSchemaHasher()

	t.Run("equal objects hash alike", func(t *testing.T) {
		assert.Equal(t, h.Hash(petObject("Pet")), h.Hash(petObject("Pet")))
	})

	t.Run("titles matter", func(t *testing.T) {
		assert.NotEqual(t, h.Hash(petObject("Pet")), h.Hash(petObject("Animal")))
	})

	t.Run("names do not", func(t *testing.T) {
		renamed := petObject("Pet")
		renamed.SetName("Pet_1")
		assert.Equal(t, h.Hash(petObject("Pet")), h.Hash(renamed))
	})

	t.Run("keyword values ignored", func(t *testing.T) {
		a := element.NewInteger(element.Keywords{element.KwMinimum: 1})
		b := element.NewInteger(element.Keywords{element.KwMinimum: 1.0})
		assert.Equal(t, h.Hash(a), h.Hash(b))
	})

	t.Run("keyword names matter", func(t *testing.T) {
		a := element.NewInteger(element.Keywords{element.KwMinimum: 1})
		b := element.NewInteger(element.Keywords{element.KwMaximum: 1})
		assert.NotEqual(t, h.Hash(a), h.Hash(b))
	})

	t.Run("property keys matter", func(t *testing.T) {
		other := element.NewObject("Pet", []element.NamedProperty{
			{Key: "id", Element: element.NewInteger(nil), Required: true},
			{Key: "title", Element: element.NewString(element.Keywords{element.KwMaxLength: 40})},
		}, nil)
		assert.NotEqual(t, h.Hash(petObject("Pet")), h.Hash(other))
	})

	t.Run("cyclic graphs terminate", func(t *testing.T) {
		a, b := linkedNode("Node"), linkedNode("Node")
		require.True(t, element.Equal(a, b))
		assert.Equal(t, h.Hash(a), h.Hash(b))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, h.Hash(nil), h.Hash(nil))
		assert.NotEqual(t, h.Hash(nil), h.Hash(element.Anything()))
	})
}

func TestSchemaHasher_GroupByHash(t *testing.T) {
	h := NewSchemaHasher()
	a, b, c := petObject("Pet"), petObject("Pet"), petObject("Owner")

	groups := h.GroupByHash([]*element.Element{a, b, c})
	require.Len(t, groups, 2)
	assert.Equal(t, []*element.Element{a, b}, groups[h.Hash(a)])
	assert.Equal(t, []*element.Element{c}, groups[h.Hash(c)])
}
