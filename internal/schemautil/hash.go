package schemautil

import (
	"hash"
	"hash/fnv"
	"slices"
	"strconv"

	"github.com/erraggy/schemagen/element"
)

// DefaultHashDepth is how many levels of nested elements Hash looks into.
const DefaultHashDepth = 3

// SchemaHasher computes structural hashes for elements.
//
// The hash covers kind, title, keyword names, required keys, property keys
// and the same data for children down to a fixed depth. Keyword values are
// left out because numerically equal values (1 and 1.0) must hash alike.
// Elements that element.Equal reports as equal always hash alike; the
// converse does not hold, so callers confirm with a deep comparison.
//
// Bounding the depth instead of tracking visited elements keeps the hash
// stable for cyclic graphs that are equal but unrolled differently.
type SchemaHasher struct {
	depth int
}

// NewSchemaHasher creates a SchemaHasher with DefaultHashDepth.
func NewSchemaHasher() *SchemaHasher {
	return &SchemaHasher{depth: DefaultHashDepth}
}

// Hash computes a structural hash for an element.
func (h *SchemaHasher) Hash(el *element.Element) uint64 {
	hasher := fnv.New64a()
	h.hashElement(hasher, el, h.depth)
	return hasher.Sum64()
}

// GroupByHash groups elements by structural hash, keeping input order
// within each group.
func (h *SchemaHasher) GroupByHash(els []*element.Element) map[uint64][]*element.Element {
	groups := make(map[uint64][]*element.Element)
	for _, el := range els {
		sum := h.Hash(el)
		groups[sum] = append(groups[sum], el)
	}
	return groups
}

func (h *SchemaHasher) hashElement(hasher hash.Hash64, el *element.Element, depth int) {
	if el == nil {
		writeString(hasher, "nil")
		return
	}
	writeString(hasher, "kind:"+strconv.Itoa(int(el.Kind())))
	writeString(hasher, "title:"+el.Title())
	if depth == 0 {
		return
	}

	kw := el.Keywords()
	delete(kw, element.KwRequired)
	names := make([]string, 0, len(kw))
	for k := range kw {
		names = append(names, k)
	}
	slices.Sort(names)
	writeString(hasher, "keywords:")
	for _, k := range names {
		writeString(hasher, k)
	}

	if required := el.Required(); len(required) > 0 {
		slices.Sort(required)
		writeString(hasher, "required:")
		for _, r := range required {
			writeString(hasher, r)
		}
	}

	if el.IsTuple() {
		writeString(hasher, "tuple:")
		for _, item := range el.TupleItems() {
			h.hashElement(hasher, item, depth-1)
		}
	}

	// Properties keep declaration order; element.Equal compares them in order too.
	if props := el.Properties(); len(props) > 0 {
		writeString(hasher, "properties:")
		for _, p := range props {
			writeString(hasher, p.Source)
			h.hashElement(hasher, p.Element, depth-1)
		}
	}

	for _, pp := range el.PatternProperties() {
		writeString(hasher, "pattern:"+pp.Pattern)
		h.hashElement(hasher, pp.Element, depth-1)
	}

	for _, d := range el.Dependencies() {
		writeString(hasher, "dependency:"+d.Name)
		h.hashElement(hasher, d.Element, depth-1)
	}

	h.hashChild(hasher, "items:", el.Items(), depth)
	h.hashChild(hasher, "additionalItems:", el.AdditionalItems(), depth)
	h.hashChild(hasher, "contains:", el.Contains(), depth)
	h.hashChild(hasher, "additionalProperties:", el.AdditionalProperties(), depth)
	h.hashChild(hasher, "propertyNames:", el.PropertyNames(), depth)

	if members := el.Members(); len(members) > 0 {
		writeString(hasher, "members:")
		for _, m := range members {
			h.hashElement(hasher, m, depth-1)
		}
	}
}

func (h *SchemaHasher) hashChild(hasher hash.Hash64, label string, child *element.Element, depth int) {
	if child == nil {
		return
	}
	writeString(hasher, label)
	h.hashElement(hasher, child, depth-1)
}

// writeString writes a string to the hash with a separator.
func writeString(hasher hash.Hash64, s string) {
	_, _ = hasher.Write([]byte(s))
	_, _ = hasher.Write([]byte{0})
}
