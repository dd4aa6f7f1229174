package element

import "slices"

// Equal reports whether a and b describe the same schema. It compares kind,
// title, keywords and every child element, and terminates on cyclic graphs:
// a pair already under comparison is assumed equal. Declaration names are
// not compared, so a renamed duplicate still equals its original.
func Equal(a, b *Element) bool {
	eq := &equality{seen: make(map[[2]*Element]bool)}
	return eq.elements(a, b)
}

type equality struct {
	seen map[[2]*Element]bool
}

func (eq *equality) elements(a, b *Element) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	key := [2]*Element{a, b}
	if eq.seen[key] {
		return true
	}
	eq.seen[key] = true

	if a.kind != b.kind || a.title != b.title || a.tuple != b.tuple {
		return false
	}
	if !keywordsEqual(a, b) || !sameStrings(a.Required(), b.Required()) {
		return false
	}
	if !eq.elements(a.items, b.items) || !eq.lists(a.tupleItems, b.tupleItems) ||
		!eq.elements(a.additionalItems, b.additionalItems) || !eq.elements(a.contains, b.contains) {
		return false
	}
	if !eq.properties(a.properties, b.properties) || !eq.patterns(a.patternProperties, b.patternProperties) {
		return false
	}
	if !eq.elements(a.additionalProperties, b.additionalProperties) || !eq.elements(a.propertyNames, b.propertyNames) {
		return false
	}
	return eq.dependencies(a.dependencies, b.dependencies) && eq.lists(a.members, b.members)
}

func (eq *equality) lists(a, b []*Element) bool {
	return slices.EqualFunc(a, b, eq.elements)
}

func (eq *equality) properties(a, b []*Property) bool {
	return slices.EqualFunc(a, b, func(pa, pb *Property) bool {
		return pa.Name == pb.Name && pa.Source == pb.Source && pa.Required == pb.Required &&
			eq.elements(pa.Element, pb.Element)
	})
}

func (eq *equality) patterns(a, b []*PatternProperty) bool {
	return slices.EqualFunc(a, b, func(pa, pb *PatternProperty) bool {
		return pa.Pattern == pb.Pattern && eq.elements(pa.Element, pb.Element)
	})
}

func (eq *equality) dependencies(a, b []*Dependency) bool {
	return slices.EqualFunc(a, b, func(da, db *Dependency) bool {
		return da.Name == db.Name && slices.Equal(da.Required, db.Required) &&
			eq.elements(da.Element, db.Element)
	})
}

// keywordsEqual compares scalar keywords other than "required", which is
// compared as a set through Required.
func keywordsEqual(a, b *Element) bool {
	count := func(kw Keywords) int {
		n := len(kw)
		if _, ok := kw[KwRequired]; ok {
			n--
		}
		return n
	}
	if count(a.keywords) != count(b.keywords) {
		return false
	}
	for k, va := range a.keywords {
		if k == KwRequired {
			continue
		}
		vb, ok := b.keywords[k]
		if !ok || !jsonEqual(va, vb) {
			return false
		}
	}
	return true
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}
