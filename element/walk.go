package element

// Children returns the elements e refers to directly, in a fixed order:
// items, additional items, contains, properties, pattern properties,
// additional properties, property names, dependencies, members.
func (e *Element) Children() []*Element {
	var out []*Element
	add := func(el *Element) {
		if el != nil {
			out = append(out, el)
		}
	}
	add(e.items)
	for _, el := range e.tupleItems {
		add(el)
	}
	add(e.additionalItems)
	add(e.contains)
	for _, p := range e.properties {
		add(p.Element)
	}
	for _, pp := range e.patternProperties {
		add(pp.Element)
	}
	add(e.additionalProperties)
	add(e.propertyNames)
	for _, d := range e.dependencies {
		add(d.Element)
	}
	for _, m := range e.members {
		add(m)
	}
	return out
}

// Walk visits every element reachable from roots once, depth first in
// Children order, parents before children. Returning false from fn skips
// the element's children.
func Walk(fn func(*Element) bool, roots ...*Element) {
	seen := make(map[*Element]bool)
	var visit func(*Element)
	visit = func(e *Element) {
		if e == nil || seen[e] {
			return
		}
		seen[e] = true
		if !fn(e) {
			return
		}
		for _, c := range e.Children() {
			visit(c)
		}
	}
	for _, r := range roots {
		visit(r)
	}
}

// ReplaceChildren swaps every direct child of e found in repl for its
// mapped element. Children not in repl are left alone.
func (e *Element) ReplaceChildren(repl map[*Element]*Element) {
	swap := func(el **Element) {
		if to, ok := repl[*el]; ok {
			*el = to
		}
	}
	swap(&e.items)
	for i := range e.tupleItems {
		swap(&e.tupleItems[i])
	}
	swap(&e.additionalItems)
	swap(&e.contains)
	for _, p := range e.properties {
		swap(&p.Element)
	}
	for _, pp := range e.patternProperties {
		swap(&pp.Element)
	}
	swap(&e.additionalProperties)
	swap(&e.propertyNames)
	for _, d := range e.dependencies {
		swap(&d.Element)
	}
	for i := range e.members {
		swap(&e.members[i])
	}
}
