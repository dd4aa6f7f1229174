package orderer

import (
	"maps"
	"slices"
	"strings"

	"github.com/erraggy/schemagen/element"
	"github.com/erraggy/schemagen/schemaerrors"
)

// classDef is an object element and the names of the objects it needs
// declared first.
type classDef struct {
	element *element.Element
	deps    map[string]bool
}

// Objects returns the object elements reachable from roots, in discovery
// order. Objects sharing a name are reported once; the first one wins.
func Objects(roots ...*element.Element) []*element.Element {
	var out []*element.Element
	seen := make(map[string]bool)
	element.Walk(func(e *element.Element) bool {
		if e.Kind() == element.KindObject && !seen[e.Name()] {
			seen[e.Name()] = true
			out = append(out, e)
		}
		return true
	}, roots...)
	return out
}

// Dependencies returns the names of the objects obj refers to without
// passing through another object: through properties, items, composition
// members, pattern and additional properties, property names and
// dependency schemas. A self-reference is included.
func Dependencies(obj *element.Element) []string {
	deps := dependencies(obj)
	names := slices.Collect(maps.Keys(deps))
	slices.Sort(names)
	return names
}

func dependencies(obj *element.Element) map[string]bool {
	deps := make(map[string]bool)
	seen := make(map[*element.Element]bool)
	var visit func(*element.Element)
	visit = func(e *element.Element) {
		if seen[e] {
			return
		}
		seen[e] = true
		if e.Kind() == element.KindObject {
			deps[e.Name()] = true
			return
		}
		for _, c := range e.Children() {
			visit(c)
		}
	}
	for _, c := range obj.Children() {
		visit(c)
	}
	return deps
}

// Order returns the object elements reachable from roots so that every
// object comes after the objects it depends on.
//
// An object that refers to itself is tolerated. A cycle through two or
// more distinct objects fails with a *schemaerrors.ParseError. Among
// objects that are ready at the same time, the one discovered first is
// emitted first, so the result is stable for a given input.
func Order(roots ...*element.Element) ([]*element.Element, error) {
	objects := Objects(roots...)
	defs := make([]*classDef, len(objects))
	for i, obj := range objects {
		deps := dependencies(obj)
		delete(deps, obj.Name())
		defs[i] = &classDef{element: obj, deps: deps}
	}

	out := make([]*element.Element, 0, len(defs))
	for len(defs) > 0 {
		i := slices.IndexFunc(defs, func(d *classDef) bool { return len(d.deps) == 0 })
		if i < 0 {
			return nil, cycleError(defs)
		}
		ready := defs[i]
		defs = slices.Delete(defs, i, i+1)
		for _, d := range defs {
			delete(d.deps, ready.element.Name())
		}
		out = append(out, ready.element)
	}
	return out, nil
}

// cycleError describes the objects left when no object is ready.
func cycleError(defs []*classDef) error {
	parts := make([]string, 0, len(defs))
	for _, d := range defs {
		deps := slices.Collect(maps.Keys(d.deps))
		slices.Sort(deps)
		parts = append(parts, d.element.Name()+" -> "+strings.Join(deps, ", "))
	}
	return &schemaerrors.ParseError{
		Message:  "unresolvable declaration tree",
		Fragment: strings.Join(parts, "; "),
	}
}
