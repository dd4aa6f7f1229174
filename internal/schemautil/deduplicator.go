package schemautil

import (
	"github.com/erraggy/schemagen/element"
	"github.com/erraggy/schemagen/internal/naming"
)

// CompareFunc compares two elements for structural equivalence.
// It is injected so tests can substitute simpler comparisons.
type CompareFunc func(left, right *element.Element) bool

// Outcome describes what SchemaDeduplicator.Register did with an element.
type Outcome int

const (
	// Kept means the element is the first with its title, or has no title.
	Kept Outcome = iota
	// Replaced means an equivalent element with the same title was already
	// registered and should be used instead.
	Replaced
	// Renamed means the title was taken by a different shape, so the
	// element got a numeric suffix.
	Renamed
)

// SchemaDeduplicator disambiguates object elements that share a title.
//
// Elements are registered in discovery order. The first element with a
// title keeps it as its name. A later element equivalent to an earlier one
// is replaced by it; a later different element is named Title_1, Title_2,
// and so on.
type SchemaDeduplicator struct {
	hasher  *SchemaHasher
	compare CompareFunc
	byTitle map[string][]entry
	taken   map[string]bool

	// RemovedCount is the number of elements replaced by an earlier one.
	RemovedCount int
	// RenamedCount is the number of elements given a suffixed name.
	RenamedCount int
}

type entry struct {
	sum uint64
	el  *element.Element
}

// NewSchemaDeduplicator creates a SchemaDeduplicator. A nil compare uses
// element.Equal.
func NewSchemaDeduplicator(compare CompareFunc) *SchemaDeduplicator {
	if compare == nil {
		compare = element.Equal
	}
	return &SchemaDeduplicator{
		hasher:  NewSchemaHasher(),
		compare: compare,
		byTitle: make(map[string][]entry),
		taken:   make(map[string]bool),
	}
}

// Register records el and returns the element callers should use in its
// place. Renamed elements have their name changed in place.
func (d *SchemaDeduplicator) Register(el *element.Element) (*element.Element, Outcome) {
	title := el.Title()
	if title == "" {
		return el, Kept
	}
	sum := d.hasher.Hash(el)
	existing := d.byTitle[title]
	for _, e := range existing {
		if e.el == el {
			return el, Kept
		}
	}
	for _, e := range existing {
		// Same-hash candidates first; the hash never separates equal elements.
		if e.sum == sum && d.compare(e.el, el) {
			d.RemovedCount++
			return e.el, Replaced
		}
	}

	outcome := Kept
	name := title
	for n := 1; d.taken[name]; n++ {
		name = naming.WithSuffix(title, n)
		outcome = Renamed
	}
	if outcome == Renamed {
		el.SetName(name)
		d.RenamedCount++
	}
	d.taken[name] = true
	d.byTitle[title] = append(existing, entry{sum: sum, el: el})
	return el, outcome
}

// Names returns the names assigned to elements with the given title, in
// discovery order.
func (d *SchemaDeduplicator) Names(title string) []string {
	entries := d.byTitle[title]
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.el.Name()
	}
	return out
}
