package parser

import (
	"maps"
	"slices"

	"github.com/erraggy/schemagen/document"
	"github.com/erraggy/schemagen/element"
	"github.com/erraggy/schemagen/internal/schemautil"
)

// TitleFunc names an object schema that has no title. It receives the
// JSON pointer of the schema ("#/properties/owner") and returns the title,
// or "" to leave the schema untitled.
type TitleFunc func(pointer string) string

// State is the per-parse memo of elements built so far.
//
// It maps each raw schema node, by identity, to its element. The element is
// registered before its children are parsed, so a node that contains itself
// resolves to the element under construction instead of recursing forever.
// Structurally equal nodes are never merged by this map; only objects that
// share a title are reconciled, through the deduplicator, once the graph is
// complete.
//
// A State must not be shared between unrelated documents or goroutines.
type State struct {
	elements map[*document.Map]*element.Element
	objects  []*element.Element
	settled  int
	replaced map[*element.Element]*element.Element
	dedup    *schemautil.SchemaDeduplicator
	formats  element.Formats
	titles   TitleFunc
	logger   Logger
}

// NewState creates an empty State using the built-in formats and no
// title function.
func NewState() *State {
	return &State{
		elements: make(map[*document.Map]*element.Element),
		replaced: make(map[*element.Element]*element.Element),
		dedup:    schemautil.NewSchemaDeduplicator(element.Equal),
		logger:   NopLogger{},
	}
}

// Lookup returns the element built for node, if any.
func (s *State) Lookup(node *document.Map) (*element.Element, bool) {
	el, ok := s.elements[node]
	return el, ok
}

// Len returns the number of nodes parsed so far.
func (s *State) Len() int { return len(s.elements) }

// Renamed returns how many objects got a suffixed name.
func (s *State) Renamed() int { return s.dedup.RenamedCount }

// Deduplicated returns how many objects were replaced by an equal one.
func (s *State) Deduplicated() int { return s.dedup.RemovedCount }

func (s *State) register(node *document.Map, el *element.Element) {
	s.elements[node] = el
}

func (s *State) elementOptions() []element.Option {
	if s.formats == nil {
		return nil
	}
	return []element.Option{element.WithFormats(s.formats)}
}

// track records a new object element for reconcile, in discovery order.
func (s *State) track(el *element.Element) {
	if el.Kind() == element.KindObject {
		s.objects = append(s.objects, el)
	}
}

// reconcile runs the objects tracked since the last call through the
// deduplicator. It runs once the graph below roots is complete, so equality
// sees finished objects even on cycles. Replaced objects are swapped for
// their canonical element in every element reachable from roots or known
// to the State.
func (s *State) reconcile(roots ...*element.Element) {
	pending := s.objects[s.settled:]
	s.settled = len(s.objects)
	added := false
	for _, el := range pending {
		canonical, outcome := s.dedup.Register(el)
		switch outcome {
		case schemautil.Replaced:
			s.replaced[el] = canonical
			added = true
			s.logger.Debug("replaced duplicate object", "title", el.Title())
		case schemautil.Renamed:
			s.logger.Debug("renamed object with duplicate title", "title", el.Title(), "name", el.Name())
		}
	}
	if !added {
		return
	}

	known := slices.Collect(maps.Values(s.elements))
	element.Walk(func(el *element.Element) bool {
		el.ReplaceChildren(s.replaced)
		return true
	}, append(slices.Clone(roots), known...)...)
	for node, el := range s.elements {
		s.elements[node] = s.canonical(el)
	}
}

// canonical returns the element that replaced el, or el itself.
func (s *State) canonical(el *element.Element) *element.Element {
	if to, ok := s.replaced[el]; ok {
		return to
	}
	return el
}
