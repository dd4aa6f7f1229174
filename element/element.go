package element

import (
	"maps"
	"regexp"
	"slices"

	"github.com/erraggy/schemagen/internal/naming"
)

// Keywords holds scalar keyword values: numbers, strings, booleans, lists,
// maps and nil (JSON null). Element-valued keywords are set through the
// dedicated setters instead.
type Keywords map[string]any

// Option configures an Element at construction.
type Option func(*Element)

// WithTitle sets the element's title. Object constructors take the title
// as a parameter; this option titles other kinds.
func WithTitle(title string) Option {
	return func(e *Element) {
		e.title = title
		e.name = title
	}
}

// WithFormats sets the format checkers used by the "format" keyword.
// Elements without formats use the built-in table.
func WithFormats(f Formats) Option {
	return func(e *Element) {
		e.formats = f
	}
}

// Element is a compiled schema node.
//
// Elements are immutable in shape once built, except that the setters
// exist so recursive graphs can be built in two phases: create the shell,
// register it, then attach children that may point back to it.
type Element struct {
	kind     Kind
	title    string
	name     string
	keywords Keywords
	pattern  *regexp.Regexp
	formats  Formats

	items           *Element
	tupleItems      []*Element
	tuple           bool
	additionalItems *Element
	contains        *Element

	properties           []*Property
	propertyIndex        map[string]*Property
	patternProperties    []*PatternProperty
	additionalProperties *Element
	propertyNames        *Element
	dependencies         []*Dependency

	members []*Element
}

func newElement(kind Kind, kw Keywords, opts []Option) *Element {
	e := &Element{kind: kind, keywords: make(Keywords, len(kw))}
	for k, v := range kw {
		if k == "title" {
			if s, ok := v.(string); ok {
				e.title, e.name = s, s
			}
			continue
		}
		if !kind.Accepts(k) {
			continue
		}
		switch k {
		case KwItems:
			switch items := v.(type) {
			case *Element:
				e.items = items
			case []*Element:
				e.tupleItems, e.tuple = items, true
			}
		case KwAdditionalItems:
			e.additionalItems, _ = v.(*Element)
		case KwContains:
			e.contains, _ = v.(*Element)
		case KwAdditionalProperties:
			e.additionalProperties, _ = v.(*Element)
		case KwPropertyNames:
			e.propertyNames, _ = v.(*Element)
		case KwProperties, KwPatternProperties, KwDependencies:
			// set through SetProperties, SetPatternProperties, SetDependencies
		case KwRequired:
			e.keywords[k] = stringList(v)
		default:
			e.keywords[k] = v
		}
	}
	if p, ok := e.keywords[KwPattern].(string); ok {
		// An invalid pattern never matches; the parser rejects such schemas
		// before they get here.
		e.pattern, _ = regexp.Compile(p)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewUntyped creates an element without a type. It accepts every keyword
// and any value type.
func NewUntyped(kw Keywords, opts ...Option) *Element {
	return newElement(KindUntyped, kw, opts)
}

// NewString creates a string element.
func NewString(kw Keywords, opts ...Option) *Element {
	return newElement(KindString, kw, opts)
}

// NewInteger creates an integer element.
func NewInteger(kw Keywords, opts ...Option) *Element {
	return newElement(KindInteger, kw, opts)
}

// NewNumber creates a number element.
func NewNumber(kw Keywords, opts ...Option) *Element {
	return newElement(KindNumber, kw, opts)
}

// NewBoolean creates a boolean element.
func NewBoolean(kw Keywords, opts ...Option) *Element {
	return newElement(KindBoolean, kw, opts)
}

// NewNull creates a null element.
func NewNull(kw Keywords, opts ...Option) *Element {
	return newElement(KindNull, kw, opts)
}

// NewTyped creates an element of a primitive or untyped kind. It returns
// nil for array, object and composition kinds, which need their own
// constructors.
func NewTyped(kind Kind, kw Keywords, opts ...Option) *Element {
	switch kind {
	case KindUntyped, KindString, KindInteger, KindNumber, KindBoolean, KindNull:
		return newElement(kind, kw, opts)
	}
	return nil
}

// NewArray creates an array element whose items all match items.
// A nil items accepts any item.
func NewArray(items *Element, kw Keywords, opts ...Option) *Element {
	e := newElement(KindArray, kw, opts)
	if items != nil {
		e.SetItems(items)
	}
	return e
}

// NewTuple creates an array element that matches items by position.
// Items past the end of the list are governed by "additionalItems".
func NewTuple(items []*Element, kw Keywords, opts ...Option) *Element {
	e := newElement(KindArray, kw, opts)
	e.SetTupleItems(items)
	return e
}

// NamedProperty declares one property for NewObject and SetProperties.
type NamedProperty struct {
	// Key is the JSON key of the property.
	Key string
	// Element validates the property's value.
	Element *Element
	// Required marks the property as required.
	Required bool
}

// NewObject creates an object element. Property keys are normalized into
// identifiers; the original key is kept as the property's Source.
func NewObject(title string, props []NamedProperty, kw Keywords, opts ...Option) *Element {
	e := newElement(KindObject, kw, opts)
	e.title, e.name = title, title
	e.SetProperties(props)
	return e
}

// NewAnyOf creates an element matching when at least one member matches.
func NewAnyOf(members []*Element, kw Keywords, opts ...Option) *Element {
	e := newElement(KindAnyOf, kw, opts)
	e.members = slices.Clone(members)
	return e
}

// NewOneOf creates an element matching when exactly one member matches.
func NewOneOf(members []*Element, kw Keywords, opts ...Option) *Element {
	e := newElement(KindOneOf, kw, opts)
	e.members = slices.Clone(members)
	return e
}

// NewAllOf creates an element matching when every member matches.
func NewAllOf(members []*Element, kw Keywords, opts ...Option) *Element {
	e := newElement(KindAllOf, kw, opts)
	e.members = slices.Clone(members)
	return e
}

// NewNot creates an element matching when member does not.
func NewNot(member *Element, kw Keywords, opts ...Option) *Element {
	e := newElement(KindNot, kw, opts)
	if member != nil {
		e.members = []*Element{member}
	}
	return e
}

// NewComposition creates an AnyOf, OneOf, AllOf or Not element.
// Not uses only the first member.
func NewComposition(kind Kind, members []*Element, kw Keywords, opts ...Option) *Element {
	switch kind {
	case KindAnyOf:
		return NewAnyOf(members, kw, opts...)
	case KindOneOf:
		return NewOneOf(members, kw, opts...)
	case KindAllOf:
		return NewAllOf(members, kw, opts...)
	case KindNot:
		var m *Element
		if len(members) > 0 {
			m = members[0]
		}
		return NewNot(m, kw, opts...)
	}
	return nil
}

// Anything returns an element that accepts every value: the schema `true`.
func Anything() *Element {
	return NewUntyped(nil)
}

// Nothing returns an element that rejects every value: the schema `false`.
func Nothing() *Element {
	return NewNot(Anything(), nil)
}

// IsAnything reports whether e carries no constraints at all.
func IsAnything(e *Element) bool {
	return e != nil && e.kind == KindUntyped && e.title == "" && len(e.keywords) == 0 &&
		e.items == nil && !e.tuple && e.additionalItems == nil && e.contains == nil &&
		len(e.properties) == 0 && len(e.patternProperties) == 0 &&
		e.additionalProperties == nil && e.propertyNames == nil && len(e.dependencies) == 0
}

// IsNothing reports whether e rejects every value.
func IsNothing(e *Element) bool {
	return e != nil && e.kind == KindNot && e.title == "" && len(e.keywords) == 0 &&
		len(e.members) == 1 && IsAnything(e.members[0])
}

// Kind returns the element's variant.
func (e *Element) Kind() Kind { return e.kind }

// Title returns the title given in the schema.
func (e *Element) Title() string { return e.title }

// Name returns the declaration name: the title, plus a numeric suffix when
// another object with the same title but a different shape exists.
func (e *Element) Name() string { return e.name }

// SetName changes the declaration name without touching the title.
func (e *Element) SetName(name string) { e.name = name }

// Description returns the "description" keyword, or "".
func (e *Element) Description() string {
	s, _ := e.keywords[KwDescription].(string)
	return s
}

// Keyword returns the value of a scalar keyword, or NotProvided.
func (e *Element) Keyword(name string) any {
	if v, ok := e.keywords[name]; ok {
		return v
	}
	return NotProvided
}

// Keywords returns a copy of the scalar keywords.
func (e *Element) Keywords() Keywords {
	return maps.Clone(e.keywords)
}

// Default returns the "default" keyword.
func (e *Element) Default() (any, bool) {
	v, ok := e.keywords[KwDefault]
	return v, ok
}

// Has reports whether keyword name is present, scalar or element-valued.
func (e *Element) Has(name string) bool {
	switch name {
	case KwItems:
		return e.items != nil || e.tuple
	case KwAdditionalItems:
		return e.additionalItems != nil
	case KwContains:
		return e.contains != nil
	case KwProperties:
		return len(e.properties) > 0
	case KwPatternProperties:
		return len(e.patternProperties) > 0
	case KwAdditionalProperties:
		return e.additionalProperties != nil
	case KwPropertyNames:
		return e.propertyNames != nil
	case KwDependencies:
		return len(e.dependencies) > 0
	case KwRequired:
		return len(e.Required()) > 0
	}
	_, ok := e.keywords[name]
	return ok
}

// Formats returns the format checkers used by this element.
func (e *Element) Formats() Formats {
	if e.formats == nil {
		return builtinFormats
	}
	return e.formats
}

// Items returns the homogeneous item element, or nil.
func (e *Element) Items() *Element { return e.items }

// TupleItems returns the positional item elements of a tuple array.
func (e *Element) TupleItems() []*Element { return e.tupleItems }

// IsTuple reports whether "items" was given as a list.
func (e *Element) IsTuple() bool { return e.tuple }

// AdditionalItems returns the element for items past a tuple, or nil.
func (e *Element) AdditionalItems() *Element { return e.additionalItems }

// Contains returns the "contains" element, or nil.
func (e *Element) Contains() *Element { return e.contains }

// Properties returns the declared properties in declaration order.
func (e *Element) Properties() []*Property { return e.properties }

// Property returns the property with the given normalized name.
func (e *Element) Property(name string) *Property { return e.propertyIndex[name] }

// PropertyBySource returns the property declared under JSON key source.
func (e *Element) PropertyBySource(source string) *Property {
	for _, p := range e.properties {
		if p.Source == source {
			return p
		}
	}
	return nil
}

// PatternProperties returns the pattern properties in declaration order.
func (e *Element) PatternProperties() []*PatternProperty { return e.patternProperties }

// AdditionalProperties returns the element for undeclared keys, or nil.
func (e *Element) AdditionalProperties() *Element { return e.additionalProperties }

// PropertyNames returns the "propertyNames" element, or nil.
func (e *Element) PropertyNames() *Element { return e.propertyNames }

// Dependencies returns the dependencies in declaration order.
func (e *Element) Dependencies() []*Dependency { return e.dependencies }

// Members returns the members of a composition.
func (e *Element) Members() []*Element { return e.members }

// Required returns the JSON keys that must be present: the "required"
// keyword plus every property flagged Required.
func (e *Element) Required() []string {
	explicit, _ := e.keywords[KwRequired].([]string)
	out := slices.Clone(explicit)
	for _, p := range e.properties {
		if p.Required && !slices.Contains(out, p.Source) {
			out = append(out, p.Source)
		}
	}
	return out
}

// SetItems sets a homogeneous item element.
func (e *Element) SetItems(items *Element) {
	if !e.kind.Accepts(KwItems) {
		return
	}
	e.items, e.tupleItems, e.tuple = items, nil, false
}

// SetTupleItems sets positional item elements.
func (e *Element) SetTupleItems(items []*Element) {
	if !e.kind.Accepts(KwItems) {
		return
	}
	e.items, e.tupleItems, e.tuple = nil, slices.Clone(items), true
}

// SetAdditionalItems sets the element for items past a tuple.
func (e *Element) SetAdditionalItems(el *Element) {
	if e.kind.Accepts(KwAdditionalItems) {
		e.additionalItems = el
	}
}

// SetContains sets the "contains" element.
func (e *Element) SetContains(el *Element) {
	if e.kind.Accepts(KwContains) {
		e.contains = el
	}
}

// SetProperties replaces the declared properties. Keys are normalized;
// normalized names that collide get _1, _2, ... suffixes in order.
func (e *Element) SetProperties(props []NamedProperty) {
	if !e.kind.Accepts(KwProperties) {
		return
	}
	e.properties = make([]*Property, 0, len(props))
	e.propertyIndex = make(map[string]*Property, len(props))
	required, _ := e.keywords[KwRequired].([]string)
	for _, np := range props {
		base := naming.PropertyName(np.Key)
		name := base
		for n := 1; e.propertyIndex[name] != nil; n++ {
			name = naming.WithSuffix(base, n)
		}
		p := &Property{
			Name:     name,
			Source:   np.Key,
			Required: np.Required || slices.Contains(required, np.Key),
			Element:  np.Element,
			parent:   e,
		}
		e.properties = append(e.properties, p)
		e.propertyIndex[name] = p
	}
}

// SetPatternProperties replaces the pattern properties.
func (e *Element) SetPatternProperties(pps []*PatternProperty) {
	if e.kind.Accepts(KwPatternProperties) {
		e.patternProperties = slices.Clone(pps)
	}
}

// SetAdditionalProperties sets the element for undeclared keys.
func (e *Element) SetAdditionalProperties(el *Element) {
	if e.kind.Accepts(KwAdditionalProperties) {
		e.additionalProperties = el
	}
}

// SetPropertyNames sets the "propertyNames" element.
func (e *Element) SetPropertyNames(el *Element) {
	if e.kind.Accepts(KwPropertyNames) {
		e.propertyNames = el
	}
}

// SetDependencies replaces the dependencies.
func (e *Element) SetDependencies(deps []*Dependency) {
	if e.kind.Accepts(KwDependencies) {
		e.dependencies = slices.Clone(deps)
	}
}

// SetMembers replaces the members of a composition. Not keeps only the
// first member.
func (e *Element) SetMembers(members []*Element) {
	switch {
	case !e.kind.IsComposition():
		return
	case e.kind == KindNot && len(members) > 1:
		members = members[:1]
	}
	e.members = slices.Clone(members)
}

// String describes the element for messages: its name when it has one,
// otherwise its kind.
func (e *Element) String() string {
	switch {
	case e == nil:
		return "<nil>"
	case IsAnything(e):
		return "Element"
	case IsNothing(e):
		return "Not(Element)"
	case e.name != "":
		return e.name
	}
	return e.kind.String()
}

// stringList converts a "required"-style value into []string, dropping
// non-string entries.
func stringList(v any) []string {
	switch t := v.(type) {
	case []string:
		return slices.Clone(t)
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
