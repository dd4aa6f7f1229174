package parser

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"

	"github.com/erraggy/schemagen/document"
	"github.com/erraggy/schemagen/element"
	"github.com/erraggy/schemagen/internal/pathutil"
	"github.com/erraggy/schemagen/internal/schemautil"
	"github.com/erraggy/schemagen/schemaerrors"
)

// compositions lists the composition keywords in the order their elements
// are built.
var compositions = []struct {
	key  string
	kind element.Kind
}{
	{"anyOf", element.KindAnyOf},
	{"oneOf", element.KindOneOf},
	{"allOf", element.KindAllOf},
	{"not", element.KindNot},
}

// childKeywords hold nested schemas; they are parsed into child elements
// and never copied as scalar keywords.
var childKeywords = map[string]bool{
	element.KwItems:                true,
	element.KwAdditionalItems:      true,
	element.KwContains:             true,
	element.KwProperties:           true,
	element.KwPatternProperties:    true,
	element.KwAdditionalProperties: true,
	element.KwPropertyNames:        true,
	element.KwDependencies:         true,
}

// outerKeywords belong to the outermost element when a schema is split into
// several elements (a type list, or a type next to a composition).
var outerKeywords = map[string]bool{
	element.KwDefault:     true,
	element.KwConst:       true,
	element.KwEnum:        true,
	element.KwDescription: true,
}

// ParseElement compiles one dereferenced schema node into an element. The
// node is a *document.Map, a map[string]any or a bool. A nil state starts a
// fresh one; pass the same state to parse several nodes of one document.
func ParseElement(node any, state *State) (*element.Element, error) {
	if state == nil {
		state = NewState()
	}
	if m, ok := node.(map[string]any); ok {
		node = document.FromGo(m)
	}
	b := &builder{state: state}
	el, err := b.parse(node, nil)
	if err != nil {
		return nil, err
	}
	state.reconcile(el)
	return state.canonical(el), nil
}

type builder struct {
	state *State
}

func (b *builder) parse(node any, ptr []string) (*element.Element, error) {
	switch n := node.(type) {
	case bool:
		if n {
			return element.Anything(), nil
		}
		return element.Nothing(), nil
	case *document.Map:
		return b.parseMap(n, ptr)
	}
	return nil, b.parseError(node, ptr, "schema must be an object or a boolean", nil)
}

func (b *builder) parseMap(m *document.Map, ptr []string) (*element.Element, error) {
	if el, ok := b.state.Lookup(m); ok {
		return el, nil
	}
	if ref, ok := refOf(m); ok {
		return nil, b.parseError(m, ptr, fmt.Sprintf("unresolved $ref %q", ref), nil)
	}
	types, err := b.types(m, ptr)
	if err != nil {
		return nil, err
	}
	if !hasComposition(m) {
		return b.parseBase(m, types, ptr, true)
	}
	return b.parseComposed(m, types, ptr)
}

// types returns the validated "type" list of m.
func (b *builder) types(m *document.Map, ptr []string) ([]element.Kind, error) {
	raw, ok := m.Get("type")
	if !ok {
		return nil, nil
	}
	names := schemautil.GetSchemaTypes(m)
	if len(names) == 0 {
		return nil, b.parseError(m, ptr, fmt.Sprintf("invalid type %s", render(raw)), nil)
	}
	kinds := make([]element.Kind, 0, len(names))
	for _, name := range names {
		kind, ok := element.KindForType(name)
		if !ok {
			return nil, b.parseError(m, ptr, fmt.Sprintf("unknown type %q", name), nil)
		}
		if !slices.Contains(kinds, kind) {
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}

func hasComposition(m *document.Map) bool {
	for _, c := range compositions {
		if m.Has(c.key) {
			return true
		}
	}
	return false
}

// hasConstraints reports whether m has keywords that need an element of
// their own next to a composition.
func hasConstraints(m *document.Map) bool {
	for _, k := range m.Keys() {
		if outerKeywords[k] {
			continue
		}
		if element.KindUntyped.Accepts(k) {
			return true
		}
	}
	return false
}

// parseBase builds the element for m ignoring composition keywords.
func (b *builder) parseBase(m *document.Map, kinds []element.Kind, ptr []string, outer bool) (*element.Element, error) {
	switch len(kinds) {
	case 0:
		return b.parseTyped(m, element.KindUntyped, ptr, outer, outer)
	case 1:
		return b.parseTyped(m, kinds[0], ptr, outer, outer)
	}

	// A type list is an AnyOf over one element per type.
	union := element.NewAnyOf(nil, b.keywords(m, element.KindAnyOf, outer), b.options(m, outer)...)
	if outer {
		b.state.register(m, union)
	}
	members := make([]*element.Element, 0, len(kinds))
	for _, kind := range kinds {
		el, err := b.parseTyped(m, kind, ptr, false, false)
		if err != nil {
			return nil, err
		}
		members = append(members, el)
	}
	union.SetMembers(members)
	return union, nil
}

// parseComposed builds the element for a schema with composition keywords.
// Anything next to a single composition (a type, or constraints such as
// "required") turns it into AllOf(base, composition...).
func (b *builder) parseComposed(m *document.Map, kinds []element.Kind, ptr []string) (*element.Element, error) {
	var present []int
	for i, c := range compositions {
		if m.Has(c.key) {
			present = append(present, i)
		}
	}
	hasBase := len(kinds) > 0 || hasConstraints(m)

	if !hasBase && len(present) == 1 {
		c := compositions[present[0]]
		el := element.NewComposition(c.kind, nil, b.keywords(m, c.kind, true), b.options(m, true)...)
		b.state.register(m, el)
		members, err := b.members(m, c.key, ptr)
		if err != nil {
			return nil, err
		}
		el.SetMembers(members)
		return el, nil
	}

	all := element.NewAllOf(nil, b.keywords(m, element.KindAllOf, true), b.options(m, true)...)
	b.state.register(m, all)
	var parts []*element.Element
	if hasBase {
		base, err := b.parseBase(m, kinds, ptr, false)
		if err != nil {
			return nil, err
		}
		parts = append(parts, base)
	}
	for _, i := range present {
		c := compositions[i]
		members, err := b.members(m, c.key, ptr)
		if err != nil {
			return nil, err
		}
		el := element.NewComposition(c.kind, members, nil, b.state.elementOptions()...)
		parts = append(parts, el)
	}
	all.SetMembers(parts)
	return all, nil
}

// members parses the subschemas of one composition keyword.
func (b *builder) members(m *document.Map, key string, ptr []string) ([]*element.Element, error) {
	raw, _ := m.Get(key)
	if key == "not" {
		el, err := b.parse(raw, at(ptr, key))
		if err != nil {
			return nil, err
		}
		return []*element.Element{el}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, b.parseError(m, ptr, fmt.Sprintf("%s must be a list of schemas", key), nil)
	}
	out := make([]*element.Element, 0, len(list))
	for i, item := range list {
		el, err := b.parse(item, at(ptr, key, fmt.Sprint(i)))
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}

// parseTyped builds a single-kind element for m. register records it as
// the element of m; outer gives it the outer keywords and the title.
func (b *builder) parseTyped(m *document.Map, kind element.Kind, ptr []string, register, outer bool) (*element.Element, error) {
	kw := b.keywords(m, kind, outer)
	if err := b.checkPattern(m, kw, ptr); err != nil {
		return nil, err
	}

	var el *element.Element
	switch kind {
	case element.KindObject:
		title, err := b.title(m, ptr)
		if err != nil {
			return nil, err
		}
		el = element.NewObject(title, nil, kw, b.state.elementOptions()...)
	case element.KindArray:
		el = element.NewArray(nil, kw, b.options(m, outer)...)
	default:
		el = element.NewTyped(kind, kw, b.options(m, outer)...)
	}
	if register {
		b.state.register(m, el)
	}
	b.state.track(el)

	if kind == element.KindArray || kind == element.KindUntyped {
		if err := b.fillArray(el, m, ptr); err != nil {
			return nil, err
		}
	}
	if kind == element.KindObject || kind == element.KindUntyped {
		if err := b.fillObject(el, m, ptr); err != nil {
			return nil, err
		}
	}
	return el, nil
}

// title returns the mandatory title of an object schema.
func (b *builder) title(m *document.Map, ptr []string) (string, error) {
	if raw, ok := m.Get("title"); ok {
		if s, ok := raw.(string); ok && s != "" {
			return s, nil
		}
	}
	if b.state.titles != nil {
		if s := b.state.titles(pathutil.JoinRef(ptr...)); s != "" {
			return s, nil
		}
	}
	return "", b.parseError(m, ptr, "object schema requires a title", nil)
}

// options returns element options, adding the schema title for outer
// elements.
func (b *builder) options(m *document.Map, outer bool) []element.Option {
	opts := b.state.elementOptions()
	if !outer {
		return opts
	}
	if raw, ok := m.Get("title"); ok {
		if s, ok := raw.(string); ok && s != "" {
			opts = append(opts, element.WithTitle(s))
		}
	}
	return opts
}

// keywords collects the scalar keywords of m that kind accepts. Draft 4
// boolean exclusiveMinimum/exclusiveMaximum are rewritten to the numeric
// form.
func (b *builder) keywords(m *document.Map, kind element.Kind, outer bool) element.Keywords {
	kw := make(element.Keywords)
	for k, v := range m.All() {
		if childKeywords[k] || (!outer && outerKeywords[k]) || !kind.Accepts(k) {
			continue
		}
		kw[k] = v
	}
	for _, pair := range [][2]string{
		{element.KwExclusiveMinimum, element.KwMinimum},
		{element.KwExclusiveMaximum, element.KwMaximum},
	} {
		flag, ok := kw[pair[0]].(bool)
		if !ok {
			continue
		}
		delete(kw, pair[0])
		if bound, has := kw[pair[1]]; flag && has {
			kw[pair[0]] = bound
			delete(kw, pair[1])
		}
	}
	return kw
}

// checkPattern rejects patterns Go's regexp package cannot compile. JSON
// Schema patterns use ECMA 262 syntax; lookarounds and backreferences have
// no RE2 equivalent.
func (b *builder) checkPattern(m *document.Map, kw element.Keywords, ptr []string) error {
	p, ok := kw[element.KwPattern].(string)
	if !ok {
		return nil
	}
	if _, err := regexp.Compile(p); err != nil {
		return &schemaerrors.NotImplementedError{
			Feature: "regular expression syntax",
			Detail:  fmt.Sprintf("%q at %s", p, pathutil.JoinRef(ptr...)),
		}
	}
	return nil
}

func (b *builder) fillArray(el *element.Element, m *document.Map, ptr []string) error {
	if raw, ok := m.Get(element.KwItems); ok {
		if list, isList := raw.([]any); isList {
			items := make([]*element.Element, 0, len(list))
			for i, item := range list {
				child, err := b.parse(item, at(ptr, element.KwItems, fmt.Sprint(i)))
				if err != nil {
					return err
				}
				items = append(items, child)
			}
			el.SetTupleItems(items)
		} else {
			child, err := b.parse(raw, at(ptr, element.KwItems))
			if err != nil {
				return err
			}
			el.SetItems(child)
		}
	}
	if raw, ok := m.Get(element.KwAdditionalItems); ok {
		child, err := b.parse(raw, at(ptr, element.KwAdditionalItems))
		if err != nil {
			return err
		}
		el.SetAdditionalItems(child)
	}
	if raw, ok := m.Get(element.KwContains); ok {
		child, err := b.parse(raw, at(ptr, element.KwContains))
		if err != nil {
			return err
		}
		el.SetContains(child)
	}
	return nil
}

func (b *builder) fillObject(el *element.Element, m *document.Map, ptr []string) error {
	if props, err := b.namedSchemas(m, element.KwProperties, ptr); err != nil {
		return err
	} else if props != nil {
		declared := make([]element.NamedProperty, 0, props.Len())
		for key, raw := range props.All() {
			child, err := b.parse(raw, at(ptr, element.KwProperties, key))
			if err != nil {
				return err
			}
			declared = append(declared, element.NamedProperty{Key: key, Element: child})
		}
		el.SetProperties(declared)
	}

	if patterns, err := b.namedSchemas(m, element.KwPatternProperties, ptr); err != nil {
		return err
	} else if patterns != nil {
		pps := make([]*element.PatternProperty, 0, patterns.Len())
		for pattern, raw := range patterns.All() {
			child, err := b.parse(raw, at(ptr, element.KwPatternProperties, pattern))
			if err != nil {
				return err
			}
			pp, err := element.NewPatternProperty(pattern, child)
			if err != nil {
				return &schemaerrors.NotImplementedError{
					Feature: "regular expression syntax",
					Detail:  fmt.Sprintf("%q at %s", pattern, pathutil.JoinRef(at(ptr, element.KwPatternProperties)...)),
				}
			}
			pps = append(pps, pp)
		}
		el.SetPatternProperties(pps)
	}

	if raw, ok := m.Get(element.KwAdditionalProperties); ok {
		child, err := b.parse(raw, at(ptr, element.KwAdditionalProperties))
		if err != nil {
			return err
		}
		el.SetAdditionalProperties(child)
	}
	if raw, ok := m.Get(element.KwPropertyNames); ok {
		child, err := b.parse(raw, at(ptr, element.KwPropertyNames))
		if err != nil {
			return err
		}
		el.SetPropertyNames(child)
	}

	if deps, err := b.namedSchemas(m, element.KwDependencies, ptr); err != nil {
		return err
	} else if deps != nil {
		out := make([]*element.Dependency, 0, deps.Len())
		for name, raw := range deps.All() {
			dep := &element.Dependency{Name: name}
			if list, isList := raw.([]any); isList {
				for _, item := range list {
					s, isString := item.(string)
					if !isString {
						return b.parseError(m, at(ptr, element.KwDependencies, name), "dependency list must contain property names", nil)
					}
					dep.Required = append(dep.Required, s)
				}
			} else {
				child, err := b.parse(raw, at(ptr, element.KwDependencies, name))
				if err != nil {
					return err
				}
				dep.Element = child
			}
			out = append(out, dep)
		}
		el.SetDependencies(out)
	}
	return nil
}

// namedSchemas returns the name-to-schema map under key, or nil when absent.
func (b *builder) namedSchemas(m *document.Map, key string, ptr []string) (*document.Map, error) {
	raw, ok := m.Get(key)
	if !ok {
		return nil, nil
	}
	named, ok := raw.(*document.Map)
	if !ok {
		return nil, b.parseError(m, ptr, key+" must be an object", nil)
	}
	return named, nil
}

func (b *builder) parseError(node any, ptr []string, msg string, cause error) error {
	return &schemaerrors.ParseError{
		Pointer:  pathutil.JoinRef(ptr...),
		Fragment: render(node),
		Message:  msg,
		Cause:    cause,
	}
}

// at returns ptr extended by segs without aliasing ptr.
func at(ptr []string, segs ...string) []string {
	out := make([]string, 0, len(ptr)+len(segs))
	out = append(out, ptr...)
	return append(out, segs...)
}

// maxFragment bounds the rendered size of a schema fragment in errors.
const maxFragment = 120

// render summarizes a schema fragment for error messages. Only the top
// level is shown, so cyclic documents render safely.
func render(v any) string {
	var s string
	switch t := v.(type) {
	case *document.Map:
		parts := make([]string, 0, t.Len())
		for k, val := range t.All() {
			parts = append(parts, fmt.Sprintf("%q: %s", k, shallow(val)))
		}
		s = "{" + strings.Join(parts, ", ") + "}"
	default:
		s = shallow(v)
	}
	if utf8.RuneCountInString(s) > maxFragment {
		s = string([]rune(s)[:maxFragment-3]) + "..."
	}
	return s
}

func shallow(v any) string {
	switch v.(type) {
	case *document.Map:
		return "{...}"
	case []any:
		return "[...]"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
