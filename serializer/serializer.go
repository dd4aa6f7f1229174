package serializer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemagen/document"
	"github.com/erraggy/schemagen/element"
	"github.com/erraggy/schemagen/internal/pathutil"
	"github.com/erraggy/schemagen/orderer"
	"github.com/erraggy/schemagen/schemaerrors"
)

// SchemaURI is the "$schema" written at the top of every document. Draft 7
// still has "definitions", "dependencies" and "additionalItems".
const SchemaURI = "http://json-schema.org/draft-07/schema#"

// Serialize renders elements as one JSON Schema document.
//
// The first element is the document root and is always written inline;
// references back to it are written as {"$ref": "#"}. Every other object
// element reachable from the elements is declared once under "definitions",
// keyed by its name, and referenced with "$ref". Declarations follow
// orderer.Order, or discovery order when objects refer to each other in a
// cycle.
func Serialize(elements ...*element.Element) (*document.Map, error) {
	if len(elements) == 0 || elements[0] == nil {
		return nil, errors.New("serializer: no root element")
	}
	root := elements[0]

	objects, err := orderer.Order(elements...)
	if err != nil {
		objects = orderer.Objects(elements...)
	}

	s := &serializer{root: root, stack: make(map[*element.Element]bool)}
	doc := document.NewMap("$schema", SchemaURI)
	body, err := s.inline(root)
	if err != nil {
		return nil, err
	}
	for k, v := range body.All() {
		doc.Set(k, v)
	}

	defs := document.NewMap()
	for _, obj := range objects {
		if obj == root {
			continue
		}
		body, err := s.body(obj)
		if err != nil {
			return nil, err
		}
		defs.Set(obj.Name(), body)
	}
	if defs.Len() > 0 {
		doc.Set("definitions", defs)
	}
	return doc, nil
}

// MarshalJSON serializes elements and encodes the document as indented
// JSON.
func MarshalJSON(elements ...*element.Element) ([]byte, error) {
	doc, err := Serialize(elements...)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializer: failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// MarshalYAML serializes elements and encodes the document as YAML.
func MarshalYAML(elements ...*element.Element) ([]byte, error) {
	doc, err := Serialize(elements...)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("serializer: failed to encode YAML: %w", err)
	}
	return data, nil
}

type serializer struct {
	root *element.Element
	// stack holds the non-object elements being written, to catch cycles
	stack map[*element.Element]bool
}

// inline writes the root element's body. Boolean schemas become the
// equivalent objects.
func (s *serializer) inline(e *element.Element) (*document.Map, error) {
	switch {
	case element.IsAnything(e):
		return document.NewMap(), nil
	case element.IsNothing(e):
		return document.NewMap("not", document.NewMap()), nil
	}
	s.stack[e] = true
	defer delete(s.stack, e)
	return s.body(e)
}

// schema returns the value written where e is used: a reference for the
// root and for objects, a boolean for the trivial schemas, otherwise e's
// body.
func (s *serializer) schema(e *element.Element) (any, error) {
	switch {
	case e == nil:
		return true, nil
	case e == s.root:
		return document.NewMap("$ref", "#"), nil
	case e.Kind() == element.KindObject:
		return document.NewMap("$ref", pathutil.DefinitionRef(e.Name())), nil
	case element.IsAnything(e):
		return true, nil
	case element.IsNothing(e):
		return false, nil
	case s.stack[e]:
		return nil, &schemaerrors.NotImplementedError{
			Feature: "recursive non-object schemas",
			Detail:  e.String(),
		}
	}
	s.stack[e] = true
	defer delete(s.stack, e)
	return s.body(e)
}

func (s *serializer) schemas(els []*element.Element) ([]any, error) {
	out := make([]any, 0, len(els))
	for _, el := range els {
		v, err := s.schema(el)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// body writes e's own keywords and children.
func (s *serializer) body(e *element.Element) (*document.Map, error) {
	m := document.NewMap()
	if e.Title() != "" {
		m.Set("title", e.Title())
	}
	if t := e.Kind().TypeName(); t != "" {
		m.Set("type", t)
	}
	kw := e.Keywords()
	names := make([]string, 0, len(kw))
	for k := range kw {
		if k != element.KwRequired {
			names = append(names, k)
		}
	}
	slices.Sort(names)
	for _, k := range names {
		m.Set(k, kw[k])
	}

	var err error
	switch e.Kind() {
	case element.KindArray:
		err = s.arrayChildren(e, m)
	case element.KindObject:
		err = s.objectChildren(e, m)
	case element.KindUntyped:
		if err = s.arrayChildren(e, m); err == nil {
			err = s.objectChildren(e, m)
		}
	case element.KindAnyOf, element.KindOneOf, element.KindAllOf:
		var members []any
		if members, err = s.schemas(e.Members()); err == nil {
			m.Set(compositionKey(e.Kind()), members)
		}
	case element.KindNot:
		if len(e.Members()) > 0 {
			var member any
			if member, err = s.schema(e.Members()[0]); err == nil {
				m.Set("not", member)
			}
		}
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func compositionKey(k element.Kind) string {
	switch k {
	case element.KindAnyOf:
		return "anyOf"
	case element.KindOneOf:
		return "oneOf"
	}
	return "allOf"
}

func (s *serializer) arrayChildren(e *element.Element, m *document.Map) error {
	if e.IsTuple() {
		items, err := s.schemas(e.TupleItems())
		if err != nil {
			return err
		}
		m.Set(element.KwItems, items)
	} else if e.Items() != nil {
		if err := s.set(m, element.KwItems, e.Items()); err != nil {
			return err
		}
	}
	if err := s.set(m, element.KwAdditionalItems, e.AdditionalItems()); err != nil {
		return err
	}
	return s.set(m, element.KwContains, e.Contains())
}

func (s *serializer) objectChildren(e *element.Element, m *document.Map) error {
	if props := e.Properties(); len(props) > 0 {
		pm := document.NewMap()
		for _, p := range props {
			v, err := s.schema(p.Element)
			if err != nil {
				return err
			}
			pm.Set(p.Source, v)
		}
		m.Set(element.KwProperties, pm)
	}
	if required := e.Required(); len(required) > 0 {
		list := make([]any, len(required))
		for i, r := range required {
			list[i] = r
		}
		m.Set(element.KwRequired, list)
	}
	if pps := e.PatternProperties(); len(pps) > 0 {
		pm := document.NewMap()
		for _, pp := range pps {
			v, err := s.schema(pp.Element)
			if err != nil {
				return err
			}
			pm.Set(pp.Pattern, v)
		}
		m.Set(element.KwPatternProperties, pm)
	}
	if err := s.set(m, element.KwAdditionalProperties, e.AdditionalProperties()); err != nil {
		return err
	}
	if err := s.set(m, element.KwPropertyNames, e.PropertyNames()); err != nil {
		return err
	}
	if deps := e.Dependencies(); len(deps) > 0 {
		dm := document.NewMap()
		for _, d := range deps {
			if d.Element == nil {
				list := make([]any, len(d.Required))
				for i, r := range d.Required {
					list[i] = r
				}
				dm.Set(d.Name, list)
				continue
			}
			v, err := s.schema(d.Element)
			if err != nil {
				return err
			}
			dm.Set(d.Name, v)
		}
		m.Set(element.KwDependencies, dm)
	}
	return nil
}

// set writes the schema of child under key when child is not nil.
func (s *serializer) set(m *document.Map, key string, child *element.Element) error {
	if child == nil {
		return nil
	}
	v, err := s.schema(child)
	if err != nil {
		return err
	}
	m.Set(key, v)
	return nil
}
