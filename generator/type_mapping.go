// This file maps elements to Go types for code generation.

package generator

import (
	"fmt"
	"strings"

	"github.com/erraggy/schemagen/element"
)

// goTypeInfo describes the Go type chosen for an element.
type goTypeInfo struct {
	// Type is the Go type expression, without optional-field pointers
	Type string
	// Object is the object element a named struct type stands for
	Object *element.Element
	// Nullable is set for unions of one type with null
	Nullable bool
	// Element is the element whose keywords describe the value
	Element *element.Element
}

// stringFormatToGoType maps string formats to Go types.
func stringFormatToGoType(format string) string {
	switch format {
	case "date-time":
		return "time.Time"
	default:
		return "string"
	}
}

// format returns the "format" keyword of e, or "".
func format(e *element.Element) string {
	s, _ := e.Keyword(element.KwFormat).(string)
	return s
}

// goType returns the Go type for values of e. path locates e for issues.
func (cg *typesGenerator) goType(e *element.Element, path string) goTypeInfo {
	info := goTypeInfo{Type: "any", Element: e}
	if e == nil || element.IsAnything(e) || element.IsNothing(e) {
		return info
	}

	switch e.Kind() {
	case element.KindString:
		info.Type = stringFormatToGoType(format(e))
	case element.KindInteger:
		info.Type = "int64"
	case element.KindNumber:
		info.Type = "float64"
	case element.KindBoolean:
		info.Type = "bool"
	case element.KindNull:
		info.Type = "any"
	case element.KindArray:
		info.Type = "[]" + cg.itemType(e, path)
	case element.KindObject:
		info.Type = cg.typeName(e)
		info.Object = e
	case element.KindUntyped:
		if len(e.Properties()) > 0 || len(e.PatternProperties()) > 0 || e.AdditionalProperties() != nil {
			info.Type = "map[string]" + cg.valueType(e.AdditionalProperties(), path+".additionalProperties")
		}
	case element.KindAnyOf, element.KindOneOf:
		if inner, ok := nullableMember(e); ok {
			info = cg.goType(inner, path)
			info.Nullable = true
			return info
		}
		cg.addIssue(path, fmt.Sprintf("%s composition mapped to any", e.Kind()), SeverityWarning)
	case element.KindAllOf:
		if obj := soleObject(e.Members()); obj != nil {
			info.Type = cg.typeName(obj)
			info.Object = obj
			return info
		}
		cg.addIssue(path, "AllOf composition mapped to any", SeverityWarning)
	case element.KindNot:
		cg.addIssue(path, "Not composition mapped to any", SeverityInfo)
	}
	return info
}

// itemType returns the element type of an array.
func (cg *typesGenerator) itemType(e *element.Element, path string) string {
	if e.IsTuple() {
		cg.addIssue(path, "tuple items mapped to []any", SeverityInfo)
		return "any"
	}
	return cg.valueType(e.Items(), path+".items")
}

// valueType returns the Go type for slice elements and map values, where
// optional pointers are not used.
func (cg *typesGenerator) valueType(e *element.Element, path string) string {
	info := cg.goType(e, path)
	if info.Nullable && pointerable(info.Type) {
		return "*" + info.Type
	}
	return info.Type
}

// nullableMember returns the only non-null member of a union that also
// admits null.
func nullableMember(e *element.Element) (*element.Element, bool) {
	var inner *element.Element
	hasNull := false
	for _, m := range e.Members() {
		switch {
		case m.Kind() == element.KindNull:
			hasNull = true
		case inner != nil:
			return nil, false
		default:
			inner = m
		}
	}
	return inner, hasNull && inner != nil
}

// soleObject returns the one object among members when the others carry
// no structure of their own, e.g. AllOf(Pet, {"required": [...]}).
func soleObject(members []*element.Element) *element.Element {
	var obj *element.Element
	for _, m := range members {
		switch {
		case m.Kind() == element.KindObject:
			if obj != nil {
				return nil
			}
			obj = m
		case m.Kind() != element.KindUntyped:
			return nil
		}
	}
	return obj
}

// pointerable reports whether an optional value of type t needs a pointer
// to tell absence apart from the zero value.
func pointerable(t string) bool {
	return t != "any" &&
		!strings.HasPrefix(t, "*") &&
		!strings.HasPrefix(t, "[]") &&
		!strings.HasPrefix(t, "map[")
}
