package element

import (
	"regexp"
	"slices"
	"unicode/utf8"

	"github.com/erraggy/schemagen/internal/pathutil"
)

// valueType is the runtime JSON type a rule inspects. A rule whose type
// does not match the value passes silently; the type check reports that.
type valueType uint8

const (
	anyValue valueType = iota
	stringValue
	numberValue
	arrayValue
	objectValue
)

func (t valueType) matches(v any) bool {
	switch t {
	case stringValue:
		_, ok := v.(string)
		return ok
	case numberValue:
		return isNumber(v)
	case arrayValue:
		_, ok := asList(v)
		return ok
	case objectValue:
		_, ok := asObject(v)
		return ok
	}
	return true
}

// rule is one keyword validator. It is active on an element only when every
// keyword it names is present there.
type rule struct {
	keywords []string
	applies  valueType
	message  string
	valid    func(e *Element, v any) bool
}

func (r *rule) active(e *Element) bool {
	for _, kw := range r.keywords {
		if !e.Has(kw) {
			return false
		}
	}
	return true
}

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// render fills {keyword} placeholders in the message from e.
func (r *rule) render(e *Element) string {
	return placeholder.ReplaceAllStringFunc(r.message, func(m string) string {
		return formatKeyword(e.keywordValue(m[1 : len(m)-1]))
	})
}

// keywordValue returns a keyword for display, including element-valued ones.
func (e *Element) keywordValue(kw string) any {
	switch kw {
	case KwItems:
		if e.tuple {
			return e.tupleItems
		}
		return e.items
	case KwAdditionalItems:
		return e.additionalItems
	case KwContains:
		return e.contains
	case KwAdditionalProperties:
		return e.additionalProperties
	case KwPropertyNames:
		return e.propertyNames
	case KwRequired:
		return e.Required()
	case KwProperties:
		keys := make([]string, len(e.properties))
		for i, p := range e.properties {
			keys[i] = p.Source
		}
		return keys
	case KwDependencies:
		names := make([]string, len(e.dependencies))
		for i, d := range e.dependencies {
			names[i] = d.Name
		}
		return names
	}
	return e.Keyword(kw)
}

// registry lists every keyword validator in the order they run. The first
// failing rule decides the error message. It is filled in init because some
// rules validate nested elements, which runs the registry again.
var registry []rule

func init() {
	registry = []rule{
		{
			keywords: []string{KwConst},
			applies:  anyValue,
			message:  "Must be equal to {const}.",
			valid: func(e *Element, v any) bool {
				return jsonEqual(v, e.keywords[KwConst])
			},
		},
		{
			keywords: []string{KwEnum},
			applies:  anyValue,
			message:  "Must be one of {enum}.",
			valid: func(e *Element, v any) bool {
				options, ok := asList(e.keywords[KwEnum])
				if !ok {
					return true
				}
				return slices.ContainsFunc(options, func(o any) bool { return jsonEqual(v, o) })
			},
		},
		{
			keywords: []string{KwMinItems},
			applies:  arrayValue,
			message:  "Must contain at least {minItems} items.",
			valid: func(e *Element, v any) bool {
				list, _ := asList(v)
				return atLeast(len(list), e.keywords[KwMinItems])
			},
		},
		{
			keywords: []string{KwMaxItems},
			applies:  arrayValue,
			message:  "Must contain at most {maxItems} items.",
			valid: func(e *Element, v any) bool {
				list, _ := asList(v)
				return atMost(len(list), e.keywords[KwMaxItems])
			},
		},
		{
			keywords: []string{KwUniqueItems},
			applies:  arrayValue,
			message:  "Must not contain duplicates.",
			valid: func(e *Element, v any) bool {
				if unique, _ := e.keywords[KwUniqueItems].(bool); !unique {
					return true
				}
				list, _ := asList(v)
				for i := range list {
					for j := i + 1; j < len(list); j++ {
						if jsonEqual(list[i], list[j]) {
							return false
						}
					}
				}
				return true
			},
		},
		{
			keywords: []string{KwContains},
			applies:  arrayValue,
			message:  "Must contain one element valid against {contains}.",
			valid: func(e *Element, v any) bool {
				list, _ := asList(v)
				return slices.ContainsFunc(list, func(item any) bool {
					return e.contains.accepts(item)
				})
			},
		},
		{
			keywords: []string{KwAdditionalItems, KwItems},
			applies:  arrayValue,
			message:  "Must not contain additional items. Accepts: {items}.",
			valid: func(e *Element, v any) bool {
				if !e.tuple || !IsNothing(e.additionalItems) {
					return true
				}
				list, _ := asList(v)
				return len(list) <= len(e.tupleItems)
			},
		},
		{
			keywords: []string{KwMinimum},
			applies:  numberValue,
			message:  "Must be greater than or equal to {minimum}.",
			valid: func(e *Element, v any) bool {
				c, ok := compareNumbers(v, e.keywords[KwMinimum])
				return !ok || c >= 0
			},
		},
		{
			keywords: []string{KwMaximum},
			applies:  numberValue,
			message:  "Must be less than or equal to {maximum}.",
			valid: func(e *Element, v any) bool {
				c, ok := compareNumbers(v, e.keywords[KwMaximum])
				return !ok || c <= 0
			},
		},
		{
			keywords: []string{KwExclusiveMinimum},
			applies:  numberValue,
			message:  "Must be strictly greater than {exclusiveMinimum}.",
			valid: func(e *Element, v any) bool {
				c, ok := compareNumbers(v, e.keywords[KwExclusiveMinimum])
				return !ok || c > 0
			},
		},
		{
			keywords: []string{KwExclusiveMaximum},
			applies:  numberValue,
			message:  "Must be strictly less than {exclusiveMaximum}.",
			valid: func(e *Element, v any) bool {
				c, ok := compareNumbers(v, e.keywords[KwExclusiveMaximum])
				return !ok || c < 0
			},
		},
		{
			keywords: []string{KwMultipleOf},
			applies:  numberValue,
			message:  "Must be a multiple of {multipleOf}.",
			valid: func(e *Element, v any) bool {
				m, ok := toRat(e.keywords[KwMultipleOf])
				if !ok || m.Sign() <= 0 {
					return true
				}
				r, _ := toRat(v)
				return r.Quo(r, m).IsInt()
			},
		},
		{
			keywords: []string{KwMinLength},
			applies:  stringValue,
			message:  "Must be at least {minLength} characters long.",
			valid: func(e *Element, v any) bool {
				return atLeast(utf8.RuneCountInString(v.(string)), e.keywords[KwMinLength])
			},
		},
		{
			keywords: []string{KwMaxLength},
			applies:  stringValue,
			message:  "Must be at most {maxLength} characters long.",
			valid: func(e *Element, v any) bool {
				return atMost(utf8.RuneCountInString(v.(string)), e.keywords[KwMaxLength])
			},
		},
		{
			keywords: []string{KwPattern},
			applies:  stringValue,
			message:  "Must match regex pattern {pattern}.",
			valid: func(e *Element, v any) bool {
				return e.pattern != nil && e.pattern.MatchString(v.(string))
			},
		},
		{
			keywords: []string{KwFormat},
			applies:  stringValue,
			message:  "Must match format {format}.",
			valid: func(e *Element, v any) bool {
				format, ok := e.keywords[KwFormat].(string)
				return !ok || e.Formats().Check(format, v.(string))
			},
		},
		{
			keywords: []string{KwRequired},
			applies:  objectValue,
			message:  "Must contain all required fields: {required}.",
			valid: func(e *Element, v any) bool {
				obj, _ := asObject(v)
				for _, key := range e.Required() {
					if _, ok := obj.get(key); !ok {
						return false
					}
				}
				return true
			},
		},
		{
			keywords: []string{KwAdditionalProperties},
			applies:  objectValue,
			message:  "Must not contain unspecified properties. Accepts: {properties}.",
			valid: func(e *Element, v any) bool {
				if !IsNothing(e.additionalProperties) {
					return true
				}
				obj, _ := asObject(v)
				for _, key := range obj.keys {
					if e.PropertyBySource(key) == nil && len(e.matchPatterns(key)) == 0 {
						return false
					}
				}
				return true
			},
		},
		{
			keywords: []string{KwMinProperties},
			applies:  objectValue,
			message:  "Must contain at least {minProperties} properties.",
			valid: func(e *Element, v any) bool {
				obj, _ := asObject(v)
				return atLeast(len(obj.keys), e.keywords[KwMinProperties])
			},
		},
		{
			keywords: []string{KwMaxProperties},
			applies:  objectValue,
			message:  "Must contain at most {maxProperties} properties.",
			valid: func(e *Element, v any) bool {
				obj, _ := asObject(v)
				return atMost(len(obj.keys), e.keywords[KwMaxProperties])
			},
		},
		{
			keywords: []string{KwPropertyNames},
			applies:  objectValue,
			message:  "Property names must match schema {propertyNames}.",
			valid: func(e *Element, v any) bool {
				obj, _ := asObject(v)
				for _, key := range obj.keys {
					if !e.propertyNames.accepts(key) {
						return false
					}
				}
				return true
			},
		},
		{
			keywords: []string{KwDependencies},
			applies:  objectValue,
			message:  "Must match defined dependencies: {dependencies}.",
			valid: func(e *Element, v any) bool {
				obj, _ := asObject(v)
				for _, dep := range e.dependencies {
					if _, ok := obj.get(dep.Name); !ok {
						continue
					}
					if dep.Element != nil {
						if !dep.Element.accepts(v) {
							return false
						}
						continue
					}
					for _, key := range dep.Required {
						if _, ok := obj.get(key); !ok {
							return false
						}
					}
				}
				return true
			},
		},
	}
}

func atLeast(n int, bound any) bool {
	c, ok := compareNumbers(n, bound)
	return !ok || c >= 0
}

func atMost(n int, bound any) bool {
	c, ok := compareNumbers(n, bound)
	return !ok || c <= 0
}

// accepts reports whether v validates against e, discarding the result.
func (e *Element) accepts(v any) bool {
	_, err := e.validate(v, nil, &pathutil.PathBuilder{})
	return err == nil
}

// matchPatterns returns every pattern property matching key, in declared order.
func (e *Element) matchPatterns(key string) []*PatternProperty {
	var out []*PatternProperty
	for _, pp := range e.patternProperties {
		if pp.Matches(key) {
			out = append(out, pp)
		}
	}
	return out
}
