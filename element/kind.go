package element

// Kind identifies the variant of an Element.
type Kind int

// Element kinds.
const (
	KindUntyped Kind = iota
	KindString
	KindInteger
	KindNumber
	KindBoolean
	KindNull
	KindArray
	KindObject
	KindAnyOf
	KindOneOf
	KindAllOf
	KindNot
)

var kindNames = [...]string{
	KindUntyped: "Element",
	KindString:  "String",
	KindInteger: "Integer",
	KindNumber:  "Number",
	KindBoolean: "Boolean",
	KindNull:    "Null",
	KindArray:   "Array",
	KindObject:  "Object",
	KindAnyOf:   "AnyOf",
	KindOneOf:   "OneOf",
	KindAllOf:   "AllOf",
	KindNot:     "Not",
}

// String returns the kind's name, e.g. "Array".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(?)"
	}
	return kindNames[k]
}

// TypeName returns the JSON Schema "type" value for the kind, or "" when the
// kind does not correspond to a single type.
func (k Kind) TypeName() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return ""
}

// KindForType maps a JSON Schema "type" value to its Kind.
func KindForType(t string) (Kind, bool) {
	switch t {
	case "string":
		return KindString, true
	case "integer":
		return KindInteger, true
	case "number":
		return KindNumber, true
	case "boolean":
		return KindBoolean, true
	case "null":
		return KindNull, true
	case "array":
		return KindArray, true
	case "object":
		return KindObject, true
	}
	return KindUntyped, false
}

// IsComposition reports whether the kind combines member elements.
func (k Kind) IsComposition() bool {
	return k >= KindAnyOf && k <= KindNot
}

// Keyword names used by elements.
const (
	KwDefault              = "default"
	KwConst                = "const"
	KwEnum                 = "enum"
	KwDescription          = "description"
	KwMinLength            = "minLength"
	KwMaxLength            = "maxLength"
	KwPattern              = "pattern"
	KwFormat               = "format"
	KwMinimum              = "minimum"
	KwMaximum              = "maximum"
	KwExclusiveMinimum     = "exclusiveMinimum"
	KwExclusiveMaximum     = "exclusiveMaximum"
	KwMultipleOf           = "multipleOf"
	KwItems                = "items"
	KwAdditionalItems      = "additionalItems"
	KwMinItems             = "minItems"
	KwMaxItems             = "maxItems"
	KwUniqueItems          = "uniqueItems"
	KwContains             = "contains"
	KwProperties           = "properties"
	KwRequired             = "required"
	KwPatternProperties    = "patternProperties"
	KwAdditionalProperties = "additionalProperties"
	KwMinProperties        = "minProperties"
	KwMaxProperties        = "maxProperties"
	KwPropertyNames        = "propertyNames"
	KwDependencies         = "dependencies"
)

var (
	commonKeywords  = []string{KwDefault, KwConst, KwEnum, KwDescription}
	stringKeywords  = []string{KwMinLength, KwMaxLength, KwPattern, KwFormat}
	numericKeywords = []string{KwMinimum, KwMaximum, KwExclusiveMinimum, KwExclusiveMaximum, KwMultipleOf}
	arrayKeywords   = []string{KwItems, KwAdditionalItems, KwMinItems, KwMaxItems, KwUniqueItems, KwContains}
	objectKeywords  = []string{
		KwProperties, KwRequired, KwPatternProperties, KwAdditionalProperties,
		KwMinProperties, KwMaxProperties, KwPropertyNames, KwDependencies,
	}
)

// allowedKeywords is the keyword set each kind accepts; anything else is
// dropped at construction.
var allowedKeywords = func() map[Kind]map[string]bool {
	set := func(groups ...[]string) map[string]bool {
		m := make(map[string]bool)
		for _, g := range groups {
			for _, kw := range g {
				m[kw] = true
			}
		}
		return m
	}
	return map[Kind]map[string]bool{
		KindUntyped: set(commonKeywords, stringKeywords, numericKeywords, arrayKeywords, objectKeywords),
		KindString:  set(commonKeywords, stringKeywords),
		KindInteger: set(commonKeywords, numericKeywords),
		KindNumber:  set(commonKeywords, numericKeywords),
		KindBoolean: set(commonKeywords),
		KindNull:    set(commonKeywords),
		KindArray:   set(commonKeywords, arrayKeywords),
		KindObject:  set(commonKeywords, objectKeywords),
		KindAnyOf:   set(commonKeywords),
		KindOneOf:   set(commonKeywords),
		KindAllOf:   set(commonKeywords),
		KindNot:     set(commonKeywords),
	}
}()

// Accepts reports whether kind k accepts keyword kw.
func (k Kind) Accepts(kw string) bool {
	return allowedKeywords[k][kw]
}
