// Package element is the compiled form of a JSON Schema.
//
// An [Element] is one schema node. Its [Kind] selects the variant (string,
// integer, number, boolean, null, array, object, untyped, or one of the
// compositions anyOf, oneOf, allOf and not) and with it the keywords the
// node keeps; keywords that make no sense for a kind are dropped when the
// element is built.
//
// # Building elements
//
// Elements are usually produced by the parser package, but they can be
// built directly:
//
//	name := element.NewString(element.Keywords{"minLength": 1})
//	category := element.NewObject("Category", []element.NamedProperty{
//	    {Key: "required_name", Element: name, Required: true},
//	}, nil)
//
// Recursive schemas are built in two phases: create the object, then attach
// properties that refer back to it with SetProperties.
//
// # Validating
//
// [Element.Call] validates a value and constructs its result: objects
// become [*Instance], arrays become []any, everything else is returned as
// is. Absent values are passed as [NotProvided], which is distinct from nil
// (JSON null):
//
//	inst, err := category.Call(map[string]any{"required_name": "foo"})
//	inst.(*element.Instance).Get("required_name") // "foo"
//
// Keyword checks come from a fixed table that runs in declared order; the
// first failing check decides the message. Failures of sibling properties
// and array items are collected into schemaerrors.ValidationErrors.
//
// # Compositions
//
// AnyOf returns the first member result that succeeds. OneOf needs exactly
// one member to succeed. AllOf needs every member to succeed and returns the
// last member result that is an instance of a declared object, then the last
// *Instance of any class, then the last result.
// Not succeeds when its member fails.
package element
