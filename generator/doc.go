// Package generator produces Go type declarations from compiled JSON Schemas.
//
// Every object element becomes one struct, declared after the structs it
// uses. Other elements are mapped to Go types in place.
//
// # Quick Start
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("pet.json"),
//		generator.WithPackageName("petstore"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./petstore"); err != nil {
//		log.Fatal(err)
//	}
//
// Or use a reusable Generator instance:
//
//	g := generator.New()
//	g.PackageName = "petstore"
//	g.IncludeSchema = true
//	result, _ := g.Generate("pet.json")
//
// # Type Mapping
//
//   - string → string (date-time → time.Time)
//   - integer → int64
//   - number → float64
//   - boolean → bool
//   - array → []T, tuples → []any
//   - object → a named struct; additionalProperties → an AdditionalProperties map
//   - a union of one type with null → *T
//   - AllOf of one object plus constraints → that object's struct
//   - other compositions → any, reported as an issue
//
// Optional fields use pointers unless UsePointers is off. A field that
// leads back to its own struct always uses a pointer.
//
// # Struct Tags
//
// Fields carry a json tag with the original key and, with IncludeValidation,
// a validate tag in go-playground/validator syntax built from the keywords
// (required, min, max, gte, lt, email, oneof, ...).
package generator
