// Package schemagen compiles JSON Schema documents into validating
// elements and Go type declarations.
//
// A schema is parsed once into a graph of elements. The same graph then
// validates data, writes the schema back as a normalized document, orders
// its object schemas for declaration, and generates Go structs.
//
// # Overview
//
// The library consists of these packages:
//
//   - parser: load a schema file, resolve every $ref and build elements
//   - element: the compiled schema; Call validates a value and constructs it
//   - serializer: write elements back as a draft-07 document
//   - orderer: list object schemas so each follows the objects it uses
//   - generator: render Go types with json and validate tags
//   - document: ordered JSON and YAML decoding shared by the others
//   - schemaerrors: the error types every package returns
//
// $ref may point anywhere inside the document. References into other
// files or URLs fail with a *schemaerrors.NotImplementedError.
//
// # Installation
//
//	go get github.com/erraggy/schemagen
//
// The command line tool is installed with:
//
//	go install github.com/erraggy/schemagen/cmd/schemagen@latest
//
// # Quick Start
//
// Parse a schema and validate data against it:
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("pet.json"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	pet, err := result.Root.Call(map[string]any{"id": 7, "name": "Rex"})
//	if err != nil {
//		log.Fatal(err) // schemaerrors.ValidationErrors with one entry per failure
//	}
//	fmt.Println(pet.(*element.Instance).Get("name"))
//
// Write the compiled schema back out:
//
//	data, err := serializer.MarshalJSON(result.Elements()...)
//
// List object schemas in declaration order:
//
//	objects, err := orderer.Order(result.Elements()...)
//
// Generate Go types:
//
//	gen, err := generator.GenerateWithOptions(
//		generator.WithParsed(result),
//		generator.WithPackageName("petstore"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = gen.WriteFiles("./petstore")
//
// # Titles and names
//
// Every object schema needs a title; it names the object in errors, in
// "definitions" and in generated code. Entries of "definitions" and "$defs"
// take their key when untitled. Other untitled objects are a parse error
// unless parser.WithAutoTitle is set, which names them after their location.
// Objects sharing a title are merged when equal and renamed otherwise.
//
// # Command Line
//
// The schemagen command exposes the same operations:
//
//	schemagen validate pet.json rex.json
//	schemagen generate -o ./petstore -p petstore pet.json
//	schemagen serialize --format yaml pet.json
//	schemagen order store.yaml
//	schemagen mcp
//
// The mcp command serves validate, generate, serialize and order as tools
// over the Model Context Protocol on stdio.
package schemagen
