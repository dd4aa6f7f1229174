// Package serializer writes compiled element trees back out as JSON Schema
// documents.
//
// The output is a draft-07 document. The root is written inline and
// referenced as "#". Other object elements become entries of "definitions"
// and are referenced with "$ref"; every other element is written in place:
//
//	res, err := parser.New().Parse("pet.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, err := serializer.MarshalJSON(res.Elements()...)
//
// Parsing the output again yields elements equal to the input according to
// element.Equal. Keys are written in a fixed order, so serializing the same
// tree twice gives the same bytes.
package serializer
