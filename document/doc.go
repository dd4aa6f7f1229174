// Package document holds raw schema and instance data before it is compiled.
//
// Schemas are loaded into ordered [Map] values so that property declaration
// order survives the trip through the parser and back out of the serializers.
// Both JSON and YAML input are accepted by [Load]; YAML anchors and aliases
// resolve to the same *Map, which the parser treats as one node.
//
// Instance data (the values validated against compiled elements) is decoded
// by [DecodeInstance] into plain Go values with numbers kept as json.Number,
// so integer and float literals can be told apart.
//
// Map identity matters: the parser tracks cycles by *Map pointer, so code that
// builds schemas by hand should share a *Map wherever it wants a recursive
// reference. [FromGo] keeps map identity when converting map[string]any trees.
package document
