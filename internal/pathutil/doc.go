// Package pathutil provides path helpers shared by the parser, the element
// validators and the serializers.
//
// [PathBuilder] tracks where a validator currently is inside an instance
// value, using push/pop semantics so the path string is only built when an
// error is reported:
//
//	msg, err := pathutil.Track(func(path *pathutil.PathBuilder) (string, error) {
//		path.Push("pets")
//		path.PushIndex(2)
//		path.Push("name")
//		return path.String(), nil // "pets[2].name"; path.Pointer() is "/pets/2/name"
//	})
//
// The package also splits and builds JSON Pointer references (RFC 6901):
//
//	file, ptr := pathutil.SplitRef("other.json#/a/b") // "other.json", "/a/b"
//	pathutil.Segments("/a~1b/c")                       // ["a/b", "c"]
//	pathutil.DefinitionRef("Pet")                      // "#/definitions/Pet"
//
// [SanitizeOutputPath] guards generated-file writes against symlinks.
package pathutil
