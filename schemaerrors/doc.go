// Package schemaerrors provides structured error types for schemagen.
//
// Import path: github.com/erraggy/schemagen/schemaerrors
//
// The package enables programmatic error handling via [errors.Is] and
// [errors.As], so callers can tell a malformed schema apart from a value that
// failed validation, or from a schema feature that is deliberately not
// supported.
//
// # Error Types
//
//   - [ParseError]: malformed or unsupported schema input (missing object
//     title, unknown type keyword, unresolvable declaration tree)
//   - [ReferenceError]: $ref resolution failures (unresolvable pointer,
//     circular $ref chain)
//   - [NotImplementedError]: features that are out of scope, such as remote
//     $ref targets
//   - [ValidationError]: a value failing a type or keyword check
//   - [ValidationErrors]: independent failures collected across sibling
//     properties or array items
//
// # Sentinel Errors
//
//   - [ErrParse]: matches [ParseError] and [ReferenceError]
//   - [ErrReference]: matches any [ReferenceError]
//   - [ErrCircularReference]: matches [ReferenceError] with IsCircular=true
//   - [ErrNotImplemented]: matches [NotImplementedError]
//   - [ErrValidation]: matches [ValidationError] and [ValidationErrors]
//
// # Usage Examples
//
// Skip unsupported schemas in a batch instead of aborting:
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("schema.json"))
//	if errors.Is(err, schemaerrors.ErrNotImplemented) {
//	    // log and continue with the next schema
//	}
//
// Inspect a validation failure:
//
//	_, err := elem.Call(value)
//	var verr *schemaerrors.ValidationError
//	if errors.As(err, &verr) {
//	    fmt.Printf("%s.%s: %s\n", verr.Class, verr.Property, verr.Message)
//	}
package schemaerrors
