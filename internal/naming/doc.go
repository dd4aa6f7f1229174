// Package naming turns schema keys and titles into identifiers.
//
// [PropertyName] normalizes a JSON property key into the name a compiled
// element exposes it under. [ToTypeName] and [ToFieldName] produce exported
// Go identifiers for the generator.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
