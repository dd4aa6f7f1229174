// Package orderer computes a declaration order for the object elements of
// a compiled schema.
//
// Code and document emitters declare one named type per object element.
// Order sorts them topologically so that every object follows the objects
// it refers to:
//
//	objects, err := orderer.Order(result.Elements()...)
//	if errors.Is(err, schemaerrors.ErrParse) {
//		// two or more objects refer to each other
//	}
//
// Objects lists the same elements in plain discovery order, for emitters
// that do not need declarations to precede their use.
package orderer
