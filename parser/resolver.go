package parser

import (
	"fmt"
	"strconv"

	"github.com/erraggy/schemagen/document"
	"github.com/erraggy/schemagen/internal/pathutil"
	"github.com/erraggy/schemagen/schemaerrors"
)

const (
	// MaxRefDepth is the maximum number of $ref hops followed for one
	// reference. It bounds chains like A -> B -> C that never loop but
	// never end either.
	MaxRefDepth = 100

	// refKey is the JSON Schema reference keyword.
	refKey = "$ref"
)

// dataKeywords hold instance data rather than schemas; a "$ref" key inside
// them is plain data.
var dataKeywords = map[string]bool{
	"default":  true,
	"const":    true,
	"enum":     true,
	"examples": true,
}

// nameKeywords map names to schemas.
var nameKeywords = map[string]bool{
	"properties":        true,
	"patternProperties": true,
	"definitions":       true,
	"$defs":             true,
	"dependencies":      true,
}

// RefResolver resolves $ref pointers inside a single schema document.
//
// Only local references ("#/definitions/Pet") are supported. A reference
// with a file or URL part fails with a *schemaerrors.NotImplementedError.
//
// Dereference rewrites the document in place so that every {"$ref": ...}
// node is replaced by the node it points to. The same target always
// resolves to the same *document.Map, so recursive schemas become cyclic
// graphs that the parser detects by identity.
type RefResolver struct {
	root any
	// resolving tracks refs on the current resolution chain
	resolving map[string]bool
	// resolved caches the final target of each ref
	resolved map[string]any
	// visited tracks maps already walked by Dereference
	visited map[*document.Map]bool
	// maxDepth bounds ref chains (0 means MaxRefDepth)
	maxDepth int
	logger   Logger
}

// NewRefResolver creates a resolver for refs inside root.
func NewRefResolver(root any) *RefResolver {
	return &RefResolver{
		root:      root,
		resolving: make(map[string]bool),
		resolved:  make(map[string]any),
		visited:   make(map[*document.Map]bool),
		logger:    NopLogger{},
	}
}

// SetLogger sets the logger used for debug output. A nil logger disables
// logging.
func (r *RefResolver) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	r.logger = l
}

// SetMaxDepth overrides MaxRefDepth. Zero or negative restores the default.
func (r *RefResolver) SetMaxDepth(n int) {
	r.maxDepth = n
}

func (r *RefResolver) depthLimit() int {
	if r.maxDepth > 0 {
		return r.maxDepth
	}
	return MaxRefDepth
}

// ResolveLocal returns the node ref points to. If the target is itself a
// reference, the chain is followed to the first node that is not.
func (r *RefResolver) ResolveLocal(ref string) (any, error) {
	return r.resolve(ref, 0)
}

func (r *RefResolver) resolve(ref string, depth int) (any, error) {
	if v, ok := r.resolved[ref]; ok {
		return v, nil
	}
	file, pointer := pathutil.SplitRef(ref)
	if file != "" {
		return nil, &schemaerrors.NotImplementedError{Feature: "remote references", Detail: ref}
	}
	if r.resolving[ref] {
		return nil, &schemaerrors.ReferenceError{Ref: ref, IsCircular: true}
	}
	if depth >= r.depthLimit() {
		return nil, &schemaerrors.ReferenceError{
			Ref:     ref,
			Message: fmt.Sprintf("exceeds maximum reference depth of %d", r.depthLimit()),
		}
	}
	r.resolving[ref] = true
	defer delete(r.resolving, ref)

	target, err := r.walkPointer(ref, pointer, depth)
	if err != nil {
		return nil, err
	}
	if next, ok := refOf(target); ok {
		target, err = r.resolve(next, depth+1)
		if err != nil {
			return nil, err
		}
	}
	r.resolved[ref] = target
	return target, nil
}

// walkPointer traverses the RFC 6901 pointer from the document root.
// A reference met along the way is followed when the map lacks the next
// key, so pointers into a referenced schema work before Dereference has
// rewritten it.
func (r *RefResolver) walkPointer(ref, pointer string, depth int) (any, error) {
	current := r.root
	segments := pathutil.Segments(pointer)
	for i, seg := range segments {
		switch v := current.(type) {
		case *document.Map:
			next, ok := v.Get(seg)
			if !ok {
				if inner, isRef := refOf(v); isRef {
					resolved, err := r.resolve(inner, depth+1)
					if err != nil {
						return nil, err
					}
					if m, isMap := resolved.(*document.Map); isMap {
						next, ok = m.Get(seg)
					}
				}
			}
			if !ok {
				return nil, &schemaerrors.ReferenceError{
					Ref:     ref,
					Message: fmt.Sprintf("missing key %q at %s", seg, pathutil.JoinRef(segments[:i]...)),
				}
			}
			current = next
		case []any:
			index, err := strconv.Atoi(seg)
			if err != nil || index < 0 || index >= len(v) {
				return nil, &schemaerrors.ReferenceError{
					Ref:     ref,
					Message: fmt.Sprintf("invalid array index %q at %s (length %d)", seg, pathutil.JoinRef(segments[:i]...), len(v)),
				}
			}
			current = v[index]
		default:
			return nil, &schemaerrors.ReferenceError{
				Ref:     ref,
				Message: fmt.Sprintf("cannot traverse into %T at %s", v, pathutil.JoinRef(segments[:i]...)),
			}
		}
	}
	return current, nil
}

// Dereference replaces every reference node in the document with its
// target and returns the new root, which differs from the old one only when
// the root itself was a reference. The siblings of a referencing root, such
// as its "definitions", are still dereferenced in place.
//
// A referenced map without a title gets the last pointer segment as its
// title. Keywords next to "$ref" are ignored.
func (r *RefResolver) Dereference() (any, error) {
	if m, ok := r.root.(*document.Map); ok {
		if _, isRef := refOf(m); isRef {
			r.visited[m] = true
			for _, k := range m.Keys() {
				if k == refKey || dataKeywords[k] {
					continue
				}
				child, _ := m.Get(k)
				out, err := r.replace(child, nameKeywords[k])
				if err != nil {
					return nil, err
				}
				m.Set(k, out)
			}
		}
	}
	return r.replace(r.root, false)
}

// replace returns the dereferenced form of v, rewriting containers in place.
// names is set when v maps names to schemas (e.g. "properties"), whose keys
// are never keywords.
func (r *RefResolver) replace(v any, names bool) (any, error) {
	if ref, ok := refOf(v); ok {
		target, err := r.ResolveLocal(ref)
		if err != nil {
			return nil, err
		}
		m := v.(*document.Map)
		if m.Len() > 1 {
			r.logger.Debug("ignoring keywords next to $ref", "ref", ref, "keywords", m.Len()-1)
		}
		if tm, ok := target.(*document.Map); ok {
			if _, titled := tm.Get("title"); !titled {
				if title := pathutil.LastSegment(ref); title != "" {
					tm.Set("title", title)
				}
			}
		}
		r.logger.Debug("resolved reference", "ref", ref)
		return target, nil
	}

	switch t := v.(type) {
	case *document.Map:
		if r.visited[t] {
			return t, nil
		}
		r.visited[t] = true
		for _, k := range t.Keys() {
			if !names && dataKeywords[k] {
				continue
			}
			child, _ := t.Get(k)
			out, err := r.replace(child, !names && nameKeywords[k])
			if err != nil {
				return nil, err
			}
			t.Set(k, out)
		}
	case []any:
		for i, item := range t {
			out, err := r.replace(item, false)
			if err != nil {
				return nil, err
			}
			t[i] = out
		}
	}
	return v, nil
}

// refOf reports the $ref string of a reference node.
func refOf(v any) (string, bool) {
	m, ok := v.(*document.Map)
	if !ok {
		return "", false
	}
	raw, ok := m.Get(refKey)
	if !ok {
		return "", false
	}
	ref, ok := raw.(string)
	return ref, ok
}
