package element

import (
	"errors"

	"github.com/erraggy/schemagen/internal/naming"
	"github.com/erraggy/schemagen/internal/pathutil"
	"github.com/erraggy/schemagen/schemaerrors"
)

// Call validates value against e and returns its constructed form:
// primitives unchanged, objects as *Instance, arrays as []any with each item
// constructed. Pass NotProvided to apply the element default.
//
// Independent failures of sibling properties or array items are collected
// into schemaerrors.ValidationErrors; any other failure is a single
// *schemaerrors.ValidationError.
func (e *Element) Call(value any) (any, error) {
	return pathutil.Track(func(path *pathutil.PathBuilder) (any, error) {
		return e.call(value, nil, path)
	})
}

// call applies the default, then the required check, then validate.
func (e *Element) call(value any, prop *Property, path *pathutil.PathBuilder) (any, error) {
	if IsNotProvided(value) {
		if def, ok := e.Default(); ok {
			out, err := e.validate(def, prop, path)
			if err != nil {
				// Defaults are trusted once: an invalid default is returned raw.
				return def, nil //nolint:nilerr // documented tolerance
			}
			return out, nil
		}
		if prop != nil && prop.Required {
			return nil, e.fail(prop, path, KwRequired, value, "This is a required field.", nil)
		}
		return value, nil
	}
	return e.validate(value, prop, path)
}

// validate runs the type check, the keyword rules and construction.
func (e *Element) validate(value any, prop *Property, path *pathutil.PathBuilder) (any, error) {
	if msg, ok := e.checkType(value); !ok {
		return nil, e.fail(prop, path, "type", value, msg, nil)
	}
	for i := range registry {
		r := &registry[i]
		if !r.applies.matches(value) || !r.active(e) {
			continue
		}
		if !r.valid(e, value) {
			return nil, e.fail(prop, path, r.keywords[0], value, r.render(e), nil)
		}
	}
	return e.construct(value, prop, path)
}

// checkType reports whether value has the element's JSON type.
func (e *Element) checkType(value any) (string, bool) {
	var ok bool
	switch e.kind {
	case KindString:
		_, ok = value.(string)
	case KindInteger:
		ok = isInteger(value)
	case KindNumber:
		ok = isNumber(value)
	case KindBoolean:
		_, ok = value.(bool)
	case KindNull:
		ok = value == nil
	case KindArray:
		_, ok = asList(value)
	case KindObject:
		_, ok = asObject(value)
	default:
		return "", true
	}
	if ok {
		return "", true
	}
	return "Must be of type " + e.kind.TypeName() + ".", false
}

func (e *Element) construct(value any, prop *Property, path *pathutil.PathBuilder) (any, error) {
	switch e.kind {
	case KindArray:
		return e.constructArray(value, path)
	case KindObject:
		return e.constructObject(value, path)
	case KindUntyped:
		if _, ok := asObject(value); ok {
			return e.constructObject(value, path)
		}
		if _, ok := asList(value); ok {
			return e.constructArray(value, path)
		}
		return value, nil
	case KindAnyOf:
		return e.callAnyOf(value, prop, path)
	case KindOneOf:
		return e.callOneOf(value, prop, path)
	case KindAllOf:
		return e.callAllOf(value, prop, path)
	case KindNot:
		return e.callNot(value, prop, path)
	}
	return value, nil
}

// itemElement returns the element validating item i.
func (e *Element) itemElement(i int) *Element {
	switch {
	case e.tuple && i < len(e.tupleItems):
		return e.tupleItems[i]
	case e.tuple && e.additionalItems != nil:
		return e.additionalItems
	case !e.tuple && e.items != nil:
		return e.items
	}
	return Anything()
}

func (e *Element) constructArray(value any, path *pathutil.PathBuilder) (any, error) {
	list, _ := asList(value)
	out := make([]any, len(list))
	var errs schemaerrors.ValidationErrors
	for i, item := range list {
		path.PushIndex(i)
		v, err := e.itemElement(i).call(item, nil, path)
		path.Pop()
		if err != nil {
			errs = errs.Append(err)
			continue
		}
		out[i] = v
	}
	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Element) constructObject(value any, path *pathutil.PathBuilder) (any, error) {
	obj, _ := asObject(value)
	inst := newInstance(e)
	var errs schemaerrors.ValidationErrors

	for _, p := range e.properties {
		raw, ok := obj.get(p.Source)
		if !ok {
			raw = NotProvided
		}
		path.Push(p.Source)
		v, err := p.call(raw, path)
		path.Pop()
		if err != nil {
			errs = errs.Append(err)
			continue
		}
		if !IsNotProvided(v) {
			inst.set(p.Name, p.Source, v)
		}
	}

	for _, key := range obj.keys {
		if e.PropertyBySource(key) != nil {
			continue
		}
		path.Push(key)
		v, err := e.callUndeclared(key, obj.values[key], path)
		path.Pop()
		if err != nil {
			errs = errs.Append(err)
			continue
		}
		inst.set(e.undeclaredName(inst, key), key, v)
	}

	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}
	return inst, nil
}

// callUndeclared validates the value of a key no property declares. The
// value must satisfy every pattern property the key matches; the last match
// constructs it. additionalProperties applies only when no pattern matches.
func (e *Element) callUndeclared(key string, raw any, path *pathutil.PathBuilder) (any, error) {
	matched := e.matchPatterns(key)
	if len(matched) == 0 {
		el := e.additionalProperties
		if el == nil {
			el = Anything()
		}
		return el.call(raw, nil, path)
	}
	var out any
	for _, pp := range matched {
		v, err := pp.Element.call(raw, nil, path)
		if err != nil {
			return nil, err
		}
		out = v
	}
	return out, nil
}

// undeclaredName picks the instance name of an undeclared key: the key
// itself, suffixed when a declared property or an earlier key owns it.
func (e *Element) undeclaredName(inst *Instance, key string) string {
	name := key
	for n := 1; e.Property(name) != nil || inst.has(name); n++ {
		name = naming.WithSuffix(key, n)
	}
	return name
}

// outcome is the result of probing one composition member.
type outcome struct {
	value any
	err   error
}

func (e *Element) probe(value any, prop *Property, path *pathutil.PathBuilder) []outcome {
	out := make([]outcome, len(e.members))
	for i, m := range e.members {
		v, err := m.validate(value, prop, path)
		out[i] = outcome{v, err}
	}
	return out
}

func (e *Element) callAnyOf(value any, prop *Property, path *pathutil.PathBuilder) (any, error) {
	var causes []error
	for _, m := range e.members {
		v, err := m.validate(value, prop, path)
		if err == nil {
			return v, nil
		}
		causes = append(causes, err)
	}
	return nil, e.fail(prop, path, "anyOf", value, "Does not match any accepted schema.", errors.Join(causes...))
}

func (e *Element) callOneOf(value any, prop *Property, path *pathutil.PathBuilder) (any, error) {
	var (
		matched []any
		causes  []error
	)
	for _, o := range e.probe(value, prop, path) {
		if o.err != nil {
			causes = append(causes, o.err)
			continue
		}
		matched = append(matched, o.value)
	}
	switch len(matched) {
	case 0:
		return nil, e.fail(prop, path, "oneOf", value, "Does not match any accepted schema.", errors.Join(causes...))
	case 1:
		return matched[0], nil
	}
	return nil, e.fail(prop, path, "oneOf", value, "Matches multiple possible schemas.", nil)
}

// callAllOf requires every member to accept value. The result is the last
// member result that is an instance of a declared object; failing that the
// last *Instance of any class, and failing that the last result.
func (e *Element) callAllOf(value any, prop *Property, path *pathutil.PathBuilder) (any, error) {
	result := value
	var inst, declared *Instance
	for _, o := range e.probe(value, prop, path) {
		if o.err != nil {
			return nil, o.err
		}
		result = o.value
		if in, ok := o.value.(*Instance); ok {
			inst = in
			if in.class != nil && in.class.kind == KindObject {
				declared = in
			}
		}
	}
	switch {
	case declared != nil:
		return declared, nil
	case inst != nil:
		return inst, nil
	}
	return result, nil
}

func (e *Element) callNot(value any, prop *Property, path *pathutil.PathBuilder) (any, error) {
	if len(e.members) == 0 {
		return value, nil
	}
	if _, err := e.members[0].validate(value, prop, path); err == nil {
		return nil, e.fail(prop, path, "not", value, "Must not match "+e.members[0].String()+".", nil)
	}
	return value, nil
}

// fail builds a validation error naming the owning class and property.
func (e *Element) fail(prop *Property, path *pathutil.PathBuilder, keyword string, value any, msg string, cause error) *schemaerrors.ValidationError {
	ve := &schemaerrors.ValidationError{
		Path:    path.String(),
		Keyword: keyword,
		Value:   value,
		Message: msg,
		Cause:   cause,
	}
	switch {
	case prop != nil:
		ve.Property = prop.Name
		if parent := prop.Parent(); parent != nil {
			ve.Class = parent.Name()
		}
	case e.kind == KindObject:
		ve.Class = e.Name()
	}
	return ve
}
