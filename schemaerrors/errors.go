package schemaerrors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates the schema could not be compiled.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a $ref could not be resolved.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a $ref chain that never reaches a schema.
	ErrCircularReference = errors.New("circular reference")

	// ErrNotImplemented indicates a schema feature that is not supported.
	ErrNotImplemented = errors.New("not implemented")

	// ErrValidation indicates a value failed validation.
	ErrValidation = errors.New("validation error")
)

// ParseError represents a schema that cannot be compiled into elements.
type ParseError struct {
	// Pointer is the JSON pointer of the offending fragment (e.g. "#/properties/pet")
	Pointer string
	// Fragment is a short rendering of the offending schema fragment
	Fragment string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Fragment != "" {
		msg += ": " + e.Fragment
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ReferenceError represents a failure to resolve a $ref.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// IsCircular is true if the $ref chain loops back on itself
	IsCircular bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "unresolvable pointer"
	if e.IsCircular {
		msg = "circular reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// A reference error is always fatal to the parse, so it also matches ErrParse.
func (e *ReferenceError) Is(target error) bool {
	switch target {
	case ErrReference, ErrParse:
		return true
	case ErrCircularReference:
		return e.IsCircular
	}
	return false
}

// NotImplementedError represents a schema feature that schemagen does not
// implement. Callers processing batches may choose to skip rather than abort.
type NotImplementedError struct {
	// Feature names the unsupported feature (e.g. "remote references")
	Feature string
	// Detail identifies the input that needs the feature (e.g. the $ref)
	Detail string
}

// Error returns a human-readable error message.
func (e *NotImplementedError) Error() string {
	msg := "not implemented"
	if e.Feature != "" {
		msg = e.Feature + " not implemented"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// ValidationError represents a value that failed a type or keyword check.
type ValidationError struct {
	// Path locates the value inside the validated document (e.g. "pets[2].name")
	Path string
	// Class is the name of the object type owning the property, if any
	Class string
	// Property is the attribute name the value was bound to, if any
	Property string
	// Keyword is the schema keyword whose check failed (e.g. "minimum", "type")
	Keyword string
	// Value is the offending value
	Value any
	// Message is the human-readable reason
	Message string
	// Cause is the underlying error, if any (e.g. failures of composition branches)
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("validation error")
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	b.WriteString(": failed validating ")
	b.WriteString(FormatValue(e.Value))
	if e.Property != "" {
		b.WriteString(" for attribute `")
		b.WriteString(e.Property)
		b.WriteString("`")
	}
	if e.Class != "" {
		b.WriteString(" on class `")
		b.WriteString(e.Class)
		b.WriteString("`")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidationErrors collects independent failures of sibling properties or
// array items. It is never empty when returned as an error.
type ValidationErrors []*ValidationError

// Error summarizes the first few failures.
func (errs ValidationErrors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Error()
	}
	const maxShown = 3
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors: ", len(errs))
	for i, e := range errs {
		if i == maxShown {
			fmt.Fprintf(&b, "; ... (%d more)", len(errs)-maxShown)
			break
		}
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Unwrap exposes every collected failure to errors.Is and errors.As.
func (errs ValidationErrors) Unwrap() []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}

// Is reports whether target matches this error type.
func (errs ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Append adds err to errs, flattening nested ValidationErrors.
// Errors that are not validation errors are wrapped so nothing is lost.
func (errs ValidationErrors) Append(err error) ValidationErrors {
	if err == nil {
		return errs
	}
	var many ValidationErrors
	if errors.As(err, &many) {
		return append(errs, many...)
	}
	var one *ValidationError
	if errors.As(err, &one) {
		return append(errs, one)
	}
	return append(errs, &ValidationError{Message: err.Error(), Cause: err})
}

// ErrOrNil returns errs as an error, or nil when it is empty.
func (errs ValidationErrors) ErrOrNil() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// FormatValue renders a value for error messages: strings are quoted,
// everything else uses its default format.
func FormatValue(v any) string {
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case nil:
		return "null"
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
