package schemaerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{"minimal", &ParseError{}, "parse error"},
		{"pointer only", &ParseError{Pointer: "#/properties/pet"}, "parse error at #/properties/pet"},
		{
			name: "all fields",
			err: &ParseError{
				Pointer:  "#",
				Message:  "object schema has no title",
				Fragment: `{"type":"object"}`,
				Cause:    errors.New("boom"),
			},
			want: `parse error at #: object schema has no title: {"type":"object"}: boom`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	t.Run("Is and Unwrap", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		assert.ErrorIs(t, err, ErrParse)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, ErrValidation)
		assert.NotErrorIs(t, err, ErrNotImplemented)
	})
}

func TestReferenceError(t *testing.T) {
	t.Run("unresolvable", func(t *testing.T) {
		err := &ReferenceError{Ref: "#/definitions/Missing", Message: `segment "Missing" not found`}
		assert.Equal(t, `unresolvable pointer: #/definitions/Missing: segment "Missing" not found`, err.Error())
		assert.ErrorIs(t, err, ErrReference)
		assert.ErrorIs(t, err, ErrParse)
		assert.NotErrorIs(t, err, ErrCircularReference)
	})

	t.Run("circular", func(t *testing.T) {
		err := &ReferenceError{Ref: "#/definitions/A", IsCircular: true}
		assert.Equal(t, "circular reference: #/definitions/A", err.Error())
		assert.ErrorIs(t, err, ErrCircularReference)
		assert.ErrorIs(t, err, ErrReference)
	})

	t.Run("wrapped", func(t *testing.T) {
		inner := &ReferenceError{Ref: "#/x"}
		wrapped := fmt.Errorf("parser: dereference: %w", inner)
		var target *ReferenceError
		require.ErrorAs(t, wrapped, &target)
		assert.Equal(t, "#/x", target.Ref)
	})
}

func TestNotImplementedError(t *testing.T) {
	err := &NotImplementedError{Feature: "remote references", Detail: "other.json#/a"}
	assert.Equal(t, "remote references not implemented: other.json#/a", err.Error())
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.NotErrorIs(t, err, ErrParse)

	assert.Equal(t, "not implemented", (&NotImplementedError{}).Error())
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Path:     "pets[0].name",
		Class:    "Pet",
		Property: "name",
		Keyword:  "minLength",
		Value:    "",
		Message:  "Must have a length greater than or equal to 1.",
	}
	assert.Equal(t,
		"validation error at pets[0].name: failed validating \"\" for attribute `name` on class `Pet`: Must have a length greater than or equal to 1.",
		err.Error())
	assert.ErrorIs(t, err, ErrValidation)

	bare := &ValidationError{Value: nil, Message: "Must be a string."}
	assert.Equal(t, "validation error: failed validating null: Must be a string.", bare.Error())
}

func TestValidationErrors(t *testing.T) {
	one := &ValidationError{Property: "a", Message: "first"}
	two := &ValidationError{Property: "b", Message: "second"}

	t.Run("append flattens", func(t *testing.T) {
		var errs ValidationErrors
		errs = errs.Append(nil)
		assert.Empty(t, errs)
		errs = errs.Append(one)
		errs = errs.Append(ValidationErrors{two, one})
		errs = errs.Append(fmt.Errorf("wrapped: %w", two))
		assert.Len(t, errs, 4)
	})

	t.Run("foreign errors are wrapped", func(t *testing.T) {
		cause := errors.New("plain")
		errs := ValidationErrors{}.Append(cause)
		require.Len(t, errs, 1)
		assert.ErrorIs(t, errs, cause)
		assert.Equal(t, "plain", errs[0].Message)
	})

	t.Run("ErrOrNil", func(t *testing.T) {
		assert.NoError(t, ValidationErrors{}.ErrOrNil())
		assert.Error(t, ValidationErrors{one}.ErrOrNil())
	})

	t.Run("errors.As reaches members", func(t *testing.T) {
		var err error = ValidationErrors{one, two}
		assert.ErrorIs(t, err, ErrValidation)
		var target *ValidationError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "a", target.Property)
	})

	t.Run("summary truncates", func(t *testing.T) {
		errs := ValidationErrors{one, two, one, two, one}
		msg := errs.Error()
		assert.Contains(t, msg, "5 validation errors: ")
		assert.Contains(t, msg, "(2 more)")
		assert.Equal(t, one.Error(), ValidationErrors{one}.Error())
	})
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, `"x"`, FormatValue("x"))
	assert.Equal(t, "null", FormatValue(nil))
	assert.Equal(t, "42", FormatValue(42))
	assert.Equal(t, "[1 2]", FormatValue([]any{1, 2}))
}
