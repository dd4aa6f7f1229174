// Package issues provides the issue type shared by generation and validation reports.
package issues

import (
	"errors"
	"fmt"

	"github.com/erraggy/schemagen/internal/severity"
	"github.com/erraggy/schemagen/schemaerrors"
)

// Issue represents a single problem found while generating code or
// validating an instance.
type Issue struct {
	// Path locates the problem (e.g. "Pet.owner" or "pets[2].name")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Keyword is the schema keyword involved, if any
	Keyword string
	// Value is the problematic value (optional)
	Value any
	// Context provides additional information about the issue (optional)
	Context string
}

// String renders the issue for text reports: the severity symbol, the path
// ("(root)" when empty), the message and the keyword, with any context on
// a second line.
func (i Issue) String() string {
	path := i.Path
	if path == "" {
		path = "(root)"
	}
	result := fmt.Sprintf("%s %s: %s", i.Severity.Symbol(), path, i.Message)
	if i.Keyword != "" {
		result += fmt.Sprintf(" [%s]", i.Keyword)
	}
	if i.Context != "" {
		result += fmt.Sprintf("\n    Context: %s", i.Context)
	}
	return result
}

// FromError converts a validation failure into error issues, one per
// collected ValidationError. Any other error becomes a single issue.
func FromError(err error) []Issue {
	if err == nil {
		return nil
	}
	var many schemaerrors.ValidationErrors
	if errors.As(err, &many) {
		out := make([]Issue, 0, len(many))
		for _, e := range many {
			out = append(out, fromValidationError(e))
		}
		return out
	}
	var one *schemaerrors.ValidationError
	if errors.As(err, &one) {
		return []Issue{fromValidationError(one)}
	}
	return []Issue{{Message: err.Error(), Severity: severity.SeverityError}}
}

func fromValidationError(e *schemaerrors.ValidationError) Issue {
	msg := e.Message
	if msg == "" {
		msg = e.Error()
	}
	issue := Issue{
		Path:     e.Path,
		Message:  msg,
		Severity: severity.SeverityError,
		Keyword:  e.Keyword,
		Value:    e.Value,
	}
	if e.Cause != nil {
		issue.Context = e.Cause.Error()
	}
	return issue
}

// Count tallies issues by severity.
func Count(list []Issue) (info, warning, errs, critical int) {
	for _, i := range list {
		switch i.Severity {
		case severity.SeverityInfo:
			info++
		case severity.SeverityWarning:
			warning++
		case severity.SeverityError:
			errs++
		case severity.SeverityCritical:
			critical++
		}
	}
	return info, warning, errs, critical
}
