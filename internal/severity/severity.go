// Package severity ranks the issues reported by schemagen.
//
// Validation failures are errors. Generation reports info for choices it
// made, warnings for lossy mappings and critical issues for output it could
// not produce.
package severity

// Severity is the level of an issue. The zero value is SeverityError.
type Severity int

const (
	// SeverityError marks data that does not satisfy its schema.
	SeverityError Severity = iota

	// SeverityWarning marks a lossy mapping, e.g. a composition emitted as any.
	SeverityWarning

	// SeverityInfo marks a choice made during generation.
	SeverityInfo

	// SeverityCritical marks output that could not be produced.
	SeverityCritical
)

var names = map[Severity]string{
	SeverityError:    "error",
	SeverityWarning:  "warning",
	SeverityInfo:     "info",
	SeverityCritical: "critical",
}

var symbols = map[Severity]string{
	SeverityError:    "✗",
	SeverityWarning:  "⚠",
	SeverityInfo:     "ℹ",
	SeverityCritical: "✗",
}

// String returns the lower-case name of the level, or "unknown".
func (s Severity) String() string {
	if name, ok := names[s]; ok {
		return name
	}
	return "unknown"
}

// Symbol returns the marker printed before an issue in text reports.
func (s Severity) Symbol() string {
	if sym, ok := symbols[s]; ok {
		return sym
	}
	return "?"
}

// MarshalText encodes the level by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
