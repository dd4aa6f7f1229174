package element

import (
	"maps"

	"github.com/erraggy/schemagen/internal/stringutil"
)

// FormatChecker reports whether a string satisfies a format.
type FormatChecker func(string) bool

// Formats maps "format" keyword values to their checkers. Strings with a
// format missing from the table always pass.
type Formats map[string]FormatChecker

// builtinFormats is shared by elements built without WithFormats and is
// never modified.
var builtinFormats = Formats{
	"uuid":      stringutil.IsValidUUID,
	"date-time": stringutil.IsValidDateTime,
	"date":      stringutil.IsValidDate,
	"email":     stringutil.IsValidEmail,
	"uri":       stringutil.IsValidURI,
	"ipv4":      stringutil.IsValidIPv4,
	"ipv6":      stringutil.IsValidIPv6,
	"hostname":  stringutil.IsValidHostname,
}

// DefaultFormats returns a fresh copy of the built-in format table, ready
// to be extended:
//
//	formats := element.DefaultFormats()
//	formats["even"] = func(s string) bool { return len(s)%2 == 0 }
//	p := parser.New()
//	p.Formats = formats
func DefaultFormats() Formats {
	return maps.Clone(builtinFormats)
}

// Check runs the checker for format on s. Unknown formats pass.
func (f Formats) Check(format, s string) bool {
	check, ok := f[format]
	if !ok || check == nil {
		return true
	}
	return check(s)
}
