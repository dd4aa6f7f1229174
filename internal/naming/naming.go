package naming

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/runenames"
)

// reservedWords are Go keywords plus the predeclared identifiers that would
// change meaning if used as a bare name.
var reservedWords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
	"nil": true, "true": true, "false": true, "iota": true,
}

// initialisms are rendered fully upper case in Go identifiers.
var initialisms = map[string]bool{
	"api": true, "html": true, "http": true, "https": true, "id": true,
	"ip": true, "json": true, "uri": true, "url": true, "uuid": true, "xml": true,
}

// IsReserved reports whether s is a reserved word.
func IsReserved(s string) bool {
	return reservedWords[s]
}

// PropertyName normalizes a raw JSON key into a safe identifier.
//
// Letters, digits and underscores pass through; spaces and hyphens become
// underscores; any other rune is replaced by its lower-cased Unicode name,
// separated from its neighbours by underscores. A result that starts with a
// digit or is a reserved word gets a leading underscore. The empty key
// becomes "blank".
//
//	"$ref"      -> "dollar_sign_ref"
//	"a.b"       -> "a_full_stop_b"
//	"first-name" -> "first_name"
//	"1st"       -> "_1st"
//	"type"      -> "_type"
func PropertyName(s string) string {
	if s == "" {
		return "blank"
	}
	runes := []rune(s)
	var b strings.Builder
	last := rune(0)
	write := func(str string) {
		b.WriteString(str)
		if str != "" {
			last = rune(str[len(str)-1])
		}
	}
	for i, r := range runes {
		switch {
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			write(string(r))
		case r == ' ' || r == '-':
			write("_")
		default:
			if b.Len() > 0 && last != '_' {
				write("_")
			}
			write(runeName(r))
			if i+1 < len(runes) && !becomesUnderscore(runes[i+1]) {
				write("_")
			}
		}
	}
	out := b.String()
	if first := []rune(out)[0]; unicode.IsDigit(first) || reservedWords[out] {
		out = "_" + out
	}
	return out
}

func becomesUnderscore(r rune) bool {
	return r == '_' || r == ' ' || r == '-'
}

// runeName returns the snake-cased Unicode name of r.
func runeName(r rune) string {
	name := runenames.Name(r)
	if name == "" || strings.HasPrefix(name, "<") {
		return fmt.Sprintf("u%04x", r)
	}
	name = strings.ToLower(name)
	return strings.NewReplacer(" ", "_", "-", "_").Replace(name)
}

// WithSuffix disambiguates name with a numeric suffix: name_1, name_2, ...
func WithSuffix(name string, n int) string {
	if n == 0 {
		return name
	}
	return name + "_" + strconv.Itoa(n)
}

// ToTypeName converts a title into an exported Go type name.
// Non-alphanumeric runes split words; each word gets an upper-case first rune, and known
// initialisms are upper cased. A name that would not start with a letter is
// prefixed with "T".
func ToTypeName(s string) string {
	return toIdentifier(s, "Type", "T")
}

// ToFieldName converts a property name into an exported Go field name.
func ToFieldName(s string) string {
	return toIdentifier(s, "Field", "F")
}

func toIdentifier(s, empty, prefix string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return empty
	}
	// Casers are stateful, so each call gets its own.
	upper := cases.Upper(language.Und)
	var b strings.Builder
	for _, w := range words {
		if initialisms[strings.ToLower(w)] {
			b.WriteString(upper.String(w))
			continue
		}
		// Only the first rune changes: "userProfile" -> "UserProfile".
		_, size := utf8.DecodeRuneInString(w)
		b.WriteString(upper.String(w[:size]))
		b.WriteString(w[size:])
	}
	name := b.String()
	if first := []rune(name)[0]; !unicode.IsLetter(first) {
		name = prefix + name
	}
	return name
}
