package pathutil

import (
	"net/url"
	"strings"
)

// RefPrefixDefinitions is where the serializer places named object schemas.
const RefPrefixDefinitions = "#/definitions/"

// DefinitionRef builds "#/definitions/{name}".
func DefinitionRef(name string) string {
	return RefPrefixDefinitions + EscapeSegment(name)
}

// SplitRef splits a $ref into its file part and its JSON Pointer part.
// "#/a/b" yields ("", "/a/b"); "other.json#/a" yields ("other.json", "/a");
// a ref without '#' is all file part.
func SplitRef(ref string) (file, pointer string) {
	file, pointer, _ = strings.Cut(ref, "#")
	return file, pointer
}

// Segments splits a JSON Pointer into unescaped reference tokens.
// Percent-encoding from URI fragments is decoded first.
func Segments(pointer string) []string {
	if decoded, err := url.PathUnescape(pointer); err == nil {
		pointer = decoded
	}
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return nil
	}
	parts := strings.Split(pointer, "/")
	for i, part := range parts {
		parts[i] = UnescapeSegment(part)
	}
	return parts
}

// JoinRef builds a local $ref ("#/a/b") from unescaped tokens.
func JoinRef(segments ...string) string {
	var b strings.Builder
	b.WriteByte('#')
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(EscapeSegment(s))
	}
	return b.String()
}

// EscapeSegment escapes a reference token (~ to ~0, / to ~1).
func EscapeSegment(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// UnescapeSegment reverses EscapeSegment. Order matters: ~1 first, then ~0.
func UnescapeSegment(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

// LastSegment returns the final unescaped token of a $ref, or "" for the root.
func LastSegment(ref string) string {
	_, ptr := SplitRef(ref)
	segs := Segments(ptr)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}
