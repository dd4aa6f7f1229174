package parser

import (
	"strconv"
	"strings"

	"github.com/erraggy/schemagen/document"
	"github.com/erraggy/schemagen/internal/naming"
	"github.com/erraggy/schemagen/internal/pathutil"
)

// schemaContainers are keywords whose value is a schema, a list of schemas
// or a name-to-schema map. Labelling descends only through these.
var schemaContainers = map[string]bool{
	"items":                true,
	"additionalItems":      true,
	"contains":             true,
	"properties":           true,
	"patternProperties":    true,
	"additionalProperties": true,
	"propertyNames":        true,
	"dependencies":         true,
	"definitions":          true,
	"$defs":                true,
	"anyOf":                true,
	"oneOf":                true,
	"allOf":                true,
	"not":                  true,
}

// pathWords maps container keywords to the word they add to a label.
// Keywords absent here add nothing.
var pathWords = map[string]string{
	"items":                "item",
	"additionalItems":      "item",
	"additionalProperties": "value",
	"patternProperties":    "value",
	"contains":             "item",
}

// DefaultTitleFunc derives a title from a JSON pointer by joining the
// property and definition names along it: "#/properties/owner/properties/address"
// becomes "OwnerAddress", "#/properties/tags/items" becomes "TagsItem" and
// the document root becomes "Root".
func DefaultTitleFunc(pointer string) string {
	_, ptr := pathutil.SplitRef(pointer)
	segs := pathutil.Segments(ptr)
	var words []string
	for i := 0; i < len(segs); i++ {
		seg := segs[i]
		switch {
		case seg == "properties" || seg == "definitions" || seg == "$defs" || seg == "dependencies":
			if i+1 < len(segs) {
				words = append(words, segs[i+1])
				i++
			}
		case seg == "patternProperties":
			// the pattern itself makes a poor name
			words = append(words, pathWords[seg])
			i++
		case pathWords[seg] != "":
			words = append(words, pathWords[seg])
		case isIndex(seg):
			words = append(words, seg)
		}
	}
	if len(words) == 0 {
		return "Root"
	}
	if isIndex(words[0]) {
		words = append([]string{"root"}, words...)
	}
	return naming.ToTypeName(strings.Join(words, " "))
}

func isIndex(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// LabelTitles gives every untitled object schema in doc a title built by
// titles from its JSON pointer. A nil titles uses DefaultTitleFunc. It
// returns the number of schemas labelled.
//
// Run it before dereferencing so that each schema is labelled by the
// pointer of its declaration rather than of a reference to it.
func LabelTitles(doc any, titles TitleFunc) int {
	if titles == nil {
		titles = DefaultTitleFunc
	}
	l := &labeller{titles: titles, seen: make(map[*document.Map]bool)}
	l.walk(doc, nil)
	return l.count
}

type labeller struct {
	titles TitleFunc
	seen   map[*document.Map]bool
	count  int
}

func (l *labeller) walk(node any, ptr []string) {
	m, ok := node.(*document.Map)
	if !ok || l.seen[m] {
		return
	}
	l.seen[m] = true
	if _, isRef := refOf(m); isRef {
		return
	}
	if _, titled := m.Get("title"); !titled && isObjectSchema(m) {
		if title := l.titles(pathutil.JoinRef(ptr...)); title != "" {
			m.Set("title", title)
			l.count++
		}
	}
	for key, value := range m.All() {
		if !schemaContainers[key] {
			continue
		}
		switch v := value.(type) {
		case []any:
			for i, item := range v {
				l.walk(item, at(ptr, key, strconv.Itoa(i)))
			}
		case *document.Map:
			if nameKeywords[key] {
				for name, item := range v.All() {
					l.walk(item, at(ptr, key, name))
				}
				continue
			}
			l.walk(v, at(ptr, key))
		}
	}
}

// isObjectSchema reports whether m parses to an object element, which
// needs a title.
func isObjectSchema(m *document.Map) bool {
	raw, _ := m.Get("type")
	switch t := raw.(type) {
	case string:
		return t == "object"
	case []any:
		for _, item := range t {
			if item == "object" {
				return true
			}
		}
	}
	return false
}
