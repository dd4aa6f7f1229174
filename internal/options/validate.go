// Package options checks that an operation was given exactly one input.
package options

import (
	"errors"
	"strings"
)

// Source is one way of supplying an input, named as the caller would spell
// it: an option function, a tool field or a flag.
type Source struct {
	Name string
	Set  bool
}

// From returns a Source.
func From(name string, set bool) Source {
	return Source{Name: name, Set: set}
}

// ExactlyOne returns an error unless exactly one source is set. A non-empty
// prefix starts the message, e.g. "parser".
func ExactlyOne(prefix string, sources ...Source) error {
	names := make([]string, 0, len(sources))
	var set []string
	for _, s := range sources {
		names = append(names, s.Name)
		if s.Set {
			set = append(set, s.Name)
		}
	}
	if len(set) == 1 {
		return nil
	}

	var b strings.Builder
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteString(": ")
	}
	b.WriteString("exactly one of ")
	b.WriteString(alternatives(names))
	b.WriteString(" must be provided")
	if len(set) > 1 {
		b.WriteString(", got ")
		b.WriteString(strings.Join(set, " and "))
	}
	return errors.New(b.String())
}

// alternatives renders names as "a", "a or b" or "a, b or c".
func alternatives(names []string) string {
	switch len(names) {
	case 0:
		return "an input"
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
