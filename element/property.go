package element

import (
	"fmt"
	"regexp"

	"github.com/erraggy/schemagen/internal/pathutil"
)

// Property binds an element to a key of an object.
type Property struct {
	// Name is the normalized identifier the value is exposed under.
	Name string
	// Source is the JSON key the value is read from and written to.
	Source string
	// Required rejects values where the key is absent.
	Required bool
	// Element validates the value.
	Element *Element

	parent *Element
}

// Parent returns the object element that declares the property.
func (p *Property) Parent() *Element { return p.parent }

// Call validates value as this property's value. Pass NotProvided for an
// absent key: the element default is used if there is one, and otherwise a
// required property fails while an optional one returns NotProvided.
func (p *Property) Call(value any) (any, error) {
	return pathutil.Track(func(path *pathutil.PathBuilder) (any, error) {
		path.Push(p.Source)
		return p.call(value, path)
	})
}

func (p *Property) call(value any, path *pathutil.PathBuilder) (any, error) {
	el := p.Element
	if el == nil {
		el = Anything()
	}
	return el.call(value, p, path)
}

// PatternProperty applies an element to every key matching a pattern.
type PatternProperty struct {
	Pattern string
	Element *Element
	re      *regexp.Regexp
}

// NewPatternProperty compiles pattern and pairs it with el.
func NewPatternProperty(pattern string, el *Element) (*PatternProperty, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("element: invalid pattern %q: %w", pattern, err)
	}
	return &PatternProperty{Pattern: pattern, Element: el, re: re}, nil
}

// Matches reports whether key matches the pattern. Matching is unanchored.
func (pp *PatternProperty) Matches(key string) bool {
	return pp.re != nil && pp.re.MatchString(key)
}

// Dependency is one entry of the "dependencies" keyword: when key Name is
// present, either every key in Required must be present too, or the whole
// object must match Element.
type Dependency struct {
	Name     string
	Required []string
	Element  *Element
}
