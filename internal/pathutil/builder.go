package pathutil

import (
	"strconv"
	"strings"
)

// segment is one step of a path: a property key or an array index.
type segment struct {
	key   string
	index int
	isIdx bool
}

// PathBuilder builds instance paths incrementally.
// The zero value is an empty path ready to use.
type PathBuilder struct {
	segments []segment
}

// Push adds a property key.
func (p *PathBuilder) Push(key string) {
	p.segments = append(p.segments, segment{key: key})
}

// PushIndex adds an array index.
func (p *PathBuilder) PushIndex(i int) {
	p.segments = append(p.segments, segment{index: i, isIdx: true})
}

// Pop removes the last segment. Popping an empty path is a no-op.
func (p *PathBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	p.segments = p.segments[:len(p.segments)-1]
}

// Reset clears the builder for reuse.
func (p *PathBuilder) Reset() {
	p.segments = p.segments[:0]
}

// Len returns the number of segments.
func (p *PathBuilder) Len() int {
	if p == nil {
		return 0
	}
	return len(p.segments)
}

// String renders the path in dotted form: "pets[2].name".
func (p *PathBuilder) String() string {
	if p.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for i, s := range p.segments {
		switch {
		case s.isIdx:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
		case i > 0:
			b.WriteByte('.')
			b.WriteString(s.key)
		default:
			b.WriteString(s.key)
		}
	}
	return b.String()
}

// Pointer renders the path as a JSON Pointer: "/pets/2/name".
func (p *PathBuilder) Pointer() string {
	if p.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range p.segments {
		b.WriteByte('/')
		if s.isIdx {
			b.WriteString(strconv.Itoa(s.index))
		} else {
			b.WriteString(EscapeSegment(s.key))
		}
	}
	return b.String()
}
