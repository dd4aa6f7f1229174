package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinPath(t *testing.T) {
	tests := []struct {
		segments []string
		want     string
	}{
		{nil, ""},
		{[]string{"Pet"}, "Pet"},
		{[]string{"Pet", "owner"}, "Pet.owner"},
		{[]string{"", "Pet", "", "tags", "items"}, "Pet.tags.items"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, JoinPath(tt.segments...), "JoinPath(%v)", tt.segments)
	}
}

func BenchmarkJoinPath(b *testing.B) {
	segments := []string{"Store", "pets", "items", "owner", "address"}
	for b.Loop() {
		_ = JoinPath(segments...)
	}
}
