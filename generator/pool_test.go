package generator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateBuffer_SizedForTypes(t *testing.T) {
	for _, n := range []int{0, 5, 40, 200} {
		buf := getTemplateBuffer(n)
		assert.GreaterOrEqual(t, buf.Cap(), (n+1)*bytesPerType)
		assert.Zero(t, buf.Len())
		putTemplateBuffer(buf)
	}
}

func TestTemplateBuffer_ReturnsEmptyBuffers(t *testing.T) {
	buf := getTemplateBuffer(1)
	buf.WriteString("type Pet struct{}")
	putTemplateBuffer(buf)

	again := getTemplateBuffer(1)
	assert.Zero(t, again.Len())
	putTemplateBuffer(again)

	assert.NotPanics(t, func() {
		putTemplateBuffer(nil)
		putTemplateBuffer(bytes.NewBuffer(make([]byte, 0, 2*maxPooledBuffer)))
	})
}

func BenchmarkTemplateBuffer(b *testing.B) {
	for b.Loop() {
		buf := getTemplateBuffer(25)
		buf.WriteString("package schema\n\ntype Pet struct{}\n")
		putTemplateBuffer(buf)
	}
}
