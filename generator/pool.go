package generator

import (
	"bytes"
	"sync"
)

const (
	// bytesPerType is the rough rendered size of one struct with its fields
	bytesPerType = 768
	// maxPooledBuffer caps what goes back into the pool
	maxPooledBuffer = 1 << 20
)

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// getTemplateBuffer returns an empty buffer with room for typeCount structs.
func getTemplateBuffer(typeCount int) *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	buf.Grow((typeCount + 1) * bytesPerType)
	return buf
}

func putTemplateBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledBuffer {
		return
	}
	bufferPool.Put(buf)
}
