package pathutil

import "sync"

// Builders that grew past maxPathCap segments are dropped instead of pooled.
const (
	defaultPathCap = 8
	maxPathCap     = 64
)

var pathBuilderPool = sync.Pool{
	New: func() any {
		return &PathBuilder{segments: make([]segment, 0, defaultPathCap)}
	},
}

// Track runs fn with an empty pooled PathBuilder and returns fn's results.
// The builder goes back to the pool when fn returns and must not be kept;
// errors that mention the path render it while fn runs.
func Track[T any](fn func(path *PathBuilder) (T, error)) (T, error) {
	p := pathBuilderPool.Get().(*PathBuilder)
	p.Reset()
	defer release(p)
	return fn(p)
}

func release(p *PathBuilder) {
	if cap(p.segments) > maxPathCap {
		return
	}
	pathBuilderPool.Put(p)
}
