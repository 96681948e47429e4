// Package pool provides sync.Pool wrappers for reducing GC pressure during
// tree construction and traversal.
package pool

import (
	"strconv"
	"sync"
)

// PathBuilder provides efficient path string building for element locations
// and display paths. It uses a byte buffer that grows as needed and can be
// reused via sync.Pool.
type PathBuilder struct {
	buf []byte
}

var pathBuilderPool = sync.Pool{
	New: func() any {
		return &PathBuilder{
			buf: make([]byte, 0, 128),
		}
	},
}

// AcquirePathBuilder gets a PathBuilder from the pool.
// Call Release() when done to return it to the pool.
func AcquirePathBuilder() *PathBuilder {
	pb := pathBuilderPool.Get().(*PathBuilder)
	pb.Reset()
	return pb
}

// Release returns the PathBuilder to the pool.
func (b *PathBuilder) Release() {
	if b == nil {
		return
	}
	// Don't return oversized buffers to the pool
	if cap(b.buf) <= 4096 {
		pathBuilderPool.Put(b)
	}
}

// Reset clears the buffer without deallocating.
func (b *PathBuilder) Reset() {
	b.buf = b.buf[:0]
}

// Len returns the current length of the path.
func (b *PathBuilder) Len() int {
	return len(b.buf)
}

// WriteString appends a string to the path.
func (b *PathBuilder) WriteString(s string) {
	b.buf = append(b.buf, s...)
}

// Segment appends ".name" to the path, or just "name" when the buffer is
// empty (the root segment carries no leading dot).
func (b *PathBuilder) Segment(name string) {
	if len(b.buf) > 0 {
		b.buf = append(b.buf, '.')
	}
	b.buf = append(b.buf, name...)
}

// Index appends an array index in brackets, "[n]".
func (b *PathBuilder) Index(index int) {
	b.buf = append(b.buf, '[')
	b.buf = strconv.AppendInt(b.buf, int64(index), 10)
	b.buf = append(b.buf, ']')
}

// String returns the built path as a string.
// This creates a single allocation for the final string.
func (b *PathBuilder) String() string {
	return string(b.buf)
}

// ChildPath builds "parent.name[index]" in one call, the common case when
// constructing a child location. A negative index suppresses the bracket
// suffix, which is how singleton display paths are produced.
func ChildPath(parent, name string, index int) string {
	pb := AcquirePathBuilder()
	defer pb.Release()
	pb.WriteString(parent)
	pb.Segment(name)
	if index >= 0 {
		pb.Index(index)
	}
	return pb.String()
}
