// File: core/buffer/iobuffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Compacting byte buffer: the portable fallback for platforms without
// a memory aliasing primitive. Instead of mirroring pages, Prepare
// slides the unread bytes to the front of a plain allocation when the
// tail room runs short, so the granted slab is always contiguous at
// the cost of a bounded copy.
//
// No concurrent operations are allowed; unlike LinearRing there is no
// SPSC variant.

package buffer

import (
	"iter"

	"github.com/momentics/linearbuf/api"
)

// View treats an arbitrary caller-owned byte region as a compacting
// buffer. It performs no allocations of its own.
type View struct {
	buf  []byte
	head int
	tail int
}

// NewView wraps data as a compacting buffer view.
func NewView(data []byte) *View {
	return &View{buf: data}
}

// Assign replaces the underlying region and resets the cursor.
func (v *View) Assign(data []byte) {
	v.buf = data
	v.head = 0
	v.tail = 0
}

// Prepare returns a writable slab of up to n contiguous bytes,
// compacting the live bytes to the front first if the tail room is
// short. The returned slab may be smaller than requested.
func (v *View) Prepare(n int) []byte {
	if n > len(v.buf)-v.tail {
		// Make as much room as we can.
		size := v.tail - v.head
		copy(v.buf, v.buf[v.head:v.tail])
		v.head = 0
		v.tail = size
	}
	if n > len(v.buf)-v.tail {
		n = len(v.buf) - v.tail
	}
	return v.buf[v.tail : v.tail+n]
}

// Commit declares that n bytes were written into the last slab.
func (v *View) Commit(n int) {
	if n < 0 || v.tail+n > len(v.buf) {
		panic("buffer: commit exceeds prepared room")
	}
	v.tail += n
}

// ReadHead returns the live bytes as one contiguous slice.
func (v *View) ReadHead() []byte {
	return v.buf[v.head:v.tail]
}

// Consume declares that n bytes from ReadHead were processed. Once
// everything is consumed the cursor snaps back to the front so the
// next Prepare gets the whole region without compacting.
func (v *View) Consume(n int) {
	if n < 0 || n > v.Size() {
		panic("buffer: consume exceeds size")
	}
	v.head += n
	if v.head >= v.tail {
		v.head = 0
		v.tail = 0
	}
}

// Size returns the number of buffered bytes.
func (v *View) Size() int {
	return v.tail - v.head
}

// FreeSize returns the number of bytes a Prepare can open up.
func (v *View) FreeSize() int {
	return len(v.buf) - v.Size()
}

// Capacity returns the fixed size of the underlying region.
func (v *View) Capacity() int {
	return len(v.buf)
}

// Empty reports whether no bytes are buffered.
func (v *View) Empty() bool {
	return v.head == v.tail
}

// Clear resets the cursor without touching storage contents.
func (v *View) Clear() {
	v.head = 0
	v.tail = 0
}

// Seq returns a lazy, restartable iteration over the live bytes.
func (v *View) Seq() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for _, b := range v.ReadHead() {
			if !yield(b) {
				return
			}
		}
	}
}

// IOBuffer is a View that owns its storage.
type IOBuffer struct {
	View
}

// NewIOBuffer allocates a compacting buffer of exactly size bytes.
func NewIOBuffer(size int) (*IOBuffer, error) {
	if size <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument,
			"buffer size must be positive").
			WithContext("size", size)
	}
	b := &IOBuffer{}
	b.Assign(make([]byte, size))
	return b, nil
}

var (
	_ api.StreamBuffer = (*View)(nil)
	_ api.StreamBuffer = (*IOBuffer)(nil)
)
