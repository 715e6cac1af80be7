// File: core/buffer/linear.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Mirror-mapped linear ring buffer.
//
// Data layout, from the outside always a flat array:
//
//	     (head)  <-- size -->    (tail)
//	      v                       v
//	/-----------------------------------|-------------------------------\
//	|  buffer area                      | mirror of buffer area         |
//	\-----------------------------------|-------------------------------/
//	 <---------- capacity ------------->
//
// head and tail stay in [0, capacity); the byte at offset head+i for
// i < size is readable at exactly that offset even when head+i crosses
// the capacity boundary, because the upper half of the window aliases
// the lower half.

package buffer

import (
	"iter"

	"github.com/momentics/linearbuf/api"
	"github.com/momentics/linearbuf/internal/mirror"
)

// Ring is the cursor over a mirror-mapped region, generic over the
// synchronization behavior of its live-byte count. Use the LinearRing
// and LinearRingST instantiations rather than Ring directly.
//
// A Ring value is handled by pointer and never copied: the region
// handle cannot be duplicated without re-running the whole acquisition
// protocol. Swap transfers ownership between two values; Close returns
// a value to the uninitialized placeholder state.
type Ring[C any, P counter[C]] struct {
	region   *mirror.Region
	data     []byte // 2x window
	capacity int
	head     int
	tail     int
	size     C
}

// LinearRing is the cross-goroutine instantiation: one producer
// goroutine (WriteHead/Prepare/FreeSize/Commit) and one consumer
// goroutine (ReadHead/Size/Consume) may run concurrently without a
// lock. Multiple producers or multiple consumers must serialize
// externally.
type LinearRing = Ring[atomicCount, *atomicCount]

// LinearRingST is the single-goroutine instantiation; it avoids paying
// for atomic updates of the live-byte count.
type LinearRingST = Ring[serialCount, *serialCount]

// MirrorSupported reports whether this platform can back a LinearRing.
// Where it cannot, use IOBuffer instead.
func MirrorSupported() bool {
	return mirror.Supported()
}

// New acquires storage eagerly and returns a ready buffer, or a
// *api.Error carrying ErrCodeInvalidArgument, ErrCodeOutOfMemory,
// ErrCodeTryAgain or ErrCodeNotSupported.
func New(minSize int) (*LinearRing, error) {
	rb := &LinearRing{}
	if err := rb.Initialize(minSize); err != nil {
		return nil, err
	}
	return rb, nil
}

// NewST is New for the single-goroutine instantiation.
func NewST(minSize int) (*LinearRingST, error) {
	rb := &LinearRingST{}
	if err := rb.Initialize(minSize); err != nil {
		return nil, err
	}
	return rb, nil
}

// NewDelayed returns an uninitialized placeholder. Only Initialize may
// be called on it; every other operation is a contract violation until
// Initialize succeeds.
func NewDelayed() *LinearRing {
	return &LinearRing{}
}

// NewDelayedST is NewDelayed for the single-goroutine instantiation.
func NewDelayedST() *LinearRingST {
	return &LinearRingST{}
}

// Initialize runs the storage acquisition protocol exactly once.
// minSize is rounded up to the platform page size. On failure the
// buffer stays in the placeholder state and Initialize may be retried;
// ErrTryAgain in particular means the alias placement race was lost
// and a retry is expected to succeed, ideally before other goroutines
// create mappings.
func (r *Ring[C, P]) Initialize(minSize int) error {
	if r.region != nil {
		return api.NewError(api.ErrCodeInvalidArgument,
			"buffer is already initialized")
	}
	region, err := mirror.Map(minSize)
	if err != nil {
		return err
	}
	r.region = region
	r.data = region.Bytes()
	r.capacity = region.Capacity()
	r.head = 0
	r.tail = 0
	P(&r.size).store(0)
	return nil
}

// Close releases both halves of the region together and reverts the
// buffer to the uninitialized placeholder state. Safe to call twice;
// Initialize may be called again afterwards.
func (r *Ring[C, P]) Close() error {
	if r.region == nil {
		return nil
	}
	err := r.region.Unmap()
	r.region = nil
	r.data = nil
	r.capacity = 0
	r.head = 0
	r.tail = 0
	P(&r.size).store(0)
	return err
}

// Swap exchanges ownership of storage and cursor state with other.
// Neither buffer may be in use by another goroutine during the swap.
func (r *Ring[C, P]) Swap(other *Ring[C, P]) {
	r.region, other.region = other.region, r.region
	r.data, other.data = other.data, r.data
	r.capacity, other.capacity = other.capacity, r.capacity
	r.head, other.head = other.head, r.head
	r.tail, other.tail = other.tail, r.tail
	a, b := P(&r.size).load(), P(&other.size).load()
	P(&r.size).store(b)
	P(&other.size).store(a)
}

// WriteHead returns the full writable window: FreeSize contiguous
// bytes starting at the tail, with no wrap handling needed.
func (r *Ring[C, P]) WriteHead() []byte {
	return r.data[r.tail : r.tail+r.FreeSize()]
}

// Prepare returns a writable slab of up to n bytes. For a mirror ring
// the whole free window is already contiguous, so this is WriteHead
// capped to n.
func (r *Ring[C, P]) Prepare(n int) []byte {
	slab := r.WriteHead()
	if n < len(slab) {
		slab = slab[:n]
	}
	return slab
}

// Commit declares that n bytes were written at WriteHead. n must not
// exceed FreeSize; over-committing is a programmer error and panics.
func (r *Ring[C, P]) Commit(n int) {
	if n == 0 {
		return
	}
	if n < 0 || n > r.FreeSize() {
		panic("buffer: commit exceeds free size")
	}
	r.tail = (r.tail + n) % r.capacity
	// The count is published after the bytes; with the atomic counter
	// this is the release half of the SPSC pairing.
	P(&r.size).add(n)
}

// ReadHead returns the live bytes: Size contiguous bytes starting at
// the head, with no wrap handling needed.
func (r *Ring[C, P]) ReadHead() []byte {
	return r.data[r.head : r.head+P(&r.size).load()]
}

// Consume declares that n bytes from ReadHead were processed. n must
// not exceed Size; over-consuming is a programmer error and panics.
func (r *Ring[C, P]) Consume(n int) {
	if n == 0 {
		return
	}
	if n < 0 || n > P(&r.size).load() {
		panic("buffer: consume exceeds size")
	}
	r.head = (r.head + n) % r.capacity
	P(&r.size).add(-n)
}

// Size returns the number of buffered bytes.
func (r *Ring[C, P]) Size() int {
	return P(&r.size).load()
}

// FreeSize returns the number of bytes that can be committed.
func (r *Ring[C, P]) FreeSize() int {
	return r.capacity - P(&r.size).load()
}

// Capacity returns the logical capacity; a multiple of the page size,
// fixed after successful initialization.
func (r *Ring[C, P]) Capacity() int {
	return r.capacity
}

// Empty reports whether no bytes are buffered.
func (r *Ring[C, P]) Empty() bool {
	return P(&r.size).load() == 0
}

// Clear resets the cursor without touching storage contents.
func (r *Ring[C, P]) Clear() {
	r.head = 0
	r.tail = 0
	P(&r.size).store(0)
}

// Seq returns a lazy, restartable iteration over the live bytes in
// order from head to tail. Iterating does not mutate cursor state.
func (r *Ring[C, P]) Seq() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for _, b := range r.ReadHead() {
			if !yield(b) {
				return
			}
		}
	}
}

var (
	_ api.StreamBuffer = (*LinearRing)(nil)
	_ api.StreamBuffer = (*LinearRingST)(nil)
)
