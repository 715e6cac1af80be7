// Package api
// Author: momentics <momentics@gmail.com>
//
// Byte-stream buffer contract for zero-copy IO call sites.
//
// The buffer hands out (slice, implicit length) pairs that can be passed
// directly to Read/Write style APIs; afterwards the caller reports how
// many bytes were actually transferred via Commit or Consume.

package api

// DefaultMinSize is the recommended buffer sizing request.
//
// "640KiB should be enough for everyone."
//   - Not Bill Gates.
const DefaultMinSize = 640 * 1024

// StreamBuffer is the four-operation contract shared by all buffer
// implementations in this library.
//
// Writing into the buffer:
//
//	slab := buf.Prepare(len(chunk))
//	n, _ := conn.Read(slab)
//	buf.Commit(n)
//
// Reading from the buffer:
//
//	n, _ := conn.Write(buf.ReadHead())
//	buf.Consume(n)
//
// All operations are synchronous, non-blocking and perform no IO.
type StreamBuffer interface {
	// Prepare returns a writable contiguous slab of up to n bytes.
	// The returned slab may be shorter than requested; its length is
	// never larger than FreeSize.
	Prepare(n int) []byte

	// Commit declares that n bytes were written into the last slab.
	// Committing more than FreeSize is a contract violation and panics.
	Commit(n int)

	// ReadHead returns the live bytes as one contiguous slice.
	ReadHead() []byte

	// Consume declares that n bytes from ReadHead were processed.
	// Consuming more than Size is a contract violation and panics.
	Consume(n int)

	// Size returns the number of buffered bytes.
	Size() int

	// FreeSize returns the number of bytes that can be committed.
	FreeSize() int

	// Capacity returns the fixed logical capacity in bytes.
	Capacity() int

	// Empty reports whether no bytes are buffered.
	Empty() bool

	// Clear resets the cursor without touching storage contents.
	Clear()
}
