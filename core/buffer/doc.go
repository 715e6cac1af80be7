// Package buffer
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Byte buffers that present their live contents as one contiguous
// range.
//
// LinearRing is a fixed-capacity ring buffer backed by a mirror-mapped
// memory region: the logical window [head, head+size) is always a
// single flat slice even when it wraps past the capacity boundary,
// because the upper half of the window aliases the physical pages of
// the lower half. Writes that logically wrap are, from the caller's
// perspective, simply contiguous.
//
// IOBuffer is the portable alternative for platforms without the
// aliasing primitive: it relocates unread bytes to the front of a
// plain allocation before granting new write space, trading a bounded
// copy for portability.
//
// Both satisfy api.StreamBuffer and are meant to sit between a byte
// source and a byte sink:
//
//	slab := buf.Prepare(32 * 1024)
//	n, _ := src.Read(slab)
//	buf.Commit(n)
//
//	n, _ = dst.Write(buf.ReadHead())
//	buf.Consume(n)
package buffer
