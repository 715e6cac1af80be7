// File: core/buffer/counter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Live-byte counters parameterizing the ring cursor. The serial
// counter is a plain integer for strictly single-goroutine use; the
// atomic counter carries the release/acquire pairing that makes the
// single-producer/single-consumer discipline safe: the producer's
// Commit publishes the count only after the bytes are written, so a
// consumer that observes the count also observes the bytes.

package buffer

import "sync/atomic"

// counter constrains the synchronization behavior of the live-byte
// count. Implemented by *serialCount and *atomicCount.
type counter[C any] interface {
	*C
	load() int
	add(delta int)
	store(v int)
}

// serialCount is an ordinary integer counter. Cheapest; only legal
// when producer and consumer run on the same goroutine.
type serialCount struct {
	n int
}

func (c *serialCount) load() int     { return c.n }
func (c *serialCount) add(delta int) { c.n += delta }
func (c *serialCount) store(v int)   { c.n = v }

// atomicCount is an independently synchronizable counter for the
// cross-goroutine SPSC case.
type atomicCount struct {
	n atomic.Int64
}

func (c *atomicCount) load() int     { return int(c.n.Load()) }
func (c *atomicCount) add(delta int) { c.n.Add(int64(delta)) }
func (c *atomicCount) store(v int)   { c.n.Store(int64(v)) }
