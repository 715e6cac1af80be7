// File: pool/ringpool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded free list of mirror-mapped ring buffers. All rings in one
// pool share the same sizing request, so any free ring can satisfy
// any Get.

package pool

import (
	"sync/atomic"

	"github.com/momentics/linearbuf/api"
	"github.com/momentics/linearbuf/core/buffer"
)

// Stats aggregates ring allocation/reuse accounting.
type Stats struct {
	TotalAlloc int64 // rings acquired from the OS
	TotalFree  int64 // rings released back to the OS
	InUse      int64 // rings currently handed out
}

// RingPool hands out ready-to-use LinearRings, re-running the
// acquisition protocol only when the free list is empty.
type RingPool struct {
	minSize    int
	free       chan *buffer.LinearRing
	totalAlloc atomic.Int64
	totalFree  atomic.Int64
	inUse      atomic.Int64
}

// NewRingPool creates a pool of rings sized at least minSize bytes,
// keeping at most maxIdle released rings mapped.
func NewRingPool(minSize, maxIdle int) *RingPool {
	if maxIdle < 1 {
		maxIdle = 1
	}
	return &RingPool{
		minSize: minSize,
		free:    make(chan *buffer.LinearRing, maxIdle),
	}
}

// Get returns a cleared, initialized ring. Acquisition failures
// surface the usual *api.Error kinds.
func (p *RingPool) Get() (*buffer.LinearRing, error) {
	select {
	case rb := <-p.free:
		rb.Clear()
		p.inUse.Add(1)
		return rb, nil
	default:
	}
	rb, err := buffer.New(p.minSize)
	if err != nil {
		return nil, err
	}
	p.totalAlloc.Add(1)
	p.inUse.Add(1)
	return rb, nil
}

// Put returns a ring to the free list, unmapping it if the list is
// full. The ring must not be used afterwards.
func (p *RingPool) Put(rb *buffer.LinearRing) {
	if rb == nil || rb.Capacity() == 0 {
		return
	}
	p.inUse.Add(-1)
	rb.Clear()
	select {
	case p.free <- rb:
	default:
		_ = rb.Close()
		p.totalFree.Add(1)
	}
}

// Drain unmaps every idle ring. Rings still handed out are the
// holders' responsibility.
func (p *RingPool) Drain() {
	for {
		select {
		case rb := <-p.free:
			_ = rb.Close()
			p.totalFree.Add(1)
		default:
			return
		}
	}
}

// Stats exposes allocation/reuse accounting.
func (p *RingPool) Stats() Stats {
	return Stats{
		TotalAlloc: p.totalAlloc.Load(),
		TotalFree:  p.totalFree.Load(),
		InUse:      p.inUse.Load(),
	}
}

// Default pool, sized at the recommended request.

var defaultPool = NewRingPool(api.DefaultMinSize, 16)

// Default returns a process-wide pool so components reuse rings
// instead of fragmenting the address space with one-off mappings.
func Default() *RingPool {
	return defaultPool
}
