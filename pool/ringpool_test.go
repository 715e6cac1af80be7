// File: pool/ringpool_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool_test

import (
	"testing"

	"github.com/momentics/linearbuf/core/buffer"
	"github.com/momentics/linearbuf/pool"
)

func TestRingPoolReuse(t *testing.T) {
	if !buffer.MirrorSupported() {
		t.Skip("mirror mapping not supported on this platform")
	}
	p := pool.NewRingPool(4096, 4)

	rb1, err := p.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	copy(rb1.Prepare(3), "xyz")
	rb1.Commit(3)
	p.Put(rb1)

	rb2, err := p.Get()
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	defer p.Put(rb2)

	// The pooled ring comes back cleared, without a fresh mapping.
	if rb2.Size() != 0 {
		t.Error("pooled ring not cleared")
	}
	if stats := p.Stats(); stats.TotalAlloc != 1 {
		t.Errorf("TotalAlloc = %d, want 1 (reuse failed)", stats.TotalAlloc)
	}
}

func TestRingPoolAccounting(t *testing.T) {
	if !buffer.MirrorSupported() {
		t.Skip("mirror mapping not supported on this platform")
	}
	p := pool.NewRingPool(4096, 1)

	rb1, err := p.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	rb2, err := p.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stats := p.Stats(); stats.InUse != 2 || stats.TotalAlloc != 2 {
		t.Errorf("stats = %+v, want InUse=2 TotalAlloc=2", stats)
	}

	p.Put(rb1)
	p.Put(rb2) // free list full; this one is unmapped
	if stats := p.Stats(); stats.InUse != 0 || stats.TotalFree != 1 {
		t.Errorf("stats = %+v, want InUse=0 TotalFree=1", stats)
	}

	p.Drain()
	if stats := p.Stats(); stats.TotalFree != 2 {
		t.Errorf("TotalFree after Drain = %d, want 2", stats.TotalFree)
	}
}

func TestDefaultPoolIsShared(t *testing.T) {
	if pool.Default() != pool.Default() {
		t.Error("Default() returned distinct pools")
	}
}
