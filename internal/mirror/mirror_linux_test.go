// File: internal/mirror/mirror_linux_test.go
//go:build linux
// +build linux

//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package mirror

import (
	"os"
	"testing"
)

func TestMapAliasVisibility(t *testing.T) {
	reg, err := Map(4096)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	defer reg.Unmap()

	capacity := reg.Capacity()
	if capacity < 4096 {
		t.Fatalf("capacity %d below request", capacity)
	}
	if capacity%os.Getpagesize() != 0 {
		t.Fatalf("capacity %d not page-aligned", capacity)
	}
	data := reg.Bytes()
	if len(data) != 2*capacity {
		t.Fatalf("window is %d bytes, want %d", len(data), 2*capacity)
	}

	// Writes through the primary half must be visible in the alias
	// half and vice versa, at matching offsets.
	for _, off := range []int{0, 1, capacity / 2, capacity - 1} {
		data[off] = 0xAB
		if data[off+capacity] != 0xAB {
			t.Fatalf("offset %d: primary write not visible in alias", off)
		}
		data[off+capacity] = 0xCD
		if data[off] != 0xCD {
			t.Fatalf("offset %d: alias write not visible in primary", off)
		}
	}
}

func TestMapRoundsUpToPageSize(t *testing.T) {
	reg, err := Map(1)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	defer reg.Unmap()
	if got, want := reg.Capacity(), os.Getpagesize(); got != want {
		t.Errorf("capacity = %d, want one page (%d)", got, want)
	}
}

func TestUnmapIsIdempotent(t *testing.T) {
	reg, err := Map(4096)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if err := reg.Unmap(); err != nil {
		t.Fatalf("first Unmap: %v", err)
	}
	if err := reg.Unmap(); err != nil {
		t.Fatalf("second Unmap: %v", err)
	}
	if reg.Bytes() != nil || reg.Capacity() != 0 {
		t.Error("region not reset after Unmap")
	}
}
