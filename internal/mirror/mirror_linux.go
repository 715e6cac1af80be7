// File: internal/mirror/mirror_linux.go
//go:build linux
// +build linux

//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux mirror mapping via mmap/mremap.
//
// Protocol: reserve an anonymous shared window of 2x size, shrink it
// in place to x keeping its base address, then mremap(old_size=0) a
// second mapping of the same pages with the hint placed directly after
// the primary half. mremap without MREMAP_FIXED treats the placement
// as a hint only; forcing it with MREMAP_FIXED could silently destroy
// unrelated mappings, so a misplaced alias is unmapped and reported as
// ErrTryAgain instead.

package mirror

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/momentics/linearbuf/api"
)

const aliasingSupported = true

func acquire(bytes int) (*Region, error) {
	size := uintptr(bytes)

	// Reserve twice the buffer size, zero-filled, not file-backed.
	// MAP_SHARED is required: a private anonymous mapping cannot be
	// aliased by mremap.
	base, err := unix.MmapPtr(-1, 0, nil, 2*size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, outOfMemory("mmap reservation failed", err, bytes)
	}

	// Shrink to the actual buffer size, keeping the base address.
	// This frees the upper half of the reservation.
	if _, err := unix.MremapPtr(base, 2*size, nil, size, 0); err != nil {
		_ = unix.MunmapPtr(base, 2*size)
		return nil, outOfMemory("mremap shrink failed", err, bytes)
	}

	// Map a second view of the same physical pages right after the
	// primary half. old_size == 0 duplicates instead of moving.
	want := unsafe.Add(base, bytes)
	alias, err := unix.MremapPtr(base, 0, want, size, unix.MREMAP_MAYMOVE)
	if err != nil {
		_ = unix.MunmapPtr(base, size)
		return nil, outOfMemory("mremap alias failed", err, bytes)
	}

	if alias != want {
		// Another thread grabbed the freed range between the shrink
		// and the alias. Transient: give everything back and let the
		// caller retry.
		_ = unix.MunmapPtr(alias, size)
		_ = unix.MunmapPtr(base, size)
		return nil, api.NewError(api.ErrCodeTryAgain,
			"lost placement race for the mirror half").
			WithContext("bytes", bytes)
	}

	data := unsafe.Slice((*byte)(base), 2*bytes)

	// Sanity check the alias in both directions. A failure here means
	// the kernel's aliasing guarantee is broken, which is not a
	// recoverable condition.
	data[0] = 'x'
	if data[bytes] != 'x' {
		panic("mirror: write through primary half not visible in alias")
	}
	data[bytes] = 'y'
	if data[0] != 'y' {
		panic("mirror: write through alias half not visible in primary")
	}
	data[0] = 0

	return &Region{data: data, capacity: bytes}, nil
}

func release(r *Region) error {
	base := unsafe.Pointer(unsafe.SliceData(r.data))
	size := uintptr(r.capacity)
	err1 := unix.MunmapPtr(base, size)
	err2 := unix.MunmapPtr(unsafe.Add(base, r.capacity), size)
	if err1 != nil {
		return err1
	}
	return err2
}

// outOfMemory folds every allocation-step failure into the OutOfMemory
// kind; memory, mapping-table and descriptor ceilings are
// indistinguishable to the caller anyway.
func outOfMemory(msg string, cause error, bytes int) *api.Error {
	return api.NewError(api.ErrCodeOutOfMemory, msg).
		WithContext("bytes", bytes).
		WithContext("errno", cause)
}
