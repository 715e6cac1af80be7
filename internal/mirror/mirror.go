// File: internal/mirror/mirror.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Mirror-mapped memory regions: a virtual window of 2x capacity whose
// upper half aliases the physical pages of the lower half. A byte
// stored at offset i is readable at offset i+capacity and vice versa,
// which lets a ring buffer expose wrapped contents as one flat range.
//
// Acquisition is the only fallible step in the library and runs a
// multi-step protocol with full rollback: reserve twice the size,
// shrink in place, then remap an alias directly after the primary
// half. The alias step races against unrelated threads mapping into
// the same address range; losing that race yields ErrTryAgain. The
// documented mitigation is to acquire regions before the process
// spawns threads that create mappings.

package mirror

import (
	"math"
	"os"

	"github.com/momentics/linearbuf/api"
)

// Region owns a mirror-mapped virtual memory window.
type Region struct {
	data     []byte // full 2x window, nil after Unmap
	capacity int    // logical half size, page-aligned
}

// Supported reports whether this platform provides the aliasing
// primitive. Where it does not, callers fall back to the compacting
// buffer.
func Supported() bool {
	return aliasingSupported
}

// Map acquires a mirror-mapped region of at least minSize usable
// bytes, rounded up to the platform page size. On failure no mappings
// are leaked and the returned error carries an api.ErrorCode.
func Map(minSize int) (*Region, error) {
	pageSize := os.Getpagesize()

	if minSize <= 0 {
		return nil, api.NewError(api.ErrCodeInvalidArgument,
			"region size must be positive").
			WithContext("min_size", minSize)
	}
	if minSize > math.MaxInt-pageSize+1 {
		return nil, api.NewError(api.ErrCodeInvalidArgument,
			"region size overflows when page-rounded").
			WithContext("min_size", minSize)
	}

	// Round up to the nearest multiple of the page size.
	bytes := (minSize + pageSize - 1) &^ (pageSize - 1)

	// The doubled window must still fit the address width.
	if bytes > math.MaxInt/2 {
		return nil, api.NewError(api.ErrCodeInvalidArgument,
			"doubled region size overflows").
			WithContext("bytes", bytes)
	}

	return acquire(bytes)
}

// Bytes returns the full 2x window. Offsets [capacity, 2*capacity)
// alias offsets [0, capacity).
func (r *Region) Bytes() []byte {
	return r.data
}

// Capacity returns the logical (non-aliased) size in bytes.
func (r *Region) Capacity() int {
	return r.capacity
}

// Unmap releases both halves of the window. Safe to call twice; the
// region must not be used afterwards.
func (r *Region) Unmap() error {
	if r.data == nil {
		return nil
	}
	err := release(r)
	r.data = nil
	r.capacity = 0
	return err
}
