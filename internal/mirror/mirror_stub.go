// File: internal/mirror/mirror_stub.go
//go:build !linux
// +build !linux

//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub for platforms without a usable memory aliasing primitive.
// Callers are expected to fall back to the compacting buffer.

package mirror

import "github.com/momentics/linearbuf/api"

const aliasingSupported = false

func acquire(bytes int) (*Region, error) {
	return nil, api.NewError(api.ErrCodeNotSupported,
		"mirror mapping is not available on this platform").
		WithContext("bytes", bytes)
}

func release(r *Region) error {
	return nil
}
