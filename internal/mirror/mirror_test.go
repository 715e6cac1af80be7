// File: internal/mirror/mirror_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package mirror

import (
	"errors"
	"math"
	"testing"

	"github.com/momentics/linearbuf/api"
)

// Size validation runs before any allocation and must behave the same
// on every platform.
func TestMapRejectsInvalidSizes(t *testing.T) {
	cases := []struct {
		name    string
		minSize int
	}{
		{"zero", 0},
		{"negative", -1},
		{"page rounding overflow", math.MaxInt},
		{"doubling overflow", math.MaxInt/2 + 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg, err := Map(tc.minSize)
			if reg != nil {
				t.Fatalf("Map(%d) returned a region", tc.minSize)
			}
			if !errors.Is(err, api.ErrInvalidArgument) {
				t.Errorf("Map(%d) = %v, want ErrInvalidArgument", tc.minSize, err)
			}
		})
	}
}
