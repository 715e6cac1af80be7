// Package pool
// Author: momentics <momentics@gmail.com>
//
// Reuse of initialized mirror rings. Storage acquisition is an
// expensive, fallible multi-step protocol, so released rings are kept
// on a bounded free list instead of being unmapped and re-acquired.
// See ringpool.go for implementation details.
package pool
