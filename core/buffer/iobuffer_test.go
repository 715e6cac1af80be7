// File: core/buffer/iobuffer_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/momentics/linearbuf/api"
	"github.com/momentics/linearbuf/core/buffer"
)

func TestIOBufferRoundTrip(t *testing.T) {
	iob, err := buffer.NewIOBuffer(512)
	if err != nil {
		t.Fatalf("NewIOBuffer: %v", err)
	}

	slab := iob.Prepare(100)
	if len(slab) != 100 {
		t.Fatalf("prepare(100) returned %d bytes", len(slab))
	}
	for i := range slab {
		slab[i] = byte(i)
	}
	iob.Commit(100)

	if iob.Size() != 100 {
		t.Fatalf("size = %d", iob.Size())
	}
	live := iob.ReadHead()
	for i := range live {
		if live[i] != byte(i) {
			t.Fatalf("byte %d corrupted", i)
		}
	}
	iob.Consume(100)
	if !iob.Empty() {
		t.Error("buffer not empty after full consume")
	}
}

// Prepare must slide unread bytes to the front when the tail room is
// short, without losing or reordering them.
func TestPrepareCompacts(t *testing.T) {
	iob, err := buffer.NewIOBuffer(128)
	if err != nil {
		t.Fatalf("NewIOBuffer: %v", err)
	}

	copy(iob.Prepare(128), bytes.Repeat([]byte{'a'}, 120))
	iob.Commit(120)
	iob.Consume(100) // 20 live bytes near the end

	slab := iob.Prepare(64)
	if len(slab) != 64 {
		t.Fatalf("prepare after compaction returned %d bytes, want 64", len(slab))
	}
	if got := iob.ReadHead(); !bytes.Equal(got, bytes.Repeat([]byte{'a'}, 20)) {
		t.Errorf("live bytes damaged by compaction: %q", got)
	}
}

func TestPrepareCapsAtCapacity(t *testing.T) {
	iob, err := buffer.NewIOBuffer(64)
	if err != nil {
		t.Fatalf("NewIOBuffer: %v", err)
	}
	copy(iob.Prepare(10), bytes.Repeat([]byte{'b'}, 10))
	iob.Commit(10)

	if slab := iob.Prepare(1000); len(slab) != 54 {
		t.Errorf("prepare(1000) returned %d bytes, want 54", len(slab))
	}
}

func TestViewOverCallerMemory(t *testing.T) {
	backing := make([]byte, 32)
	v := buffer.NewView(backing)

	copy(v.Prepare(5), "hello")
	v.Commit(5)
	if string(v.ReadHead()) != "hello" {
		t.Fatal("view round trip failed")
	}
	if !bytes.Equal(backing[:5], []byte("hello")) {
		t.Error("view did not write through to caller memory")
	}

	v.Clear()
	if v.Size() != 0 || v.FreeSize() != 32 {
		t.Error("clear did not reset view accounting")
	}
}

func TestNewIOBufferRejectsInvalidSizes(t *testing.T) {
	for _, size := range []int{0, -5} {
		if _, err := buffer.NewIOBuffer(size); !errors.Is(err, api.ErrInvalidArgument) {
			t.Errorf("NewIOBuffer(%d) = %v, want ErrInvalidArgument", size, err)
		}
	}
}

func TestIOBufferConsumeContractViolationPanics(t *testing.T) {
	iob, _ := buffer.NewIOBuffer(16)
	defer func() {
		if recover() == nil {
			t.Error("over-consume did not panic")
		}
	}()
	iob.Consume(1)
}
