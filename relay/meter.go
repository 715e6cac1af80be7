// File: relay/meter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windowed throughput meter. Each observation turns the monotonic
// byte counters into per-interval deltas; the last `window` deltas are
// kept in a FIFO and averaged on demand.

package relay

import (
	"sync"

	"github.com/eapache/queue"
)

type sample struct {
	read    int64
	written int64
}

type meter struct {
	mu       sync.Mutex
	window   int
	samples  *queue.Queue
	lastRead int64
	lastWrit int64
}

func newMeter(window int) *meter {
	return &meter{
		window:  window,
		samples: queue.New(),
	}
}

func (m *meter) observe(totalRead, totalWritten int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.samples.Add(sample{
		read:    totalRead - m.lastRead,
		written: totalWritten - m.lastWrit,
	})
	m.lastRead = totalRead
	m.lastWrit = totalWritten

	for m.samples.Length() > m.window {
		m.samples.Remove()
	}
}

func (m *meter) rate() (readRate, writeRate int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.samples.Length()
	if n == 0 {
		return 0, 0
	}
	var read, written int64
	for i := 0; i < n; i++ {
		s := m.samples.Get(i).(sample)
		read += s.read
		written += s.written
	}
	return read / int64(n), written / int64(n)
}
