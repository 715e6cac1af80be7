// File: relay/relay.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Relay pumps a byte stream from a source to a sink through a
// StreamBuffer, using the flat read/write windows directly as the IO
// slabs. This is the canonical consumer of the four-operation buffer
// contract: read into Prepare, Commit what arrived, write out
// ReadHead, Consume what left.

package relay

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/momentics/linearbuf/api"
)

// defaultBlockSize caps a single read slab.
const defaultBlockSize = 32 * 1024

// Relay moves bytes between a reader and a writer through one buffer.
// Run drives the pump on the calling goroutine; the counters and the
// throughput meter may be read concurrently from other goroutines.
type Relay struct {
	buf       api.StreamBuffer
	blockSize int

	readBytes    atomic.Int64
	writtenBytes atomic.Int64

	meter *meter
}

// Option configures a Relay.
type Option func(*Relay)

// WithBlockSize caps the slab requested per read. Values below one
// are ignored.
func WithBlockSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.blockSize = n
		}
	}
}

// WithWindow sets the number of Tick samples averaged by Rate.
func WithWindow(samples int) Option {
	return func(r *Relay) {
		if samples > 0 {
			r.meter = newMeter(samples)
		}
	}
}

// New wraps buf in a relay. The buffer must be ready for use and must
// not be shared with other components while the relay runs.
func New(buf api.StreamBuffer, opts ...Option) *Relay {
	r := &Relay{
		buf:       buf,
		blockSize: defaultBlockSize,
		meter:     newMeter(8),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run pumps src into dst until src is exhausted, then flushes the
// remaining buffered bytes. Returns nil on a clean EOF.
func (r *Relay) Run(src io.Reader, dst io.Writer) error {
	for {
		slab := r.buf.Prepare(r.blockSize)
		if len(slab) == 0 {
			if r.buf.Size() == 0 {
				return fmt.Errorf("relay: buffer has no capacity")
			}
			// Buffer full; drain before reading more.
			if err := r.flush(dst); err != nil {
				return err
			}
			continue
		}

		n, err := src.Read(slab)
		if n > 0 {
			r.buf.Commit(n)
			r.readBytes.Add(int64(n))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("relay read: %w", err)
		}

		if err := r.writeOnce(dst); err != nil {
			return err
		}
	}
	return r.flush(dst)
}

// writeOnce pushes the current live window to dst in one write call.
func (r *Relay) writeOnce(dst io.Writer) error {
	live := r.buf.ReadHead()
	if len(live) == 0 {
		return nil
	}
	n, err := dst.Write(live)
	if n > 0 {
		r.buf.Consume(n)
		r.writtenBytes.Add(int64(n))
	}
	if err != nil {
		return fmt.Errorf("relay write: %w", err)
	}
	return nil
}

// flush drains every buffered byte to dst.
func (r *Relay) flush(dst io.Writer) error {
	for r.buf.Size() > 0 {
		if err := r.writeOnce(dst); err != nil {
			return err
		}
	}
	return nil
}

// ReadBytes returns the total number of bytes pulled from the source.
func (r *Relay) ReadBytes() int64 {
	return r.readBytes.Load()
}

// WrittenBytes returns the total number of bytes pushed to the sink.
func (r *Relay) WrittenBytes() int64 {
	return r.writtenBytes.Load()
}

// Tick records a throughput sample. Call it at a fixed interval; Rate
// then reports windowed bytes-per-interval figures.
func (r *Relay) Tick() {
	r.meter.observe(r.readBytes.Load(), r.writtenBytes.Load())
}

// Rate returns the windowed average read and write throughput in
// bytes per Tick interval.
func (r *Relay) Rate() (readRate, writeRate int64) {
	return r.meter.rate()
}
