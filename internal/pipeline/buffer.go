// Package pipeline provides the sample buffering used between the playback
// loop and pull-based audio outputs.
package pipeline

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by writes to a closed Ring.
var ErrClosed = errors.New("ring closed")

// Ring is a fixed-capacity circular buffer of float32 samples shared by one
// producer and one consumer. Write blocks while the ring is full; Read never
// blocks.
type Ring struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	drained  *sync.Cond
	data     []float32
	capacity int
	size     int
	readPos  int
	writePos int
	closed   bool
}

// NewRing creates a ring holding up to capacity samples.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}

	r := &Ring{
		data:     make([]float32, capacity),
		capacity: capacity,
	}
	r.notFull = sync.NewCond(&r.mu)
	r.drained = sync.NewCond(&r.mu)
	return r
}

// Write appends samples, waiting for the consumer whenever the ring is full.
// It returns ErrClosed if the ring is closed before all samples fit, or
// ctx.Err() if ctx ends first.
func (r *Ring) Write(ctx context.Context, samples []float32) error {
	stop := context.AfterFunc(ctx, r.wake)
	defer stop()

	r.mu.Lock()
	defer r.mu.Unlock()

	for len(samples) > 0 {
		for r.size == r.capacity && !r.closed && ctx.Err() == nil {
			r.notFull.Wait()
		}
		if r.closed {
			return ErrClosed
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		n := min(len(samples), r.capacity-r.size)
		// Write samples (may wrap around)
		first := copy(r.data[r.writePos:], samples[:n])
		copy(r.data, samples[first:n])
		r.writePos = (r.writePos + n) % r.capacity
		r.size += n
		samples = samples[n:]
	}
	return nil
}

// Read copies up to len(dst) samples into dst and returns how many were
// copied.
func (r *Ring) Read(dst []float32) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := min(len(dst), r.size)
	if n == 0 {
		return 0
	}

	// Read samples (may wrap around)
	first := copy(dst[:n], r.data[r.readPos:min(r.readPos+n, r.capacity)])
	copy(dst[first:n], r.data)
	r.readPos = (r.readPos + n) % r.capacity
	r.size -= n

	r.notFull.Broadcast()
	if r.size == 0 {
		r.drained.Broadcast()
	}
	return n
}

// Drain waits until the consumer has read every buffered sample, the ring
// is closed, or ctx ends.
func (r *Ring) Drain(ctx context.Context) error {
	stop := context.AfterFunc(ctx, r.wake)
	defer stop()

	r.mu.Lock()
	defer r.mu.Unlock()
	for r.size > 0 && !r.closed && ctx.Err() == nil {
		r.drained.Wait()
	}
	return ctx.Err()
}

// Capacity returns the ring capacity in samples.
func (r *Ring) Capacity() int {
	return r.capacity
}

// Clear discards all buffered samples and releases blocked writers and
// drainers.
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.size = 0
	r.readPos = 0
	r.writePos = 0
	r.notFull.Broadcast()
	r.drained.Broadcast()
}

// Close releases blocked writers and makes further writes fail. Buffered
// samples remain readable.
func (r *Ring) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.notFull.Broadcast()
	r.drained.Broadcast()
}

// Reopen clears the ring and accepts writes again.
func (r *Ring) Reopen() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = false
	r.size = 0
	r.readPos = 0
	r.writePos = 0
}

func (r *Ring) wake() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notFull.Broadcast()
	r.drained.Broadcast()
}
