// Package ring provides a small bounded FIFO of float64 samples with a
// running sum, the building block every rolling-window indicator and the
// regime classifier's close/volume/range history are keyed on.
package ring

// Buffer is a fixed-capacity FIFO. Cap <= 0 means unbounded.
type Buffer struct {
	cap int
	buf []float64
	sum float64
}

// New returns a Buffer holding at most capacity samples.
func New(capacity int) *Buffer {
	return &Buffer{cap: capacity}
}

// Push appends v, evicting the oldest sample if the buffer is full.
// Returns the evicted value and true if an eviction occurred.
func (b *Buffer) Push(v float64) (evicted float64, ok bool) {
	b.buf = append(b.buf, v)
	b.sum += v
	if b.cap > 0 && len(b.buf) > b.cap {
		evicted = b.buf[0]
		b.buf = b.buf[1:]
		b.sum -= evicted
		return evicted, true
	}
	return 0, false
}

// Len returns the number of samples currently held.
func (b *Buffer) Len() int { return len(b.buf) }

// Sum returns the running sum of all held samples.
func (b *Buffer) Sum() float64 { return b.sum }

// Mean returns Sum()/Len(), or 0 when empty.
func (b *Buffer) Mean() float64 {
	if len(b.buf) == 0 {
		return 0
	}
	return b.sum / float64(len(b.buf))
}

// Last returns the most recently pushed value, or 0 when empty.
func (b *Buffer) Last() float64 {
	if len(b.buf) == 0 {
		return 0
	}
	return b.buf[len(b.buf)-1]
}

// Values returns a copy of the held samples, oldest first.
func (b *Buffer) Values() []float64 {
	out := make([]float64, len(b.buf))
	copy(out, b.buf)
	return out
}

// Tail returns a copy of the last min(n, Len()) samples, oldest first.
func (b *Buffer) Tail(n int) []float64 {
	if n > len(b.buf) {
		n = len(b.buf)
	}
	if n <= 0 {
		return nil
	}
	start := len(b.buf) - n
	out := make([]float64, n)
	copy(out, b.buf[start:])
	return out
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.sum = 0
}
