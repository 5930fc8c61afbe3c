package indicator

import "github.com/evdnx/fluxback/internal/ring"

// SMA is a simple moving average over the last window prices, backed by a
// bounded FIFO so every update is O(1) amortized.
type SMA struct {
	window int
	buf    *ring.Buffer
}

// NewSMA returns an SMA over the given window. window must be positive.
func NewSMA(window int) *SMA {
	return &SMA{window: window, buf: ring.New(window)}
}

// Update appends price to the window, evicting the oldest sample if full.
func (s *SMA) Update(price float64) {
	s.buf.Push(price)
}

// Value returns the mean of the last min(seen, window) prices, or 0 when
// no prices have been seen yet. Callers guard on value > 0 before the
// window has filled, per the indicator engine's contract.
func (s *SMA) Value() float64 {
	return s.buf.Mean()
}

// Window returns the configured window size.
func (s *SMA) Window() int { return s.window }
