package indicator

import "github.com/evdnx/fluxback/internal/ring"

// VWAP is a volume-weighted average price over the last window bars, kept
// as two FIFOs (price*volume and volume) that evict in lockstep.
type VWAP struct {
	window int
	pv     *ring.Buffer
	vol    *ring.Buffer
}

// NewVWAP returns a VWAP over the given window. window must be positive.
func NewVWAP(window int) *VWAP {
	return &VWAP{window: window, pv: ring.New(window), vol: ring.New(window)}
}

// Update feeds a new (price, volume) pair.
func (w *VWAP) Update(price, volume float64) {
	w.pv.Push(price * volume)
	w.vol.Push(volume)
}

// Value returns Σ(price·volume)/Σvolume over the window, or 0 when no
// volume has been recorded.
func (w *VWAP) Value() float64 {
	totalVol := w.vol.Sum()
	if totalVol == 0 {
		return 0
	}
	return w.pv.Sum() / totalVol
}

// Window returns the configured window size.
func (w *VWAP) Window() int { return w.window }
