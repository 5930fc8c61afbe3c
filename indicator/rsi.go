package indicator

import "github.com/evdnx/fluxback/internal/ring"

// RSI computes the Wilder-smoothed relative strength index over window
// (default 14). It never returns a value outside [0, 100]; it returns the
// neutral value 50 while uninitialized or when avgLoss is exactly 0.
type RSI struct {
	window int

	seed      *ring.Buffer // holds the first window+1 price changes while seeding
	lastPrice float64
	hasPrev   bool
	init      bool
	avgGain   float64
	avgLoss   float64
}

// NewRSI returns an RSI over the given window. window must be positive.
func NewRSI(window int) *RSI {
	return &RSI{window: window, seed: ring.New(window + 1)}
}

// Update feeds a new price into the RSI.
func (r *RSI) Update(price float64) {
	if !r.hasPrev {
		r.lastPrice = price
		r.hasPrev = true
		return
	}
	delta := price - r.lastPrice
	r.lastPrice = price

	if !r.init {
		r.seed.Push(delta)
		if r.seed.Len() == r.window+1 {
			var gainSum, lossSum float64
			for _, d := range r.seed.Values() {
				if d > 0 {
					gainSum += d
				} else {
					lossSum += -d
				}
			}
			r.avgGain = gainSum / float64(r.window)
			r.avgLoss = lossSum / float64(r.window)
			r.init = true
		}
		return
	}

	gain, loss := 0.0, 0.0
	if delta > 0 {
		gain = delta
	} else {
		loss = -delta
	}
	w := float64(r.window)
	r.avgGain = (r.avgGain*(w-1) + gain) / w
	r.avgLoss = (r.avgLoss*(w-1) + loss) / w
}

// Value returns the current RSI in [0, 100].
func (r *RSI) Value() float64 {
	if !r.init || r.avgLoss == 0 {
		return 50.0
	}
	rs := r.avgGain / r.avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// Window returns the configured window size.
func (r *RSI) Window() int { return r.window }
