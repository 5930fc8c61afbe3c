package indicator

import (
	"math"

	"github.com/evdnx/fluxback/internal/ring"
)

const (
	volStorageCap      = 20
	minutesPerSession  = 390.0
	tradingDaysPerYear = 252.0
)

// RealizedVol maintains a FIFO of log-returns capped at volStorageCap
// samples, independent of the window used at query time, and reports an
// annualized sample-stddev estimate.
type RealizedVol struct {
	returns   *ring.Buffer
	lastPrice float64
	hasPrev   bool
}

// NewRealizedVol returns a RealizedVol tracker.
func NewRealizedVol() *RealizedVol {
	return &RealizedVol{returns: ring.New(volStorageCap)}
}

// Update feeds a new price, appending ln(price/prevPrice) once a previous
// price is known.
func (v *RealizedVol) Update(price float64) {
	if v.hasPrev && v.lastPrice > 0 && price > 0 {
		v.returns.Push(math.Log(price / v.lastPrice))
	}
	v.lastPrice = price
	v.hasPrev = true
}

// Value returns the annualized realized volatility over the tail of up to
// window returns. Returns 0 when fewer than 2 returns are available.
func (v *RealizedVol) Value(window int) float64 {
	tail := v.returns.Tail(window)
	n := len(tail)
	if n < 2 {
		return 0
	}
	mean := 0.0
	for _, r := range tail {
		mean += r
	}
	mean /= float64(n)

	variance := 0.0
	for _, r := range tail {
		d := r - mean
		variance += d * d
	}
	variance /= float64(n - 1)

	dailyVol := math.Sqrt(variance * minutesPerSession)
	return dailyVol * math.Sqrt(tradingDaysPerYear)
}
