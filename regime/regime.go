// Package regime implements C3: a market-regime classifier labeling each
// bar TREND, VOLATILE, or SIDEWAYS from rolling volatility, a volume
// z-score, and mean bar range.
package regime

import (
	"math"

	"github.com/evdnx/fluxback/internal/ring"
	"github.com/evdnx/fluxback/types"
)

// Window is the FIFO length L used for closes, volumes, and ranges.
const Window = 20

// Classifier holds the rolling history the classification rule reads.
type Classifier struct {
	closes  *ring.Buffer
	volumes *ring.Buffer
	ranges  *ring.Buffer
}

// NewClassifier returns a Classifier with empty history.
func NewClassifier() *Classifier {
	return &Classifier{
		closes:  ring.New(Window),
		volumes: ring.New(Window),
		ranges:  ring.New(Window),
	}
}

// Update feeds a new bar and returns the classified regime. While fewer
// than Window/2 closes have been seen, it returns SIDEWAYS.
func (c *Classifier) Update(bar types.Bar) types.Regime {
	c.closes.Push(bar.Close)
	c.volumes.Push(bar.Volume)
	c.ranges.Push(bar.Range())

	if c.closes.Len() < Window/2 {
		return types.RegimeSideways
	}

	vol := logReturnStddev(c.closes.Values())
	volZ := populationZScore(bar.Volume, c.volumes.Values())
	rangeMean := c.ranges.Mean()

	switch {
	case vol > 0.02 && math.Abs(volZ) > 1.5:
		return types.RegimeVolatile
	// The range-band test below is trivially satisfied whenever
	// rangeMean > 0 (it compares rangeMean against itself); this is a
	// known quirk of the classification rule, kept as is rather than
	// tightened.
	case vol > 0.005 && 0.5*rangeMean < rangeMean && rangeMean < 1.5*rangeMean:
		return types.RegimeTrend
	default:
		return types.RegimeSideways
	}
}

// logReturnStddev returns the sample standard deviation of consecutive
// log-returns over closes.
func logReturnStddev(closes []float64) float64 {
	if len(closes) < 2 {
		return 0
	}
	rets := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] > 0 && closes[i] > 0 {
			rets = append(rets, math.Log(closes[i]/closes[i-1]))
		}
	}
	if len(rets) < 2 {
		return 0
	}
	mean := average(rets)
	var sumSq float64
	for _, r := range rets {
		d := r - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(rets)-1))
}

// populationZScore returns (value - mean) / populationStddev over values,
// or 0 when the population stddev is 0.
func populationZScore(value float64, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := average(values)
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	std := math.Sqrt(sumSq / float64(len(values)))
	if std == 0 {
		return 0
	}
	return (value - mean) / std
}

func average(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
