package regime

import (
	"testing"

	"github.com/evdnx/fluxback/types"
)

func bar(close, high, low, volume float64) types.Bar {
	return types.Bar{Open: close, High: high, Low: low, Close: close, Volume: volume}
}

func TestClassifierSidewaysUntilWarm(t *testing.T) {
	c := NewClassifier()
	for i := 0; i < Window/2-1; i++ {
		got := c.Update(bar(100, 101, 99, 1000))
		if got != types.RegimeSideways {
			t.Fatalf("bar %d: expected SIDEWAYS before warmup, got %s", i, got)
		}
	}
}

func TestClassifierConstantPricesStaysSideways(t *testing.T) {
	c := NewClassifier()
	var last types.Regime
	for i := 0; i < 100; i++ {
		last = c.Update(bar(100, 100, 100, 1000))
	}
	if last != types.RegimeSideways {
		t.Fatalf("expected SIDEWAYS on constant prices, got %s", last)
	}
}

func TestClassifierTrendsOnSustainedMove(t *testing.T) {
	c := NewClassifier()
	// Every bar rises, but by alternating step sizes: a constant ratio
	// would give identical log-returns and a zero stddev.
	price := 100.0
	steps := []float64{1.03, 1.005}
	var last types.Regime
	for i := 0; i < 40; i++ {
		price *= steps[i%len(steps)]
		last = c.Update(bar(price, price+1, price-1, 1000))
	}
	if last != types.RegimeTrend && last != types.RegimeVolatile {
		t.Fatalf("expected TREND or VOLATILE on a sustained move, got %s", last)
	}
}

func TestLogReturnStddevZeroOnConstant(t *testing.T) {
	closes := make([]float64, 10)
	for i := range closes {
		closes[i] = 50
	}
	if got := logReturnStddev(closes); got != 0 {
		t.Fatalf("expected 0 stddev on constant closes, got %v", got)
	}
}

func TestPopulationZScoreZeroWhenNoSpread(t *testing.T) {
	values := []float64{5, 5, 5, 5}
	if got := populationZScore(5, values); got != 0 {
		t.Fatalf("expected 0 z-score when population stddev is 0, got %v", got)
	}
}
