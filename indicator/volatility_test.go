package indicator

import "testing"

func TestRealizedVolZeroWithFewerThanTwoReturns(t *testing.T) {
	v := NewRealizedVol()
	v.Update(100)
	if got := v.Value(20); got != 0 {
		t.Fatalf("expected 0 with 0 returns recorded, got %v", got)
	}
	v.Update(101)
	if got := v.Value(20); got != 0 {
		t.Fatalf("expected 0 with only 1 return recorded, got %v", got)
	}
}

func TestRealizedVolPositiveOnceWarm(t *testing.T) {
	v := NewRealizedVol()
	prices := []float64{100, 101, 99, 102, 98, 103}
	for _, p := range prices {
		v.Update(p)
	}
	if got := v.Value(20); got <= 0 {
		t.Fatalf("expected positive annualized volatility, got %v", got)
	}
}

func TestRealizedVolZeroOnConstantPrices(t *testing.T) {
	v := NewRealizedVol()
	for i := 0; i < 10; i++ {
		v.Update(100)
	}
	if got := v.Value(20); got != 0 {
		t.Fatalf("expected 0 volatility on constant prices, got %v", got)
	}
}

func TestRealizedVolStorageCapIndependentOfQueryWindow(t *testing.T) {
	v := NewRealizedVol()
	price := 100.0
	for i := 0; i < 50; i++ {
		price += 1
		v.Update(price)
	}
	// storage never exceeds volStorageCap samples regardless of the
	// window asked for at query time.
	if got := v.returns.Len(); got != volStorageCap {
		t.Fatalf("expected storage capped at %d, got %d", volStorageCap, got)
	}
}
