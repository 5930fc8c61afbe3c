package indicator

import "testing"

func TestEngineFansOutToRegisteredIndicators(t *testing.T) {
	e := NewEngine()
	e.EnsureSMA(2)
	e.EnsureEMA(2)
	e.EnsureRSI(2)
	e.EnsureVWAP(2)

	e.AddPrice(10, 100)
	e.AddPrice(20, 100)
	e.AddPrice(15, 100)

	if got := e.SMA(2); got != 17.5 {
		t.Fatalf("expected SMA(2)=17.5 (mean of last two prices 20,15), got %v", got)
	}
	if got := e.EMA(2); got == 0 {
		t.Fatalf("expected a nonzero EMA after updates")
	}
	if got := e.VWAP(2); got != 17.5 {
		t.Fatalf("expected VWAP(2)=17.5, got %v", got)
	}
	if got := e.RealizedVol(20); got == 0 {
		t.Fatalf("expected nonzero realized vol after price changes")
	}
}

func TestEngineReturnsSentinelsForUnregisteredIndicators(t *testing.T) {
	e := NewEngine()
	e.AddPrice(10, 100)

	if got := e.SMA(5); got != 0 {
		t.Fatalf("expected 0 for unregistered SMA, got %v", got)
	}
	if got := e.EMA(5); got != 0 {
		t.Fatalf("expected 0 for unregistered EMA, got %v", got)
	}
	if got := e.RSI(5); got != 50.0 {
		t.Fatalf("expected neutral 50 for unregistered RSI, got %v", got)
	}
	if got := e.VWAP(5); got != 0 {
		t.Fatalf("expected 0 for unregistered VWAP, got %v", got)
	}
}

func TestEngineIdempotentRegistration(t *testing.T) {
	e := NewEngine()
	e.EnsureSMA(10)
	e.AddPrice(5, 1)
	e.EnsureSMA(10) // must not reset existing state
	if got := e.SMA(10); got != 5 {
		t.Fatalf("expected re-registration to be a no-op, got %v", got)
	}
}
