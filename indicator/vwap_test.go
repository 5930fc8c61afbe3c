package indicator

import "testing"

func TestVWAPZeroBeforeAnyVolume(t *testing.T) {
	w := NewVWAP(3)
	if got := w.Value(); got != 0 {
		t.Fatalf("expected 0 before any update, got %v", got)
	}
}

func TestVWAPComputesVolumeWeightedAverage(t *testing.T) {
	w := NewVWAP(3)
	w.Update(10, 100) // pv=1000
	w.Update(20, 100) // pv=2000
	// (1000+2000)/(100+100) = 15
	if got := w.Value(); got != 15 {
		t.Fatalf("expected 15, got %v", got)
	}
}

func TestVWAPEvictsOldestBeyondWindow(t *testing.T) {
	w := NewVWAP(2)
	w.Update(10, 100)
	w.Update(20, 100)
	w.Update(30, 100)
	// window 2: only (20,100) and (30,100) remain => (2000+3000)/200 = 25
	if got := w.Value(); got != 25 {
		t.Fatalf("expected 25, got %v", got)
	}
}

func TestVWAPZeroWhenAllVolumeZero(t *testing.T) {
	w := NewVWAP(3)
	w.Update(10, 0)
	w.Update(20, 0)
	if got := w.Value(); got != 0 {
		t.Fatalf("expected 0 when total volume is 0, got %v", got)
	}
}
