package indicator

import "testing"

func TestSMAMeanOverWindow(t *testing.T) {
	s := NewSMA(3)
	for _, p := range []float64{10, 20, 30} {
		s.Update(p)
	}
	if got := s.Value(); got != 20 {
		t.Fatalf("expected mean 20, got %v", got)
	}
}

func TestSMAEvictsOldestBeyondWindow(t *testing.T) {
	s := NewSMA(2)
	for _, p := range []float64{10, 20, 30} {
		s.Update(p)
	}
	if got := s.Value(); got != 25 {
		t.Fatalf("expected mean of last 2 (20,30)=25, got %v", got)
	}
}

func TestSMAZeroBeforeAnyUpdate(t *testing.T) {
	s := NewSMA(5)
	if got := s.Value(); got != 0 {
		t.Fatalf("expected 0 before any update, got %v", got)
	}
}
