package risk

import (
	"testing"

	"github.com/evdnx/fluxback/config"
)

func TestCalcQtyBasic(t *testing.T) {
	sizing := config.SizingConfig{StepSize: 0.01, QuantityPrecision: 2, MinQty: 0.05}
	// risk $100 (1% of 10,000), stop distance 1.5% of 100 = $1.5 => raw 66.66...
	qty := CalcQty(10_000, 0.01, 1.5, 100, sizing)
	if qty != 66.66 {
		t.Fatalf("unexpected qty: %v", qty)
	}
}

func TestCalcQtyRespectsMinQty(t *testing.T) {
	sizing := config.SizingConfig{StepSize: 0.001, QuantityPrecision: 3, MinQty: 0.1}
	qty := CalcQty(1000, 0.001, 2.0, 5000, sizing) // raw ~0.01 < MinQty
	if qty != 0 {
		t.Fatalf("expected 0 (below MinQty), got %v", qty)
	}
}

func TestCalcQtyZeroStepSizeFallsBackToRaw(t *testing.T) {
	sizing := config.SizingConfig{StepSize: 0, QuantityPrecision: 2, MinQty: 0.001}
	qty := CalcQty(5000, 0.02, 1.0, 50, sizing)
	if qty <= 0 {
		t.Fatalf("expected positive qty despite zero StepSize, got %v", qty)
	}
}

func TestCalcQtyZeroStopLossReturnsZero(t *testing.T) {
	sizing := config.SizingConfig{StepSize: 0.01, QuantityPrecision: 2}
	qty := CalcQty(10_000, 0.01, 0, 100, sizing)
	if qty != 0 {
		t.Fatalf("expected 0 for zero stop-loss distance, got %v", qty)
	}
}
