package executor

import (
	"testing"

	"github.com/evdnx/fluxback/config"
	"github.com/evdnx/fluxback/testutils"
	"github.com/evdnx/fluxback/types"
)

func fixedSlippage(ticks int) config.SlippageConfig {
	return config.SlippageConfig{Type: "fixed", BaseTicks: ticks}
}

func TestExecuteOpensLongAndUpdatesCash(t *testing.T) {
	ex := NewSimExecutor(10_000, fixedSlippage(0), testutils.NewMockLogger())
	bar := types.Bar{Timestamp: "t1", Open: 100, High: 101, Low: 99, Close: 100}

	fill := ex.Execute(types.Order{Symbol: "BTCUSD", Side: types.Buy, Size: 10}, bar, 0)
	if fill.Price != 100 {
		t.Fatalf("expected fill at close with zero slippage, got %v", fill.Price)
	}
	if ex.Cash() != 9000 {
		t.Fatalf("expected cash 9000, got %v", ex.Cash())
	}
	pos := ex.Position("BTCUSD")
	if pos.Size != 10 || pos.Avg != 100 {
		t.Fatalf("unexpected position: %+v", pos)
	}
}

func TestExecuteFlipsPosition(t *testing.T) {
	ex := NewSimExecutor(10_000, fixedSlippage(0), testutils.NewMockLogger())
	bar := types.Bar{Timestamp: "t1", Open: 100, High: 100, Low: 100, Close: 100}

	ex.Execute(types.Order{Symbol: "BTCUSD", Side: types.Buy, Size: 10}, bar, 0)
	ex.Execute(types.Order{Symbol: "BTCUSD", Side: types.Sell, Size: 15}, bar, 0)

	pos := ex.Position("BTCUSD")
	if pos.Size != -5 {
		t.Fatalf("expected short residual of -5 after flip, got %v", pos.Size)
	}
	if pos.Avg != 100 {
		t.Fatalf("expected new short avg reset to fill price 100, got %v", pos.Avg)
	}
}

func TestExecuteClampsFillWithinBarRange(t *testing.T) {
	ex := NewSimExecutor(10_000, config.SlippageConfig{Type: "fixed", BaseTicks: 1000}, testutils.NewMockLogger())
	bar := types.Bar{Timestamp: "t1", Open: 100, High: 101, Low: 99, Close: 100}

	fill := ex.Execute(types.Order{Symbol: "BTCUSD", Side: types.Buy, Size: 1}, bar, 0)
	if fill.Price != bar.High {
		t.Fatalf("expected fill clamped to bar high %v, got %v", bar.High, fill.Price)
	}
}

func TestExecuteAdaptiveSlippageScalesWithVol(t *testing.T) {
	slip := config.SlippageConfig{
		Type: "adaptive", BaseTicks: 1, VolMultiplier: 1, VolLow: 0.01, VolHigh: 0.05,
		LowFactor: 0.5, HighFactor: 2.0,
	}
	ex := NewSimExecutor(10_000, slip, testutils.NewMockLogger())
	bar := types.Bar{Timestamp: "t1", Open: 100, High: 200, Low: 1, Close: 100}

	lowVolFill := ex.Execute(types.Order{Symbol: "A", Side: types.Buy, Size: 1}, bar, 0.001)
	highVolFill := ex.Execute(types.Order{Symbol: "B", Side: types.Buy, Size: 1}, bar, 0.1)

	if lowVolFill.Slippage >= highVolFill.Slippage {
		t.Fatalf("expected high-vol slippage to exceed low-vol: low=%v high=%v",
			lowVolFill.Slippage, highVolFill.Slippage)
	}
}

func TestExecuteSameDirectionAddsWeightedAverage(t *testing.T) {
	ex := NewSimExecutor(10_000, fixedSlippage(0), testutils.NewMockLogger())
	bar1 := types.Bar{Timestamp: "t1", Open: 100, High: 100, Low: 100, Close: 100}
	bar2 := types.Bar{Timestamp: "t2", Open: 200, High: 200, Low: 200, Close: 200}

	ex.Execute(types.Order{Symbol: "BTCUSD", Side: types.Buy, Size: 10}, bar1, 0)
	ex.Execute(types.Order{Symbol: "BTCUSD", Side: types.Buy, Size: 10}, bar2, 0)

	pos := ex.Position("BTCUSD")
	if pos.Size != 20 {
		t.Fatalf("expected combined size 20, got %v", pos.Size)
	}
	if pos.Avg != 150 {
		t.Fatalf("expected weighted avg 150, got %v", pos.Avg)
	}
}
