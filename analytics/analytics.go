// Package analytics handles fill-to-trade pairing, the equity curve,
// drawdown tracking, and the backtest summary.
package analytics

import (
	"math"

	"github.com/evdnx/fluxback/metrics"
	"github.com/evdnx/fluxback/types"
)

// openPosition tracks the entry fill of the currently-open round trip, if
// any, so the next opposite-side fill can be paired into a Trade.
type openPosition struct {
	entryFill   types.Fill
	entryRegime types.Regime
	isOpen      bool
}

// Analytics accumulates fills into trades and tracks equity/drawdown over
// the course of a run.
type Analytics struct {
	fills       []types.Fill
	trades      []types.Trade
	equityCurve []types.EquityPoint

	initialCash    float64
	currentCash    float64
	peakEquity     float64
	maxDrawdownPct float64
	barCount       int

	open openPosition
}

// New returns an Analytics tracker starting from initialCash.
func New(initialCash float64) *Analytics {
	return &Analytics{
		initialCash: initialCash,
		currentCash: initialCash,
		peakEquity:  initialCash,
	}
}

// RecordBar increments the processed-bar counter; call once per bar
// regardless of whether it produced a fill.
func (a *Analytics) RecordBar() {
	a.barCount++
}

// RecordFill appends fill to history, updates the equity curve and
// drawdown, and pairs it into a Trade if it closes the open position.
//
// A same-side fill that arrives while a position is already open (e.g. a
// duplicate entry signal) is recorded in the equity curve but neither
// paired into a trade nor rejected (it simply does not change which fill
// is tracked as the open entry).
func (a *Analytics) RecordFill(fill types.Fill, regime types.Regime, currentCash, currentPositionValue float64) {
	a.fills = append(a.fills, fill)
	a.currentCash = currentCash

	equity := currentCash + currentPositionValue
	a.equityCurve = append(a.equityCurve, types.EquityPoint{Timestamp: fill.Timestamp, Equity: equity})
	a.updateDrawdown(equity)

	if !a.open.isOpen {
		a.open = openPosition{entryFill: fill, entryRegime: regime, isOpen: true}
		return
	}

	closesPosition := fill.Order.Side == a.open.entryFill.Order.Side.Opposite()
	if closesPosition {
		a.closeTrade(fill, regime)
		a.open = openPosition{}
	}
}

func (a *Analytics) closeTrade(exit types.Fill, exitRegime types.Regime) {
	entry := a.open.entryFill

	var pnl, pnlPct float64
	if entry.Order.Side == types.Buy {
		pnl = (exit.Price - entry.Price) * entry.Size
		pnlPct = (exit.Price - entry.Price) / entry.Price * 100.0
	} else {
		pnl = (entry.Price - exit.Price) * entry.Size
		pnlPct = (entry.Price - exit.Price) / entry.Price * 100.0
	}

	a.trades = append(a.trades, types.Trade{
		EntryTimestamp: entry.Timestamp,
		ExitTimestamp:  exit.Timestamp,
		EntryPrice:     entry.Price,
		ExitPrice:      exit.Price,
		Size:           entry.Size,
		EntryRegime:    a.open.entryRegime,
		ExitRegime:     exitRegime,
		PnL:            pnl,
		PnLPct:         pnlPct,
		IsWin:          pnl > 0,
	})
}

func (a *Analytics) updateDrawdown(equity float64) {
	if equity > a.peakEquity {
		a.peakEquity = equity
	}
	drawdown := (a.peakEquity - equity) / a.peakEquity * 100.0
	if drawdown > a.maxDrawdownPct {
		a.maxDrawdownPct = drawdown
	}
	metrics.DrawdownGauge.Set(drawdown)
}

// Summary is the final backtest report.
type Summary struct {
	TotalReturnPct      float64
	AnnualizedReturnPct float64
	SharpeRatio         float64
	MaxDrawdownPct      float64
	TotalTrades         int
	WinningTrades       int
	LosingTrades        int
	WinRatePct          float64
	// AvgWinPct/AvgLossPct hold the average absolute PnL of winning/losing
	// trades, in cash terms, not a percentage (a naming quirk kept for
	// compatibility with existing consumers).
	AvgWinPct      float64
	AvgLossPct     float64
	ProfitFactor   float64
	InitialCash    float64
	FinalCash      float64
	BarCount       int
	Trades         []types.Trade
	TradesByRegime map[types.Regime]int
	PnLByRegime    map[types.Regime]float64
	EquityCurve    []types.EquityPoint
}

// annualizationYears is hard-coded to one month rather than the actual
// elapsed span of the run. BarCount is carried on Summary as an
// informational hook for callers who want to derive a real span.
const annualizationYears = 1.0 / 12.0

// Summary computes the final report from everything recorded so far.
func (a *Analytics) Summary() Summary {
	s := Summary{
		InitialCash:    a.initialCash,
		BarCount:       a.barCount,
		TradesByRegime: make(map[types.Regime]int),
		PnLByRegime:    make(map[types.Regime]float64),
	}

	if len(a.equityCurve) == 0 {
		s.FinalCash = a.initialCash
		s.TotalReturnPct = 0
	} else {
		s.FinalCash = a.equityCurve[len(a.equityCurve)-1].Equity
		s.TotalReturnPct = (s.FinalCash - a.initialCash) / a.initialCash * 100.0
	}

	s.AnnualizedReturnPct = (math.Pow(s.FinalCash/a.initialCash, 1.0/annualizationYears) - 1.0) * 100.0

	var totalWin, totalLoss float64
	for _, tr := range a.trades {
		if tr.IsWin {
			s.WinningTrades++
			totalWin += tr.PnL
		} else {
			s.LosingTrades++
			totalLoss += math.Abs(tr.PnL)
		}
		s.TradesByRegime[tr.EntryRegime]++
		s.PnLByRegime[tr.EntryRegime] += tr.PnL
	}
	s.TotalTrades = len(a.trades)
	s.Trades = append([]types.Trade(nil), a.trades...)

	if s.TotalTrades > 0 {
		s.WinRatePct = float64(s.WinningTrades) / float64(s.TotalTrades) * 100.0
	}
	if s.WinningTrades > 0 {
		s.AvgWinPct = totalWin / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AvgLossPct = totalLoss / float64(s.LosingTrades)
	}
	if s.LosingTrades > 0 && totalLoss > 0 {
		s.ProfitFactor = totalWin / totalLoss
	}

	s.SharpeRatio = a.sharpeRatio()
	s.MaxDrawdownPct = a.maxDrawdownPct
	s.EquityCurve = append([]types.EquityPoint(nil), a.equityCurve...)
	return s
}

// sharpeRatio uses population statistics (divide by N, not N-1) over
// per-fill equity-curve returns, annualized by sqrt(252), with a zero risk-free
// rate.
func (a *Analytics) sharpeRatio() float64 {
	if len(a.equityCurve) < 2 {
		return 0
	}
	var returns []float64
	for i := 1; i < len(a.equityCurve); i++ {
		prev := a.equityCurve[i-1].Equity
		if prev > 0 {
			returns = append(returns, (a.equityCurve[i].Equity-prev)/prev)
		}
	}
	if len(returns) == 0 {
		return 0
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns))
	std := math.Sqrt(variance)
	if std == 0 {
		return 0
	}
	return (mean / std) * math.Sqrt(252.0)
}
