// Package executor implements the execution simulator. It converts
// orders into fills against the current bar with a fixed or
// volatility-adaptive slippage model, and maintains cash and a per-symbol
// position using an explicit flip-aware state transition instead of
// nested conditionals.
package executor

import (
	"math"
	"sync"

	"github.com/evdnx/fluxback/config"
	"github.com/evdnx/fluxback/logger"
	"github.com/evdnx/fluxback/metrics"
	"github.com/evdnx/fluxback/types"
)

// Executor is the interface the strategy and orchestrator depend on,
// decoupling both from the concrete simulator.
type Executor interface {
	Execute(order types.Order, bar types.Bar, realizedVol float64) types.Fill
	Cash() float64
	Position(symbol string) types.Position
}

// SimExecutor is the in-memory backtesting executor. Cash may go negative;
// it never rejects an order (the simulator only simulates).
type SimExecutor struct {
	mu        sync.RWMutex
	cash      float64
	positions map[string]types.Position
	slippage  config.SlippageConfig
	log       logger.Logger
}

// NewSimExecutor returns a SimExecutor starting with initialCash.
func NewSimExecutor(initialCash float64, slippage config.SlippageConfig, log logger.Logger) *SimExecutor {
	return &SimExecutor{
		cash:      initialCash,
		positions: make(map[string]types.Position),
		slippage:  slippage,
		log:       log,
	}
}

// Execute converts order into a Fill against bar, applying slippage,
// updating cash, and updating the symbol's position.
func (e *SimExecutor) Execute(order types.Order, bar types.Bar, realizedVol float64) types.Fill {
	e.mu.Lock()
	defer e.mu.Unlock()

	slip := e.calcSlippage(realizedVol, bar.Close)

	var raw float64
	if order.Side == types.Buy {
		raw = bar.Close + slip
	} else {
		raw = bar.Close - slip
	}
	fillPrice := clamp(raw, bar.Low, bar.High)

	if order.Side == types.Buy {
		e.cash -= fillPrice * order.Size
	} else {
		e.cash += fillPrice * order.Size
	}

	pos := e.positions[order.Symbol]
	e.positions[order.Symbol] = applyFill(pos, order.Side, order.Size, fillPrice)

	metrics.FillsExecuted.WithLabelValues(order.Symbol).Inc()
	metrics.EquityGauge.Set(e.cash + e.positions[order.Symbol].Value(bar.Close))
	e.log.Info("fill_executed",
		logger.String("symbol", order.Symbol),
		logger.String("side", string(order.Side)),
		logger.Float64("size", order.Size),
		logger.Float64("fill_price", fillPrice),
		logger.Float64("slippage", slip),
	)

	return types.Fill{
		Order:     order,
		Price:     fillPrice,
		Size:      order.Size,
		Timestamp: bar.Timestamp,
		Slippage:  slip,
	}
}

// Cash returns the current cash balance.
func (e *SimExecutor) Cash() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cash
}

// Position returns the current position for symbol (zero value if flat or
// never traded).
func (e *SimExecutor) Position(symbol string) types.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.positions[symbol]
}

// calcSlippage implements the fixed/adaptive slippage model.
func (e *SimExecutor) calcSlippage(realizedVol, close float64) float64 {
	base := float64(e.slippage.BaseTicks) * config.TickSize
	if e.slippage.Type != "adaptive" {
		return base
	}
	volComp := e.slippage.VolMultiplier * realizedVol * close
	factor := 1.0
	switch {
	case realizedVol < e.slippage.VolLow:
		factor = e.slippage.LowFactor
	case realizedVol > e.slippage.VolHigh:
		factor = e.slippage.HighFactor
	}
	return (base + volComp) * factor
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// applyFill is the position flip state transition table keyed by
// (sign(position), order side, relative magnitude): flat-open,
// same-direction add (weighted-average), opposite-direction partial
// reduce, opposite-direction exact close, and opposite-direction flip
// (close then open the residual at fillPrice, avg reset).
func applyFill(pos types.Position, side types.Side, size, fillPrice float64) types.Position {
	if pos.Size == 0 {
		signed := size
		if side == types.Sell {
			signed = -size
		}
		return types.Position{Size: signed, Avg: fillPrice}
	}

	long := pos.Size > 0
	sameDirection := (side == types.Buy && long) || (side == types.Sell && !long)
	absPos := math.Abs(pos.Size)

	if sameDirection {
		newAbs := absPos + size
		newAvg := (pos.Avg*absPos + fillPrice*size) / newAbs
		signed := newAbs
		if !long {
			signed = -newAbs
		}
		return types.Position{Size: signed, Avg: newAvg}
	}

	switch {
	case size < absPos:
		remaining := absPos - size
		signed := remaining
		if !long {
			signed = -remaining
		}
		return types.Position{Size: signed, Avg: pos.Avg}
	case size == absPos:
		return types.Position{Size: 0, Avg: 0}
	default:
		residual := size - absPos
		signed := residual
		if long {
			signed = -residual
		}
		return types.Position{Size: signed, Avg: fillPrice}
	}
}
