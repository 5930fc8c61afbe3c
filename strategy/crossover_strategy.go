// Package strategy implements the SMA-crossover strategy engine. It holds
// a single open-position slot per symbol and emits at most one order per
// bar, as one self-contained state machine rather than a family of
// composable strategies.
package strategy

import (
	"math"

	"github.com/evdnx/fluxback/config"
	"github.com/evdnx/fluxback/indicator"
	"github.com/evdnx/fluxback/logger"
	"github.com/evdnx/fluxback/metrics"
	"github.com/evdnx/fluxback/risk"
	"github.com/evdnx/fluxback/types"
)

// RSIWindow is the fixed RSI period the entry filter reads.
const RSIWindow = 14

// CrossoverStrategy tracks its own position state independently of the
// executor: the simulator always fills in full, so the strategy never
// needs to read back position/fill state to stay consistent.
type CrossoverStrategy struct {
	Cfg    config.StrategyConfig
	Symbol string
	Log    logger.Logger

	currentPosition float64 // signed size; 0 = flat
	entryPrice      float64
	favorablePrice  float64 // best price reached in favor since entry (trailing-stop anchor)
	prevFast        float64
	prevSlow        float64
	smaInitialized  bool
}

// NewCrossoverStrategy validates cfg and returns a flat strategy instance.
func NewCrossoverStrategy(symbol string, cfg config.StrategyConfig, log logger.Logger) (*CrossoverStrategy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &CrossoverStrategy{Cfg: cfg, Symbol: symbol, Log: log}, nil
}

// RegisterIndicators ensures every indicator this strategy reads is
// registered on eng. Must be called once before the first AddPrice, per
// the indicator engine's registration contract.
func (s *CrossoverStrategy) RegisterIndicators(eng *indicator.Engine) {
	eng.EnsureSMA(s.Cfg.FastSMA)
	eng.EnsureSMA(s.Cfg.SlowSMA)
	if s.Cfg.UseRSIFilter {
		eng.EnsureRSI(RSIWindow)
	}
}

// OnBar runs the per-bar procedure and returns the orders to execute this
// bar (zero or one; a single bar cannot both exit and enter). equity is the
// current mark-to-market account value, used only by risk-based sizing.
func (s *CrossoverStrategy) OnBar(bar types.Bar, eng *indicator.Engine, equity float64) []types.Order {
	fast := eng.SMA(s.Cfg.FastSMA)
	slow := eng.SMA(s.Cfg.SlowSMA)
	rv := eng.RealizedVol(20)

	if s.Cfg.UseVolFilter && rv > s.Cfg.VolThreshold {
		s.updatePrevSMA(fast, slow)
		return nil
	}

	if s.currentPosition != 0 {
		s.trackFavorablePrice(bar)
		if reason, exit := s.checkExit(bar, fast, slow); exit {
			order := s.closeOrder(bar, reason)
			s.currentPosition = 0
			s.entryPrice = 0
			s.updatePrevSMA(fast, slow)
			s.logOrder(order, reason)
			return []types.Order{order}
		}
	}

	if s.currentPosition == 0 && s.smaInitialized {
		if order, ok := s.checkEntry(bar, fast, slow, eng, equity); ok {
			s.updatePrevSMA(fast, slow)
			s.logOrder(order, order.Comment)
			return []types.Order{order}
		}
	}

	s.updatePrevSMA(fast, slow)
	return nil
}

func (s *CrossoverStrategy) trackFavorablePrice(bar types.Bar) {
	if s.currentPosition > 0 {
		s.favorablePrice = math.Max(s.favorablePrice, bar.High)
	} else {
		s.favorablePrice = math.Min(s.favorablePrice, bar.Low)
	}
}

// checkExit evaluates stop-loss, take-profit, reverse-crossover, and the
// supplemental trailing-stop in that order.
func (s *CrossoverStrategy) checkExit(bar types.Bar, fast, slow float64) (string, bool) {
	long := s.currentPosition > 0
	if long {
		if bar.Low <= s.entryPrice*(1-s.Cfg.StopLossPct/100) {
			return "stop_loss", true
		}
		if bar.High >= s.entryPrice*(1+s.Cfg.TakeProfitPct/100) {
			return "take_profit", true
		}
		if s.prevFast >= s.prevSlow && fast < slow {
			return "reverse_crossover", true
		}
		if s.Cfg.TrailingStopPct > 0 && bar.Low <= s.favorablePrice*(1-s.Cfg.TrailingStopPct/100) {
			return "trailing_stop", true
		}
		return "", false
	}

	if bar.High >= s.entryPrice*(1+s.Cfg.StopLossPct/100) {
		return "stop_loss", true
	}
	if bar.Low <= s.entryPrice*(1-s.Cfg.TakeProfitPct/100) {
		return "take_profit", true
	}
	if s.prevFast <= s.prevSlow && fast > slow {
		return "reverse_crossover", true
	}
	if s.Cfg.TrailingStopPct > 0 && bar.High >= s.favorablePrice*(1+s.Cfg.TrailingStopPct/100) {
		return "trailing_stop", true
	}
	return "", false
}

func (s *CrossoverStrategy) closeOrder(bar types.Bar, reason string) types.Order {
	side := types.Sell
	if s.currentPosition < 0 {
		side = types.Buy
	}
	return types.Order{
		Symbol:    s.Symbol,
		Side:      side,
		Size:      math.Abs(s.currentPosition),
		RefPrice:  bar.Close,
		Timestamp: bar.Timestamp,
		Comment:   reason,
	}
}

func (s *CrossoverStrategy) checkEntry(bar types.Bar, fast, slow float64, eng *indicator.Engine, equity float64) (types.Order, bool) {
	longSignal := s.prevFast <= s.prevSlow && fast > slow
	if longSignal && s.Cfg.UseRSIFilter && eng.RSI(RSIWindow) > s.Cfg.RSIOverbought {
		longSignal = false
	}
	if longSignal {
		if qty := s.quantity(equity, bar.Close); qty > 0 {
			s.currentPosition = qty
			s.entryPrice = bar.Close
			s.favorablePrice = bar.Close
			return types.Order{
				Symbol: s.Symbol, Side: types.Buy, Size: qty,
				RefPrice: bar.Close, Timestamp: bar.Timestamp, Comment: "sma_crossover_long",
			}, true
		}
	}

	shortSignal := s.prevFast >= s.prevSlow && fast < slow
	if shortSignal && s.Cfg.UseRSIFilter && eng.RSI(RSIWindow) < s.Cfg.RSIOversold {
		shortSignal = false
	}
	if shortSignal {
		if qty := s.quantity(equity, bar.Close); qty > 0 {
			s.currentPosition = -qty
			s.entryPrice = bar.Close
			s.favorablePrice = bar.Close
			return types.Order{
				Symbol: s.Symbol, Side: types.Sell, Size: qty,
				RefPrice: bar.Close, Timestamp: bar.Timestamp, Comment: "sma_crossover_short",
			}, true
		}
	}

	return types.Order{}, false
}

// quantity returns the fixed position_size, or a risk-sized quantity when
// sizing.mode is "risk".
func (s *CrossoverStrategy) quantity(equity, price float64) float64 {
	if s.Cfg.Sizing.Mode == "risk" {
		return risk.CalcQty(equity, s.Cfg.Sizing.MaxRiskPerTrade, s.Cfg.StopLossPct, price, s.Cfg.Sizing)
	}
	return float64(s.Cfg.PositionSize)
}

func (s *CrossoverStrategy) updatePrevSMA(fast, slow float64) {
	if fast > 0 && slow > 0 {
		s.prevFast = fast
		s.prevSlow = slow
		s.smaInitialized = true
	}
}

func (s *CrossoverStrategy) logOrder(order types.Order, reason string) {
	metrics.OrdersSubmitted.WithLabelValues(s.Symbol, string(order.Side)).Inc()
	s.Log.Info("strategy_signal",
		logger.String("symbol", s.Symbol),
		logger.String("side", string(order.Side)),
		logger.Float64("size", order.Size),
		logger.String("reason", reason),
	)
}
