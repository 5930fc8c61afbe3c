// Package orchestrator wires the bar-by-bar pipeline: indicators, regime
// classification, strategy, execution, and analytics, in that order, for
// every bar a source yields.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/evdnx/fluxback/analytics"
	"github.com/evdnx/fluxback/barsource"
	"github.com/evdnx/fluxback/config"
	"github.com/evdnx/fluxback/executor"
	"github.com/evdnx/fluxback/indicator"
	"github.com/evdnx/fluxback/logger"
	"github.com/evdnx/fluxback/metrics"
	"github.com/evdnx/fluxback/regime"
	"github.com/evdnx/fluxback/strategy"
	"github.com/evdnx/fluxback/types"
)

// RealizedVolWindow is the fixed query window the orchestrator passes to
// the indicator engine when pricing slippage at the fill site.
const RealizedVolWindow = 20

// Result is everything a caller needs after a run completes.
type Result struct {
	Summary   analytics.Summary
	Trades    []types.Trade
	BarsSeen  int
	Cancelled bool
}

// Run drives source to exhaustion (or until ctx is cancelled) through one
// CrossoverStrategy, one SimExecutor, and one Analytics tracker, in the
// fixed bar -> indicators -> regime -> strategy -> execution -> analytics
// order.
func Run(ctx context.Context, cfg config.StrategyConfig, source barsource.Source, log logger.Logger) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("orchestrator: invalid config: %w", err)
	}

	strat, err := strategy.NewCrossoverStrategy(cfg.Symbol, cfg, log)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: constructing strategy: %w", err)
	}

	eng := indicator.NewEngine()
	strat.RegisterIndicators(eng)
	classifier := regime.NewClassifier()
	exec := executor.NewSimExecutor(cfg.InitialCash, cfg.Slippage, log)
	track := analytics.New(cfg.InitialCash)

	result := Result{}

	for source.HasNext() {
		select {
		case <-ctx.Done():
			result.Cancelled = true
			return finish(track, result), nil
		default:
		}

		bar, err := source.Next()
		if err != nil {
			if err == barsource.ErrExhausted {
				break
			}
			return Result{}, fmt.Errorf("orchestrator: reading bar: %w", err)
		}
		if bar.Close <= 0 {
			continue // invalid tick, skipped
		}

		result.BarsSeen++
		track.RecordBar()
		metrics.BarsProcessed.WithLabelValues(cfg.Symbol).Inc()

		eng.AddPrice(bar.Close, bar.Volume)
		currentRegime := classifier.Update(bar)

		if cfg.ExcludeVolatileRegime && currentRegime == types.RegimeVolatile {
			continue
		}

		equity := exec.Cash() + exec.Position(cfg.Symbol).Value(bar.Close)
		orders := strat.OnBar(bar, eng, equity)

		for _, order := range orders {
			realizedVol := eng.RealizedVol(RealizedVolWindow)
			fill := exec.Execute(order, bar, realizedVol)

			positionValue := exec.Position(cfg.Symbol).Value(bar.Close)
			track.RecordFill(fill, currentRegime, exec.Cash(), positionValue)
		}
	}

	return finish(track, result), nil
}

func finish(track *analytics.Analytics, result Result) Result {
	summary := track.Summary()
	result.Summary = summary
	result.Trades = summary.Trades
	return result
}
