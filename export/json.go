package export

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/evdnx/fluxback/analytics"
)

// summaryJSON mirrors analytics.Summary with every float rounded to 4
// decimals before marshaling, per the fixed-precision export contract.
type summaryJSON struct {
	TotalReturnPct      float64          `json:"total_return_pct"`
	AnnualizedReturnPct float64          `json:"annualized_return_pct"`
	SharpeRatio         float64          `json:"sharpe_ratio"`
	MaxDrawdownPct      float64          `json:"max_drawdown_pct"`
	TotalTrades         int              `json:"total_trades"`
	WinningTrades       int              `json:"winning_trades"`
	LosingTrades        int              `json:"losing_trades"`
	WinRatePct          float64          `json:"win_rate_pct"`
	AvgWinPct           float64          `json:"avg_win_pct"`
	AvgLossPct          float64          `json:"avg_loss_pct"`
	ProfitFactor        float64          `json:"profit_factor"`
	InitialCash         float64          `json:"initial_cash"`
	FinalCash           float64          `json:"final_cash"`
	BarCount            int              `json:"bar_count"`
	TradesByRegime      map[string]int   `json:"trades_by_regime"`
	PnLByRegime         map[string]float64 `json:"pnl_by_regime"`
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func toSummaryJSON(s analytics.Summary) summaryJSON {
	tradesByRegime := make(map[string]int, len(s.TradesByRegime))
	for regime, n := range s.TradesByRegime {
		tradesByRegime[string(regime)] = n
	}
	pnlByRegime := make(map[string]float64, len(s.PnLByRegime))
	for regime, pnl := range s.PnLByRegime {
		pnlByRegime[string(regime)] = round4(pnl)
	}
	return summaryJSON{
		TotalReturnPct:      round4(s.TotalReturnPct),
		AnnualizedReturnPct: round4(s.AnnualizedReturnPct),
		SharpeRatio:         round4(s.SharpeRatio),
		MaxDrawdownPct:      round4(s.MaxDrawdownPct),
		TotalTrades:         s.TotalTrades,
		WinningTrades:       s.WinningTrades,
		LosingTrades:        s.LosingTrades,
		WinRatePct:          round4(s.WinRatePct),
		AvgWinPct:           round4(s.AvgWinPct),
		AvgLossPct:          round4(s.AvgLossPct),
		ProfitFactor:        round4(s.ProfitFactor),
		InitialCash:         round4(s.InitialCash),
		FinalCash:           round4(s.FinalCash),
		BarCount:            s.BarCount,
		TradesByRegime:      tradesByRegime,
		PnLByRegime:         pnlByRegime,
	}
}

// WriteSummaryJSON writes the backtest summary to path as a JSON object
// with every float rounded to 4 decimals.
func WriteSummaryJSON(path string, s analytics.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toSummaryJSON(s)); err != nil {
		return fmt.Errorf("export: encoding summary: %w", err)
	}
	return nil
}
