// Package risk implements the optional dollar-risk position-sizing mode
// (config.SizingConfig.Mode == "risk"): an alternative to the
// specification's fixed position_size, sizing each entry so that a hit of
// the configured stop-loss loses at most max_risk_per_trade of equity (the
// quantity is rounded down, never up).
package risk

import (
	"math"

	"github.com/evdnx/fluxback/config"
)

// CalcQty returns the position size for a risk-based entry, floored to
// sizing.step_size, truncated to sizing.quantity_precision decimal places,
// and zeroed out if the result falls below sizing.min_qty. stopLossPct is
// in percent (0.5 means 0.5%), matching config.StrategyConfig.StopLossPct.
func CalcQty(equity, maxRiskPerTrade, stopLossPct, price float64, sizing config.SizingConfig) float64 {
	if price <= 0 {
		return 0
	}
	riskAmt := equity * maxRiskPerTrade
	slDist := price * (stopLossPct / 100.0)
	if slDist <= 0 {
		return 0
	}
	qty := riskAmt / slDist

	if sizing.StepSize > 0 {
		qty = math.Floor(qty/sizing.StepSize) * sizing.StepSize
	}
	if sizing.QuantityPrecision >= 0 {
		scale := math.Pow(10, float64(sizing.QuantityPrecision))
		qty = math.Floor(qty*scale) / scale
	}
	if qty < sizing.MinQty {
		return 0
	}
	return qty
}
