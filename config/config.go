// Package config defines the strategy configuration struct, its defaults,
// and validation (the sole authority on what a run is allowed to do).
package config

import (
	"errors"
	"fmt"
)

// SlippageConfig controls the execution simulator's slippage model.
type SlippageConfig struct {
	Type          string  `yaml:"type" mapstructure:"type"` // "fixed" or "adaptive"
	BaseTicks     int     `yaml:"base_ticks" mapstructure:"base_ticks"`
	VolMultiplier float64 `yaml:"vol_multiplier" mapstructure:"vol_multiplier"`
	VolLow        float64 `yaml:"vol_low" mapstructure:"vol_low"`
	VolHigh       float64 `yaml:"vol_high" mapstructure:"vol_high"`
	LowFactor     float64 `yaml:"low_factor" mapstructure:"low_factor"`
	HighFactor    float64 `yaml:"high_factor" mapstructure:"high_factor"`
}

// SizingConfig selects between fixed-size and dollar-risk-based position
// sizing (the latter is a supplemental enrichment; see the risk package).
type SizingConfig struct {
	Mode              string  `yaml:"mode" mapstructure:"mode"` // "fixed" or "risk"
	MaxRiskPerTrade   float64 `yaml:"max_risk_per_trade" mapstructure:"max_risk_per_trade"`
	StepSize          float64 `yaml:"step_size" mapstructure:"step_size"`
	QuantityPrecision int     `yaml:"quantity_precision" mapstructure:"quantity_precision"`
	MinQty            float64 `yaml:"min_qty" mapstructure:"min_qty"`
}

// StrategyConfig holds every tunable parameter for a backtest run.
type StrategyConfig struct {
	Name      string `yaml:"name" mapstructure:"name"`
	Symbol    string `yaml:"symbol" mapstructure:"symbol"`
	Timeframe string `yaml:"timeframe" mapstructure:"timeframe"`

	FastSMA int `yaml:"fast_sma" mapstructure:"fast_sma"`
	SlowSMA int `yaml:"slow_sma" mapstructure:"slow_sma"`

	UseRSIFilter  bool    `yaml:"use_rsi_filter" mapstructure:"use_rsi_filter"`
	RSIOverbought float64 `yaml:"rsi_overbought" mapstructure:"rsi_overbought"`
	RSIOversold   float64 `yaml:"rsi_oversold" mapstructure:"rsi_oversold"`

	UseVolFilter bool    `yaml:"use_vol_filter" mapstructure:"use_vol_filter"`
	VolThreshold float64 `yaml:"vol_threshold" mapstructure:"vol_threshold"`

	StopLossPct     float64 `yaml:"stop_loss_pct" mapstructure:"stop_loss_pct"`
	TakeProfitPct   float64 `yaml:"take_profit_pct" mapstructure:"take_profit_pct"`
	TrailingStopPct float64 `yaml:"trailing_stop_pct" mapstructure:"trailing_stop_pct"`

	PositionSize int `yaml:"position_size" mapstructure:"position_size"`

	Slippage SlippageConfig `yaml:"slippage" mapstructure:"slippage"`
	Sizing   SizingConfig   `yaml:"sizing" mapstructure:"sizing"`

	ExcludeVolatileRegime bool    `yaml:"exclude_volatile_regime" mapstructure:"exclude_volatile_regime"`
	InitialCash           float64 `yaml:"initial_cash" mapstructure:"initial_cash"`
}

// TickSize is the domain constant the execution simulator multiplies by
// base_ticks for the base slippage of both the fixed and adaptive models.
const TickSize = 0.01

// Default returns a StrategyConfig populated with sensible defaults for
// every field.
func Default() StrategyConfig {
	return StrategyConfig{
		FastSMA:       10,
		SlowSMA:       20,
		RSIOverbought: 70.0,
		RSIOversold:   30.0,
		VolThreshold:  0.05,
		StopLossPct:   0.5,
		TakeProfitPct: 1.0,
		PositionSize:  100,
		Slippage: SlippageConfig{
			Type:          "fixed",
			BaseTicks:     1,
			VolMultiplier: 0.001,
			VolLow:        0.01,
			VolHigh:       0.05,
			LowFactor:     0.5,
			HighFactor:    1.5,
		},
		Sizing: SizingConfig{
			Mode:              "fixed",
			MaxRiskPerTrade:   0.01,
			StepSize:          0.01,
			QuantityPrecision: 2,
		},
		InitialCash: 100000,
	}
}

// Validate checks that every field is within a sensible range, returning
// the first problem encountered. An empty Name is treated by callers as a
// parse failure rather than a validation failure (see loader.go).
func (c *StrategyConfig) Validate() error {
	if c.FastSMA <= 0 {
		return errors.New("fast_sma must be positive")
	}
	if c.SlowSMA <= 0 {
		return errors.New("slow_sma must be positive")
	}
	if c.FastSMA >= c.SlowSMA {
		return fmt.Errorf("fast_sma (%d) must be less than slow_sma (%d)", c.FastSMA, c.SlowSMA)
	}
	if c.RSIOverbought == c.RSIOversold {
		return errors.New("rsi_overbought and rsi_oversold cannot be equal")
	}
	if c.PositionSize <= 0 {
		return errors.New("position_size must be positive")
	}
	if c.StopLossPct <= 0 || c.StopLossPct > 100 {
		return fmt.Errorf("stop_loss_pct (%f) must be >0 and <=100", c.StopLossPct)
	}
	if c.TakeProfitPct <= 0 || c.TakeProfitPct > 1000 {
		return fmt.Errorf("take_profit_pct (%f) out of realistic range", c.TakeProfitPct)
	}
	if c.TrailingStopPct < 0 || c.TrailingStopPct > 100 {
		return fmt.Errorf("trailing_stop_pct (%f) must be between 0 and 100", c.TrailingStopPct)
	}
	if c.Slippage.Type != "fixed" && c.Slippage.Type != "adaptive" {
		return fmt.Errorf("slippage.type must be \"fixed\" or \"adaptive\", got %q", c.Slippage.Type)
	}
	if c.Slippage.BaseTicks < 0 {
		return errors.New("slippage.base_ticks cannot be negative")
	}
	if c.Sizing.Mode != "fixed" && c.Sizing.Mode != "risk" {
		return fmt.Errorf("sizing.mode must be \"fixed\" or \"risk\", got %q", c.Sizing.Mode)
	}
	if c.Sizing.Mode == "risk" && (c.Sizing.MaxRiskPerTrade <= 0 || c.Sizing.MaxRiskPerTrade > 0.5) {
		return fmt.Errorf("sizing.max_risk_per_trade (%f) must be >0 and <=0.5", c.Sizing.MaxRiskPerTrade)
	}
	if c.Sizing.QuantityPrecision < 0 {
		return errors.New("sizing.quantity_precision cannot be negative")
	}
	if c.Sizing.MinQty < 0 {
		return errors.New("sizing.min_qty cannot be negative")
	}
	if c.InitialCash <= 0 {
		return errors.New("initial_cash must be positive")
	}
	return nil
}
