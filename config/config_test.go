package config

import "testing"

func validConfig() StrategyConfig {
	cfg := Default()
	cfg.Name = "sma-demo"
	return cfg
}

func TestValidateSuccess(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateFailsOnFastNotLessThanSlow(t *testing.T) {
	cfg := validConfig()
	cfg.FastSMA = 20
	cfg.SlowSMA = 20
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error when fast_sma >= slow_sma")
	}
}

func TestValidateFailsOnEqualRSIThresholds(t *testing.T) {
	cfg := validConfig()
	cfg.RSIOverbought = 50
	cfg.RSIOversold = 50
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for equal RSI thresholds")
	}
}

func TestValidateFailsOnBadSlippageType(t *testing.T) {
	cfg := validConfig()
	cfg.Slippage.Type = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for unknown slippage type")
	}
}

func TestValidateFailsOnRiskSizingWithoutMaxRisk(t *testing.T) {
	cfg := validConfig()
	cfg.Sizing.Mode = "risk"
	cfg.Sizing.MaxRiskPerTrade = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for risk sizing with zero max_risk_per_trade")
	}
}

func TestDefaultIsValidOnceNamed(t *testing.T) {
	cfg := Default()
	cfg.Name = "default-check"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() should validate once named, got %v", err)
	}
}
