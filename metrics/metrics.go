// Package metrics exposes Prometheus instrumentation for a running
// backtest: bars processed, orders submitted, fills executed, current
// equity, and current drawdown.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BarsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fluxback_bars_processed_total",
			Help: "Total number of bars processed (by symbol).",
		},
		[]string{"symbol"},
	)

	OrdersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fluxback_orders_submitted_total",
			Help: "Total number of orders submitted (by symbol and side).",
		},
		[]string{"symbol", "side"},
	)

	FillsExecuted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fluxback_fills_executed_total",
			Help: "Total number of fills executed (by symbol).",
		},
		[]string{"symbol"},
	)

	EquityGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fluxback_equity",
			Help: "Current equity (cash + mark-to-market position value).",
		},
	)

	DrawdownGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fluxback_drawdown_pct",
			Help: "Current drawdown from peak equity, in percent.",
		},
	)
)

func init() {
	prometheus.MustRegister(BarsProcessed, OrdersSubmitted, FillsExecuted, EquityGauge, DrawdownGauge)
}
