// Package export serializes a finished backtest (summary + trades) to
// CSV, JSON, and an optional SQLite store.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/evdnx/fluxback/types"
)

var tradeCSVHeader = []string{
	"entry_timestamp", "exit_timestamp", "entry_price", "exit_price",
	"size", "pnl", "pnl_pct", "entry_regime", "exit_regime", "is_win",
}

// WriteTradesCSV writes trades to path in the fixed column order
// (entry_timestamp, exit_timestamp, entry_price, exit_price, size, pnl,
// pnl_pct, entry_regime, exit_regime, is_win), prices with 2 decimals,
// pnl_pct with 4, is_win as 0/1.
func WriteTradesCSV(path string, trades []types.Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tradeCSVHeader); err != nil {
		return fmt.Errorf("export: writing header: %w", err)
	}
	for _, tr := range trades {
		isWin := "0"
		if tr.IsWin {
			isWin = "1"
		}
		record := []string{
			tr.EntryTimestamp,
			tr.ExitTimestamp,
			strconv.FormatFloat(tr.EntryPrice, 'f', 2, 64),
			strconv.FormatFloat(tr.ExitPrice, 'f', 2, 64),
			strconv.FormatFloat(tr.Size, 'f', 2, 64),
			strconv.FormatFloat(tr.PnL, 'f', 2, 64),
			strconv.FormatFloat(tr.PnLPct, 'f', 4, 64),
			string(tr.EntryRegime),
			string(tr.ExitRegime),
			isWin,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("export: writing trade row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
