package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/evdnx/fluxback/types"
)

func TestWriteTradesCSVColumnOrderAndFormatting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trades.csv")

	trades := []types.Trade{
		{
			EntryTimestamp: "t1", ExitTimestamp: "t2",
			EntryPrice: 100, ExitPrice: 110.456, Size: 1,
			PnL: 10.456, PnLPct: 10.456789,
			EntryRegime: types.RegimeTrend, ExitRegime: types.RegimeSideways,
			IsWin: true,
		},
	}
	if err := WriteTradesCSV(path, trades); err != nil {
		t.Fatalf("WriteTradesCSV: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if lines[0] != "entry_timestamp,exit_timestamp,entry_price,exit_price,size,pnl,pnl_pct,entry_regime,exit_regime,is_win" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	want := "t1,t2,100.00,110.46,1.00,10.46,10.4568,TREND,SIDEWAYS,1"
	if lines[1] != want {
		t.Fatalf("unexpected row: got %q want %q", lines[1], want)
	}
}

func TestWriteTradesCSVEmptyWritesHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trades.csv")
	if err := WriteTradesCSV(path, nil); err != nil {
		t.Fatalf("WriteTradesCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if strings.TrimRight(string(data), "\n") != "entry_timestamp,exit_timestamp,entry_price,exit_price,size,pnl,pnl_pct,entry_regime,exit_regime,is_win" {
		t.Fatalf("unexpected output for empty trades: %s", data)
	}
}
