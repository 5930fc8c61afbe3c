package export

import (
	"database/sql"
	"fmt"

	"github.com/evdnx/fluxback/analytics"
	"github.com/evdnx/fluxback/types"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists trades and run summaries across backtests for ad
// hoc querying. Purely additive: no simulation component reads from it.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the SQLite database at path and runs
// its migrations.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("export: opening sqlite store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("export: pinging sqlite store: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("export: migrating sqlite store: %w", err)
	}
	return s, nil
}

// Close releases the underlying connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			run_at                TEXT NOT NULL DEFAULT (datetime('now')),
			initial_cash          REAL NOT NULL,
			final_cash            REAL NOT NULL,
			total_return_pct      REAL NOT NULL,
			annualized_return_pct REAL NOT NULL,
			sharpe_ratio          REAL NOT NULL,
			max_drawdown_pct      REAL NOT NULL,
			total_trades          INTEGER NOT NULL,
			win_rate_pct          REAL NOT NULL,
			bar_count             INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS trades (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id           INTEGER NOT NULL REFERENCES runs(id),
			entry_timestamp  TEXT NOT NULL,
			exit_timestamp   TEXT NOT NULL,
			entry_price      REAL NOT NULL,
			exit_price       REAL NOT NULL,
			size             REAL NOT NULL,
			pnl              REAL NOT NULL,
			pnl_pct          REAL NOT NULL,
			entry_regime     TEXT NOT NULL,
			exit_regime      TEXT NOT NULL,
			is_win           INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id);
	`)
	return err
}

// SaveRun inserts one summary row and its trades, returning the new run
// id.
func (s *SQLiteStore) SaveRun(summary analytics.Summary, trades []types.Trade) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("export: beginning run transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO runs (
			initial_cash, final_cash, total_return_pct, annualized_return_pct,
			sharpe_ratio, max_drawdown_pct, total_trades, win_rate_pct, bar_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.InitialCash, summary.FinalCash, summary.TotalReturnPct,
		summary.AnnualizedReturnPct, summary.SharpeRatio, summary.MaxDrawdownPct,
		summary.TotalTrades, summary.WinRatePct, summary.BarCount,
	)
	if err != nil {
		return 0, fmt.Errorf("export: inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("export: reading run id: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO trades (
			run_id, entry_timestamp, exit_timestamp, entry_price, exit_price,
			size, pnl, pnl_pct, entry_regime, exit_regime, is_win
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("export: preparing trade insert: %w", err)
	}
	defer stmt.Close()

	for _, tr := range trades {
		isWin := 0
		if tr.IsWin {
			isWin = 1
		}
		if _, err := stmt.Exec(
			runID, tr.EntryTimestamp, tr.ExitTimestamp, tr.EntryPrice, tr.ExitPrice,
			tr.Size, tr.PnL, tr.PnLPct, string(tr.EntryRegime), string(tr.ExitRegime), isWin,
		); err != nil {
			return 0, fmt.Errorf("export: inserting trade: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("export: committing run transaction: %w", err)
	}
	return runID, nil
}
