// fluxback is the CLI entry point: run a backtest, inspect a prior
// result, or sketch a parameter sweep.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evdnx/fluxback/analytics"
	"github.com/evdnx/fluxback/barsource"
	"github.com/evdnx/fluxback/config"
	"github.com/evdnx/fluxback/export"
	"github.com/evdnx/fluxback/logger"
	"github.com/evdnx/fluxback/orchestrator"
	"github.com/evdnx/fluxback/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fluxback",
	Short: "Regime-aware backtesting engine",
	Long: `fluxback replays historical bars through an online indicator engine,
a market-regime classifier, an SMA-crossover strategy, a slippage-aware
execution simulator, and an analytics tracker, producing a trade log and
a summary report.`,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (not applied: the production logger always logs at info)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(benchmarkCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest",
	Long: `Run a backtest over a CSV bar file using a YAML strategy config.

Example:
  fluxback run --strategy config/sma_demo.yaml --data demo/RELIANCE_1m.csv --out results/sma_demo.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		strategyPath, _ := cmd.Flags().GetString("strategy")
		dataPath, _ := cmd.Flags().GetString("data")
		outPath, _ := cmd.Flags().GetString("out")
		sqlitePath, _ := cmd.Flags().GetString("sqlite")

		if strategyPath == "" || dataPath == "" {
			return fmt.Errorf("--strategy and --data are required")
		}

		log, err := logger.NewProductionLogger()
		if err != nil {
			return fmt.Errorf("setting up logger: %w", err)
		}

		cfg, err := config.LoadWithOverrides(strategyPath)
		if err != nil {
			return fmt.Errorf("loading strategy config: %w", err)
		}

		src, err := barsource.NewCSVSource(dataPath)
		if err != nil {
			return fmt.Errorf("opening data file: %w", err)
		}
		defer src.Close()

		fmt.Printf("Running backtest: %s\n", cfg.Name)
		fmt.Printf("Data file: %s\n", dataPath)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			cancel()
		}()

		result, err := orchestrator.Run(ctx, cfg, src, log)
		if err != nil {
			return fmt.Errorf("running backtest: %w", err)
		}

		fmt.Printf("Processed %d bars.\n", result.BarsSeen)
		printSummary(result.Summary)

		if outPath != "" {
			if err := export.WriteSummaryJSON(outPath, result.Summary); err != nil {
				return fmt.Errorf("exporting summary: %w", err)
			}
			tradeLogPath := tradeLogPathFor(outPath)
			if err := export.WriteTradesCSV(tradeLogPath, result.Trades); err != nil {
				return fmt.Errorf("exporting trade log: %w", err)
			}
			fmt.Printf("\nResults exported to:\n  Summary: %s\n  Trades:  %s\n", outPath, tradeLogPath)
		}

		if sqlitePath != "" {
			store, err := export.OpenSQLiteStore(sqlitePath)
			if err != nil {
				return fmt.Errorf("opening sqlite store: %w", err)
			}
			defer store.Close()
			if _, err := store.SaveRun(result.Summary, result.Trades); err != nil {
				return fmt.Errorf("persisting run to sqlite: %w", err)
			}
			fmt.Printf("  SQLite:  %s\n", sqlitePath)
		}

		return nil
	},
}

func init() {
	runCmd.Flags().String("strategy", "", "strategy config YAML path (required)")
	runCmd.Flags().String("data", "", "OHLCV CSV data path (required)")
	runCmd.Flags().String("out", "", "summary JSON output path (also writes a _trades.csv alongside it)")
	runCmd.Flags().String("sqlite", "", "optional SQLite database path to additionally persist this run")
}

// tradeLogPathFor places the trade log alongside the summary, suffixed
// "_trades.csv" in place of the summary's extension.
func tradeLogPathFor(outPath string) string {
	for i := len(outPath) - 1; i >= 0; i-- {
		if outPath[i] == '.' {
			return outPath[:i] + "_trades.csv"
		}
		if outPath[i] == '/' {
			break
		}
	}
	return outPath + "_trades.csv"
}

func printSummary(s analytics.Summary) {
	fmt.Println("\n=== Backtest Summary ===")
	fmt.Printf("Initial Cash:      $%.2f\n", s.InitialCash)
	fmt.Printf("Final Cash:        $%.2f\n", s.FinalCash)
	fmt.Printf("Total Return:      %.2f%%\n", s.TotalReturnPct)
	fmt.Printf("Annualized Return: %.2f%%\n", s.AnnualizedReturnPct)
	fmt.Printf("Sharpe Ratio:      %.4f\n", s.SharpeRatio)
	fmt.Printf("Max Drawdown:      %.2f%%\n", s.MaxDrawdownPct)

	fmt.Println("\n=== Trade Statistics ===")
	fmt.Printf("Total Trades:      %d\n", s.TotalTrades)
	fmt.Printf("Winning Trades:    %d\n", s.WinningTrades)
	fmt.Printf("Losing Trades:     %d\n", s.LosingTrades)
	fmt.Printf("Win Rate:          %.2f%%\n", s.WinRatePct)
	fmt.Printf("Avg Win:           $%.2f\n", s.AvgWinPct)
	fmt.Printf("Avg Loss:          $%.2f\n", s.AvgLossPct)
	fmt.Printf("Profit Factor:     %.4f\n", s.ProfitFactor)

	if len(s.TradesByRegime) > 0 {
		fmt.Println("\n=== Per-Regime Statistics ===")
		for _, regime := range types.RegimeOrder {
			count, ok := s.TradesByRegime[regime]
			if !ok {
				continue
			}
			fmt.Printf("%s: %d trades, PnL: $%.2f\n", regime, count, s.PnLByRegime[regime])
		}
	}
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print a previously exported results file",
	RunE: func(cmd *cobra.Command, args []string) error {
		resultsPath, _ := cmd.Flags().GetString("results")
		if resultsPath == "" {
			return fmt.Errorf("--results is required")
		}
		data, err := os.ReadFile(resultsPath)
		if err != nil {
			return fmt.Errorf("opening results file: %w", err)
		}
		fmt.Printf("Reading results from: %s\n", resultsPath)
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	statsCmd.Flags().String("results", "", "summary JSON path (required)")
}

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Parameter sweep (not yet implemented)",
	RunE: func(cmd *cobra.Command, args []string) error {
		parallel, _ := cmd.Flags().GetInt("parallel")
		fmt.Println("Benchmark mode not yet implemented.")
		fmt.Printf("This would run parameter sweeps with %d parallel workers.\n", parallel)
		return nil
	},
}

func init() {
	benchmarkCmd.Flags().String("strategy", "", "strategy config YAML path (required)")
	benchmarkCmd.Flags().String("data", "", "OHLCV CSV data path (required)")
	benchmarkCmd.Flags().Int("parallel", 1, "number of parallel workers")
}
