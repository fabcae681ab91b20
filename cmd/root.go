package cmd

import (
	"fmt"
	"os"

	"finsight/internal/config"
	"finsight/internal/model"
	"finsight/internal/pipeline"
	"finsight/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagNoCache bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "finsight [question]",
	Short: "Finance copilot CLI",
	Long: "Ask plain-English finance questions over actuals, budget, FX, and cash CSVs:\n" +
		"revenue vs budget, gross margin trend, opex breakdown, EBITDA, cash runway.",
	Args: cobra.ArbitraryArgs,
	RunE: runAsk,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cfg, _ := config.Load()

	defaultDataDir := cfg.General.DataDir
	if defaultDataDir == "" {
		defaultDataDir = "fixtures"
	}

	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", defaultDataDir, "Directory holding actuals.csv, budget.csv, fx.csv, cash.csv")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse the CSVs")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadData is the shared data loading path used by all commands.
// Uses the SQLite cache when available so repeat questions skip CSV parsing.
func loadData() (*model.Dataset, error) {
	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			// Cache open failed, fall back to a plain parse
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, parsing CSVs\n")
			}
		} else {
			defer func() { _ = cache.Close() }()

			result, err := pipeline.LoadWithCache(flagDataDir, cache)
			if err != nil {
				return nil, err
			}
			if !flagQuiet {
				reportLoad(result)
			}
			return result.Dataset, nil
		}
	}

	result, err := pipeline.Load(flagDataDir)
	if err != nil {
		return nil, err
	}
	if !flagQuiet {
		reportLoad(result)
	}
	return result.Dataset, nil
}

func reportLoad(r *pipeline.LoadResult) {
	origin := "parsed"
	if r.FromCache {
		origin = "cached"
	}
	fmt.Fprintf(os.Stderr, "  Loaded %d actual + %d budget rows, %d FX rates, %d cash months (%s)\n",
		r.ActualRows, r.BudgetRows, r.FxRows, r.CashMonths, origin)
}
