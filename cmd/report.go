package cmd

import (
	"fmt"

	"finsight/internal/config"
	"finsight/internal/report"

	"github.com/spf13/cobra"
)

var flagReportOut string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the two-sheet board pack (xlsx)",
	Long: "Builds a workbook for the latest month: revenue vs budget with variance,\n" +
		"the opex breakdown, and the trailing cash trend.",
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&flagReportOut, "out", "o", "", "Output path (default board_pack.xlsx)")
}

func runReport(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := flagReportOut
	if out == "" {
		out = cfg.Report.OutputPath
	}
	if out == "" {
		out = "board_pack.xlsx"
	}

	trendMonths := cfg.Report.CashTrendMonths
	if trendMonths <= 0 {
		trendMonths = 6
	}

	data, err := loadData()
	if err != nil {
		return err
	}

	wb, err := report.Build(data, trendMonths)
	if err != nil {
		return err
	}
	defer func() { _ = wb.Close() }()

	if err := wb.SaveAs(out); err != nil {
		return fmt.Errorf("saving %s: %w", out, err)
	}

	fmt.Printf("  Wrote %s\n", out)
	return nil
}
