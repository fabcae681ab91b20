// Package report builds the two-sheet board-pack workbook: revenue vs
// budget for the latest month, the opex breakdown, and the trailing cash
// trend.
package report

import (
	"errors"
	"fmt"

	"finsight/internal/metrics"
	"finsight/internal/model"

	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported workbook.
const (
	SheetRevenue = "Revenue vs Budget"
	SheetOpex    = "Opex & Cash"
)

const usdFormat = "#,##0"

// Build assembles the workbook from the dataset. The caller is responsible
// for saving and closing the returned file.
func Build(d *model.Dataset, cashTrendMonths int) (*excelize.File, error) {
	month := d.LatestActualMonth()
	if month == "" {
		return nil, &metrics.NoDataError{Subject: "actuals"}
	}

	f := excelize.NewFile()
	if err := buildRevenueSheet(f, d, month); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := buildOpexSheet(f, d, month, cashTrendMonths); err != nil {
		_ = f.Close()
		return nil, err
	}

	return f, nil
}

func buildRevenueSheet(f *excelize.File, d *model.Dataset, month string) error {
	// Rename the default sheet instead of leaving an empty "Sheet1" behind.
	if err := f.SetSheetName("Sheet1", SheetRevenue); err != nil {
		return err
	}

	rvb, err := metrics.RevenueVsBudget(d, month)
	if err != nil {
		return err
	}

	usdStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(usdFormat)})
	if err != nil {
		return err
	}

	setCells(f, SheetRevenue, [][]interface{}{
		{"Revenue vs Budget"},
		{"As of", month},
		{},
		{"Actual (USD)", rvb.ActualUSD.InexactFloat64()},
		{"Budget (USD)", rvb.BudgetUSD.InexactFloat64()},
		{"Variance (USD)", rvb.VarianceUSD.InexactFloat64()},
	})
	if rvb.PctDefined {
		setCells(f, SheetRevenue, [][]interface{}{{"Variance %", rvb.VariancePct / 100}})
	} else {
		setCells(f, SheetRevenue, [][]interface{}{{"Variance %", "n/a"}})
	}

	_ = f.SetCellStyle(SheetRevenue, "B4", "B6", usdStyle)
	_ = f.SetColWidth(SheetRevenue, "A", "A", 18)
	_ = f.SetColWidth(SheetRevenue, "B", "B", 14)
	return nil
}

func buildOpexSheet(f *excelize.File, d *model.Dataset, month string, cashTrendMonths int) error {
	if _, err := f.NewSheet(SheetOpex); err != nil {
		return err
	}

	rows := [][]interface{}{
		{fmt.Sprintf("Opex Breakdown — %s", month)},
	}

	lines, err := metrics.OpexBreakdown(d, month)
	var noData *metrics.NoDataError
	switch {
	case err == nil:
		for _, l := range lines {
			rows = append(rows, []interface{}{l.Category, l.USD.InexactFloat64()})
		}
	case errors.As(err, &noData):
		rows = append(rows, []interface{}{"No Opex rows for this month"})
	default:
		return err
	}

	rows = append(rows, []interface{}{}, []interface{}{fmt.Sprintf("Cash Trend — last %d months", cashTrendMonths)})
	for _, cb := range metrics.CashTrend(d, cashTrendMonths) {
		rows = append(rows, []interface{}{cb.Month, cb.CashUSD.InexactFloat64()})
	}

	setCells(f, SheetOpex, rows)
	_ = f.SetColWidth(SheetOpex, "A", "A", 28)
	_ = f.SetColWidth(SheetOpex, "B", "B", 14)
	return nil
}

// setCells writes rows starting below any rows already written to the sheet.
func setCells(f *excelize.File, sheet string, rows [][]interface{}) {
	start := 1
	if existing, err := f.GetRows(sheet); err == nil {
		start = len(existing) + 1
	}
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, start+i)
			if err != nil {
				continue
			}
			_ = f.SetCellValue(sheet, cell, val)
		}
	}
}

func strPtr(s string) *string { return &s }
