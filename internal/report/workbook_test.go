package report

import (
	"testing"

	"finsight/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func reportDataset(t *testing.T) *model.Dataset {
	t.Helper()
	dec := decimal.RequireFromString
	return &model.Dataset{
		Actuals: []model.MonthlyRecord{
			{Entity: "EntityA", AccountCategory: model.CategoryRevenue, Month: "2025-06", Amount: dec("320000"), Currency: "USD"},
			{Entity: "EntityA", AccountCategory: model.CategoryCOGS, Month: "2025-06", Amount: dec("95000"), Currency: "USD"},
			{Entity: "EntityA", AccountCategory: "Opex:Marketing", Month: "2025-06", Amount: dec("31000"), Currency: "USD"},
			{Entity: "EntityA", AccountCategory: "Opex:Rent", Month: "2025-06", Amount: dec("5000"), Currency: "USD"},
		},
		Budget: []model.MonthlyRecord{
			{Entity: "EntityA", AccountCategory: model.CategoryRevenue, Month: "2025-06", Amount: dec("315000"), Currency: "USD"},
		},
		Cash: []model.CashBalance{
			{Month: "2025-05", CashUSD: dec("950000")},
			{Month: "2025-06", CashUSD: dec("900000")},
		},
	}
}

func TestBuild(t *testing.T) {
	f, err := Build(reportDataset(t), 6)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != SheetRevenue || sheets[1] != SheetOpex {
		t.Fatalf("sheets = %v, want [%s %s]", sheets, SheetRevenue, SheetOpex)
	}

	// Values are spot-checked raw to stay independent of number formats.
	raw := func(sheet, cell string) string {
		t.Helper()
		v, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
		if err != nil {
			t.Fatalf("GetCellValue(%s!%s): %v", sheet, cell, err)
		}
		return v
	}

	if got := raw(SheetRevenue, "B2"); got != "2025-06" {
		t.Errorf("as-of month = %q, want 2025-06", got)
	}
	if got := raw(SheetRevenue, "B4"); got != "320000" {
		t.Errorf("actual = %q, want 320000", got)
	}
	if got := raw(SheetRevenue, "B5"); got != "315000" {
		t.Errorf("budget = %q, want 315000", got)
	}
	if got := raw(SheetRevenue, "B6"); got != "5000" {
		t.Errorf("variance = %q, want 5000", got)
	}

	// Opex lines sort descending by USD.
	if got := raw(SheetOpex, "A2"); got != "Marketing" {
		t.Errorf("first opex category = %q, want Marketing", got)
	}
	if got := raw(SheetOpex, "A3"); got != "Rent" {
		t.Errorf("second opex category = %q, want Rent", got)
	}
}

func TestBuild_NoActuals(t *testing.T) {
	if _, err := Build(&model.Dataset{}, 6); err == nil {
		t.Fatal("Build succeeded with no actuals, want error")
	}
}
