package metrics

import (
	"errors"
	"math"
	"testing"

	"finsight/internal/model"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal fixture %q: %v", s, err)
	}
	return d
}

func rec(t *testing.T, entity, category, month, amount, currency string) model.MonthlyRecord {
	t.Helper()
	return model.MonthlyRecord{
		Entity:          entity,
		AccountCategory: category,
		Month:           month,
		Amount:          dec(t, amount),
		Currency:        currency,
	}
}

// testData builds a three-month fixture spanning two entities and two
// currencies (EUR at 1.10 throughout), hand-computable end to end.
func testData(t *testing.T) *model.Dataset {
	t.Helper()
	d := &model.Dataset{
		Actuals: []model.MonthlyRecord{
			rec(t, "EntityA", "Revenue", "2025-04", "80000", "USD"),
			rec(t, "EntityA", "COGS", "2025-04", "20000", "USD"),
			rec(t, "EntityA", "Revenue", "2025-05", "90000", "USD"),
			rec(t, "EntityA", "COGS", "2025-05", "30000", "USD"),
			rec(t, "EntityA", "Revenue", "2025-06", "100000", "USD"),
			rec(t, "EntityB", "Revenue", "2025-06", "200000", "EUR"),
			rec(t, "EntityA", "COGS", "2025-06", "40000", "USD"),
			rec(t, "EntityB", "COGS", "2025-06", "50000", "EUR"),
			rec(t, "EntityA", "Opex:Marketing", "2025-06", "20000", "USD"),
			rec(t, "EntityB", "Opex:Marketing", "2025-06", "10000", "EUR"),
			rec(t, "EntityA", "Opex:Sales", "2025-06", "31000", "USD"),
			rec(t, "EntityA", "Opex:Rent", "2025-06", "5000", "USD"),
		},
		Budget: []model.MonthlyRecord{
			rec(t, "EntityA", "Revenue", "2025-06", "150000", "USD"),
			rec(t, "EntityB", "Revenue", "2025-06", "150000", "EUR"),
		},
		Cash: []model.CashBalance{
			{Month: "2025-03", CashUSD: dec(t, "1000000")},
			{Month: "2025-04", CashUSD: dec(t, "950000")},
			{Month: "2025-05", CashUSD: dec(t, "920000")},
			{Month: "2025-06", CashUSD: dec(t, "900000")},
		},
	}
	for _, m := range []string{"2025-03", "2025-04", "2025-05", "2025-06"} {
		d.Fx = append(d.Fx,
			model.FxRate{Month: m, Currency: "USD", RateToUSD: dec(t, "1.0")},
			model.FxRate{Month: m, Currency: "EUR", RateToUSD: dec(t, "1.10")},
		)
	}
	return d
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestRevenueVsBudget_HandComputed(t *testing.T) {
	d := testData(t)

	got, err := RevenueVsBudget(d, "2025-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Actual: 100000 USD + 200000 EUR * 1.10 = 320000
	if !got.ActualUSD.Equal(dec(t, "320000")) {
		t.Errorf("ActualUSD = %s, want 320000", got.ActualUSD)
	}
	// Budget: 150000 USD + 150000 EUR * 1.10 = 315000
	if !got.BudgetUSD.Equal(dec(t, "315000")) {
		t.Errorf("BudgetUSD = %s, want 315000", got.BudgetUSD)
	}
	if !got.VarianceUSD.Equal(dec(t, "5000")) {
		t.Errorf("VarianceUSD = %s, want 5000", got.VarianceUSD)
	}
	if !got.PctDefined {
		t.Fatal("PctDefined = false, want true")
	}
	if want := 5000.0 / 315000.0 * 100; !approxEqual(got.VariancePct, want) {
		t.Errorf("VariancePct = %f, want %f", got.VariancePct, want)
	}
}

func TestRevenueVsBudget_MissingMonth(t *testing.T) {
	d := testData(t)

	_, err := RevenueVsBudget(d, "2025-01")
	var noData *NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("err = %v, want NoDataError", err)
	}
	if noData.Month != "2025-01" {
		t.Errorf("NoDataError.Month = %q, want 2025-01", noData.Month)
	}
}

func TestRevenueVsBudget_ZeroBudgetPctUndefined(t *testing.T) {
	d := testData(t)
	d.Budget = []model.MonthlyRecord{
		rec(t, "EntityA", "Revenue", "2025-06", "0", "USD"),
	}

	got, err := RevenueVsBudget(d, "2025-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PctDefined {
		t.Error("PctDefined = true with zero budget, want false")
	}
}

func TestRevenueVsBudget_MissingRate(t *testing.T) {
	d := testData(t)
	d.Actuals = append(d.Actuals, rec(t, "EntityC", "Revenue", "2025-06", "1000", "GBP"))

	_, err := RevenueVsBudget(d, "2025-06")
	var missing *MissingRateError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingRateError", err)
	}
	if missing.Currency != "GBP" || missing.Month != "2025-06" {
		t.Errorf("MissingRateError = %+v, want GBP/2025-06", missing)
	}
}

func TestGrossMarginTrend_Chronological(t *testing.T) {
	d := testData(t)

	got, err := GrossMarginTrend(d, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	wantMonths := []string{"2025-04", "2025-05", "2025-06"}
	// April: (80000-20000)/80000 = 75%
	// May:   (90000-30000)/90000 = 66.67%
	// June:  rev 320000, cogs 40000 + 55000 = 95000 -> 70.3125%
	wantPcts := []float64{75.0, 100.0 * 60000 / 90000, 70.3125}

	for i, p := range got {
		if p.Month != wantMonths[i] {
			t.Errorf("point %d month = %q, want %q", i, p.Month, wantMonths[i])
		}
		if !p.Defined {
			t.Errorf("point %d not defined", i)
		}
		if !approxEqual(p.Pct, wantPcts[i]) {
			t.Errorf("point %d pct = %f, want %f", i, p.Pct, wantPcts[i])
		}
	}
}

func TestGrossMarginTrend_ZeroRevenueUndefined(t *testing.T) {
	d := &model.Dataset{
		Actuals: []model.MonthlyRecord{
			rec(t, "EntityA", "COGS", "2025-06", "5000", "USD"),
		},
		Fx: []model.FxRate{
			{Month: "2025-06", Currency: "USD", RateToUSD: decimal.NewFromInt(1)},
		},
	}

	got, err := GrossMarginTrend(d, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Defined {
		t.Error("margin defined with zero revenue, want undefined marker")
	}
}

func TestGrossMarginTrend_NoActuals(t *testing.T) {
	d := &model.Dataset{}
	_, err := GrossMarginTrend(d, 3)
	var noData *NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("err = %v, want NoDataError", err)
	}
}

func TestOpexBreakdown_SortedWithTies(t *testing.T) {
	d := testData(t)

	got, err := OpexBreakdown(d, "2025-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Marketing: 20000 + 10000*1.10 = 31000; Sales: 31000 (tie, name asc);
	// Rent: 5000.
	want := []OpexLine{
		{Category: "Marketing", USD: dec(t, "31000")},
		{Category: "Sales", USD: dec(t, "31000")},
		{Category: "Rent", USD: dec(t, "5000")},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Category != want[i].Category {
			t.Errorf("line %d category = %q, want %q", i, got[i].Category, want[i].Category)
		}
		if !got[i].USD.Equal(want[i].USD) {
			t.Errorf("line %d usd = %s, want %s", i, got[i].USD, want[i].USD)
		}
	}

	// Strictly descending apart from name-ordered ties.
	for i := 1; i < len(got); i++ {
		if got[i].USD.GreaterThan(got[i-1].USD) {
			t.Errorf("breakdown not sorted descending at %d", i)
		}
	}
}

func TestOpexBreakdown_NoRows(t *testing.T) {
	d := testData(t)
	_, err := OpexBreakdown(d, "2025-04")
	var noData *NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("err = %v, want NoDataError", err)
	}
}

func TestCashRunway_HandComputed(t *testing.T) {
	d := testData(t)

	got, err := CashRunway(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AsOf != "2025-06" {
		t.Errorf("AsOf = %q, want 2025-06", got.AsOf)
	}
	if got.Infinite {
		t.Fatal("Infinite = true, want finite runway")
	}
	// Burns: 50000, 30000, 20000 -> avg 33333.33; 900000 / avg = 27.0
	if want := 27.0; !approxEqual(got.Months, want) {
		t.Errorf("Months = %f, want %f", got.Months, want)
	}
}

func TestCashRunway_GrowingCashIsInfinite(t *testing.T) {
	d := testData(t)
	d.Cash = []model.CashBalance{
		{Month: "2025-04", CashUSD: dec(t, "900000")},
		{Month: "2025-05", CashUSD: dec(t, "950000")},
		{Month: "2025-06", CashUSD: dec(t, "1000000")},
	}

	got, err := CashRunway(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Infinite {
		t.Error("Infinite = false with growing cash, want true")
	}
}

func TestCashRunway_SingleBalanceIsInfinite(t *testing.T) {
	d := testData(t)
	d.Cash = d.Cash[:1]

	got, err := CashRunway(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Infinite {
		t.Error("Infinite = false with no deltas, want true")
	}
}

func TestCashRunway_NoBalances(t *testing.T) {
	d := testData(t)
	d.Cash = nil

	_, err := CashRunway(d)
	var noData *NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("err = %v, want NoDataError", err)
	}
}

func TestEBITDATrend(t *testing.T) {
	d := testData(t)

	got, err := EBITDATrend(d, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 (all months present)", len(got))
	}

	// June: 320000 - 95000 - (31000 + 31000 + 5000) = 158000
	june := got[2]
	if june.Month != "2025-06" {
		t.Fatalf("last point month = %q, want 2025-06", june.Month)
	}
	if !june.EBITDA.Equal(dec(t, "158000")) {
		t.Errorf("June EBITDA = %s, want 158000", june.EBITDA)
	}
	// April has no opex rows: EBITDA = 80000 - 20000
	if !got[0].EBITDA.Equal(dec(t, "60000")) {
		t.Errorf("April EBITDA = %s, want 60000", got[0].EBITDA)
	}
}

func TestCashTrend_Window(t *testing.T) {
	d := testData(t)

	got := CashTrend(d, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Month != "2025-05" || got[1].Month != "2025-06" {
		t.Errorf("months = %q, %q, want 2025-05, 2025-06", got[0].Month, got[1].Month)
	}
}
