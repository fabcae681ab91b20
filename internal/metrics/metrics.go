package metrics

import (
	"sort"

	"finsight/internal/model"

	"github.com/shopspring/decimal"
)

// RevenueVsBudgetResult holds USD revenue totals and variance for one month.
type RevenueVsBudgetResult struct {
	Month       string
	ActualUSD   decimal.Decimal
	BudgetUSD   decimal.Decimal
	VarianceUSD decimal.Decimal
	VariancePct float64
	PctDefined  bool // false when the budget total is zero
}

// MarginPoint is one month of the gross margin trend.
type MarginPoint struct {
	Month   string
	Pct     float64
	Defined bool // false when the month's revenue is zero
}

// OpexLine is one category of an opex breakdown, in USD.
type OpexLine struct {
	Category string // without the "Opex:" prefix
	USD      decimal.Decimal
}

// RunwayResult holds the cash runway computation.
type RunwayResult struct {
	AsOf       string
	CashUSD    decimal.Decimal
	AvgBurnUSD decimal.Decimal
	Months     float64
	Infinite   bool // cash flat or growing over the trailing window
}

// EBITDAPoint is one month of the EBITDA trend, all values in USD.
type EBITDAPoint struct {
	Month     string
	Revenue   decimal.Decimal
	COGS      decimal.Decimal
	OpexTotal decimal.Decimal
	EBITDA    decimal.Decimal
}

// burnWindow is the number of trailing month-over-month cash deltas
// averaged into the burn rate.
const burnWindow = 3

// RevenueVsBudget sums actual and budget revenue across entities for month,
// both converted to USD. A month with no revenue rows in either dataset
// yields a NoDataError.
func RevenueVsBudget(d *model.Dataset, month string) (RevenueVsBudgetResult, error) {
	actual, aFound, err := sumCategoryUSD(d, d.Actuals, month, model.CategoryRevenue)
	if err != nil {
		return RevenueVsBudgetResult{}, err
	}
	budget, bFound, err := sumCategoryUSD(d, d.Budget, month, model.CategoryRevenue)
	if err != nil {
		return RevenueVsBudgetResult{}, err
	}
	if !aFound && !bFound {
		return RevenueVsBudgetResult{}, &NoDataError{Month: month, Subject: "revenue rows"}
	}

	res := RevenueVsBudgetResult{
		Month:       month,
		ActualUSD:   actual,
		BudgetUSD:   budget,
		VarianceUSD: actual.Sub(budget),
	}
	if !budget.IsZero() {
		res.VariancePct = res.VarianceUSD.Div(budget).InexactFloat64() * 100
		res.PctDefined = true
	}
	return res, nil
}

// GrossMarginTrend computes GM% = (Revenue - COGS) / Revenue x 100 for the
// last lookback months of actuals, in chronological order. Months with zero
// revenue are returned with Defined=false rather than dividing.
func GrossMarginTrend(d *model.Dataset, lookback int) ([]MarginPoint, error) {
	months := d.LastActualMonths(lookback)
	if len(months) == 0 {
		return nil, &NoDataError{Subject: "actuals"}
	}

	byMonth, err := usdByCategory(d, months)
	if err != nil {
		return nil, err
	}

	points := make([]MarginPoint, 0, len(months))
	for _, m := range months {
		byCat := byMonth[m]
		rev := byCat[model.CategoryRevenue]
		cogs := byCat[model.CategoryCOGS]

		p := MarginPoint{Month: m}
		if !rev.IsZero() {
			p.Pct = rev.Sub(cogs).Div(rev).InexactFloat64() * 100
			p.Defined = true
		}
		points = append(points, p)
	}
	return points, nil
}

// OpexBreakdown sums each Opex:* category for month in USD, sorted
// descending by amount with ties broken by category name ascending.
// Categories with no rows for the month are omitted.
func OpexBreakdown(d *model.Dataset, month string) ([]OpexLine, error) {
	totals := make(map[string]decimal.Decimal)
	for _, r := range d.Actuals {
		if r.Month != month || !r.IsOpex() {
			continue
		}
		usd, err := toUSD(d, r)
		if err != nil {
			return nil, err
		}
		cat := r.OpexCategory()
		totals[cat] = totals[cat].Add(usd)
	}
	if len(totals) == 0 {
		return nil, &NoDataError{Month: month, Subject: "opex rows"}
	}

	lines := make([]OpexLine, 0, len(totals))
	for cat, usd := range totals {
		lines = append(lines, OpexLine{Category: cat, USD: usd})
	}
	sort.Slice(lines, func(i, j int) bool {
		if !lines[i].USD.Equal(lines[j].USD) {
			return lines[i].USD.GreaterThan(lines[j].USD)
		}
		return lines[i].Category < lines[j].Category
	})
	return lines, nil
}

// CashRunway divides the latest cash balance by the trailing average burn.
// Burn is the month-over-month decrease in cash, averaged over the last
// burnWindow deltas; months where cash grew contribute zero burn. When the
// average burn is zero the runway is reported as infinite rather than
// dividing.
func CashRunway(d *model.Dataset) (RunwayResult, error) {
	cash := d.CashSorted()
	if len(cash) == 0 {
		return RunwayResult{}, &NoDataError{Subject: "cash balances"}
	}

	latest := cash[len(cash)-1]
	res := RunwayResult{AsOf: latest.Month, CashUSD: latest.CashUSD}

	deltas := len(cash) - 1
	if deltas > burnWindow {
		deltas = burnWindow
	}
	if deltas == 0 {
		res.Infinite = true
		return res, nil
	}

	var totalBurn decimal.Decimal
	for i := len(cash) - deltas; i < len(cash); i++ {
		burn := cash[i-1].CashUSD.Sub(cash[i].CashUSD)
		if burn.IsPositive() {
			totalBurn = totalBurn.Add(burn)
		}
	}
	res.AvgBurnUSD = totalBurn.Div(decimal.NewFromInt(int64(deltas)))

	if !res.AvgBurnUSD.IsPositive() {
		res.Infinite = true
		return res, nil
	}

	res.Months = latest.CashUSD.Div(res.AvgBurnUSD).InexactFloat64()
	return res, nil
}

// EBITDATrend computes per-month EBITDA = Revenue - COGS - total Opex in USD
// for the last months of actuals, chronological.
func EBITDATrend(d *model.Dataset, months int) ([]EBITDAPoint, error) {
	window := d.LastActualMonths(months)
	if len(window) == 0 {
		return nil, &NoDataError{Subject: "actuals"}
	}

	byMonth, err := usdByCategory(d, window)
	if err != nil {
		return nil, err
	}

	points := make([]EBITDAPoint, 0, len(window))
	for _, m := range window {
		byCat := byMonth[m]
		p := EBITDAPoint{
			Month:     m,
			Revenue:   byCat[model.CategoryRevenue],
			COGS:      byCat[model.CategoryCOGS],
			OpexTotal: opexTotal(byCat),
		}
		p.EBITDA = p.Revenue.Sub(p.COGS).Sub(p.OpexTotal)
		points = append(points, p)
	}
	return points, nil
}

// CashTrend returns the last months of cash balances, chronological.
func CashTrend(d *model.Dataset, months int) []model.CashBalance {
	cash := d.CashSorted()
	if months > 0 && len(cash) > months {
		cash = cash[len(cash)-months:]
	}
	return cash
}
