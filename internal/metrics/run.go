// Package metrics computes USD-normalized finance metrics over a Dataset
// and shapes them into render-ready results.
package metrics

import (
	"fmt"

	"finsight/internal/cli"
	"finsight/internal/model"
)

// cashTrendMonths is the window charted alongside the runway answer.
const cashTrendMonths = 6

// Run dispatches a classified intent to its computation and wraps the
// outcome in a MetricResult. Each call is a stateless computation over the
// dataset snapshot.
func Run(intent model.Intent, d *model.Dataset) (model.MetricResult, error) {
	switch intent.Kind {
	case model.IntentRevenueVsBudget:
		month, err := resolveMonth(intent, d)
		if err != nil {
			return model.MetricResult{}, err
		}
		res, err := RevenueVsBudget(d, month)
		if err != nil {
			return model.MetricResult{}, err
		}
		return revenueVsBudgetResult(res), nil

	case model.IntentGrossMarginTrend:
		points, err := GrossMarginTrend(d, intent.Lookback)
		if err != nil {
			return model.MetricResult{}, err
		}
		return marginTrendResult(points), nil

	case model.IntentOpexBreakdown:
		month, err := resolveMonth(intent, d)
		if err != nil {
			return model.MetricResult{}, err
		}
		lines, err := OpexBreakdown(d, month)
		if err != nil {
			return model.MetricResult{}, err
		}
		return opexBreakdownResult(month, lines), nil

	case model.IntentCashRunway:
		res, err := CashRunway(d)
		if err != nil {
			return model.MetricResult{}, err
		}
		return runwayResult(res, CashTrend(d, cashTrendMonths)), nil

	case model.IntentEBITDATrend:
		points, err := EBITDATrend(d, cashTrendMonths)
		if err != nil {
			return model.MetricResult{}, err
		}
		return ebitdaResult(points), nil

	default:
		return model.MetricResult{}, ErrUnknownIntent
	}
}

// resolveMonth turns the planner's month parameters into a concrete YYYY-MM:
// an explicit month is used as-is, a year-less month name resolves to the
// latest matching data month, and no mention at all means the latest month.
func resolveMonth(intent model.Intent, d *model.Dataset) (string, error) {
	if intent.Month != "" {
		return intent.Month, nil
	}
	if intent.MonthOfYear != 0 {
		if m := d.LatestMonthOfYear(intent.MonthOfYear); m != "" {
			return m, nil
		}
	}
	if m := d.LatestActualMonth(); m != "" {
		return m, nil
	}
	return "", &NoDataError{Subject: "actuals"}
}

func revenueVsBudgetResult(res RevenueVsBudgetResult) model.MetricResult {
	pct := "n/a"
	if res.PctDefined {
		pct = cli.FormatSignedPercent(res.VariancePct)
	}

	return model.MetricResult{
		Headline: fmt.Sprintf("Revenue vs Budget — %s", res.Month),
		Table: []model.Row{
			{Label: "Actual", Value: cli.FormatUSD(res.ActualUSD)},
			{Label: "Budget", Value: cli.FormatUSD(res.BudgetUSD)},
			{Label: "Variance", Value: cli.FormatUSD(res.VarianceUSD)},
			{Label: "Variance %", Value: pct},
		},
		Chart: &model.ChartSpec{
			Type:   model.ChartBar,
			Title:  fmt.Sprintf("Revenue vs Budget — %s", res.Month),
			YLabel: "USD",
			Points: []model.ChartPoint{
				{Label: "Actual", Value: res.ActualUSD.InexactFloat64()},
				{Label: "Budget", Value: res.BudgetUSD.InexactFloat64()},
			},
		},
	}
}

func marginTrendResult(points []MarginPoint) model.MetricResult {
	rows := make([]model.Row, 0, len(points))
	var chartPoints []model.ChartPoint
	for _, p := range points {
		if p.Defined {
			rows = append(rows, model.Row{Label: p.Month, Value: cli.FormatPercent(p.Pct)})
			chartPoints = append(chartPoints, model.ChartPoint{Label: p.Month, Value: p.Pct})
		} else {
			rows = append(rows, model.Row{Label: p.Month, Value: "n/a (no revenue)"})
		}
	}

	result := model.MetricResult{
		Headline: fmt.Sprintf("Gross Margin %% — last %d months", len(points)),
		Table:    rows,
	}
	if len(chartPoints) > 0 {
		result.Chart = &model.ChartSpec{
			Type:   model.ChartLine,
			Title:  result.Headline,
			YLabel: "GM %",
			Points: chartPoints,
		}
	}
	return result
}

func opexBreakdownResult(month string, lines []OpexLine) model.MetricResult {
	rows := make([]model.Row, 0, len(lines))
	points := make([]model.ChartPoint, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, model.Row{Label: l.Category, Value: cli.FormatUSD(l.USD)})
		points = append(points, model.ChartPoint{Label: l.Category, Value: l.USD.InexactFloat64()})
	}

	return model.MetricResult{
		Headline: fmt.Sprintf("Opex Breakdown — %s", month),
		Table:    rows,
		Chart: &model.ChartSpec{
			Type:   model.ChartBar,
			Title:  fmt.Sprintf("Opex Breakdown — %s", month),
			YLabel: "USD",
			Points: points,
		},
	}
}

func runwayResult(res RunwayResult, trend []model.CashBalance) model.MetricResult {
	headline := fmt.Sprintf("Cash runway: %s", cli.FormatRunway(res.Months))
	runwayValue := cli.FormatRunway(res.Months)
	if res.Infinite {
		headline = "No net burn over the trailing window — runway not a concern"
		runwayValue = "∞"
	}

	result := model.MetricResult{
		Headline: headline,
		Table: []model.Row{
			{Label: "As of", Value: res.AsOf},
			{Label: "Cash", Value: cli.FormatUSD(res.CashUSD)},
			{Label: "Avg monthly burn", Value: cli.FormatUSD(res.AvgBurnUSD)},
			{Label: "Runway", Value: runwayValue},
		},
	}

	if len(trend) > 0 {
		points := make([]model.ChartPoint, 0, len(trend))
		for _, c := range trend {
			points = append(points, model.ChartPoint{Label: c.Month, Value: c.CashUSD.InexactFloat64()})
		}
		result.Chart = &model.ChartSpec{
			Type:   model.ChartLine,
			Title:  fmt.Sprintf("Cash Trend — last %d months", len(trend)),
			YLabel: "USD",
			Points: points,
		}
	}
	return result
}

func ebitdaResult(points []EBITDAPoint) model.MetricResult {
	rows := make([]model.Row, 0, len(points))
	chartPoints := make([]model.ChartPoint, 0, len(points))
	for _, p := range points {
		rows = append(rows, model.Row{Label: p.Month, Value: cli.FormatUSD(p.EBITDA)})
		chartPoints = append(chartPoints, model.ChartPoint{Label: p.Month, Value: p.EBITDA.InexactFloat64()})
	}

	return model.MetricResult{
		Headline: fmt.Sprintf("EBITDA — last %d months", len(points)),
		Table:    rows,
		Chart: &model.ChartSpec{
			Type:   model.ChartLine,
			Title:  fmt.Sprintf("EBITDA — last %d months", len(points)),
			YLabel: "USD",
			Points: chartPoints,
		},
	}
}
