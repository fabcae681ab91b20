package metrics

import (
	"finsight/internal/model"

	"github.com/shopspring/decimal"
)

// toUSD converts a record's amount using the FX rate for its (month, currency).
func toUSD(d *model.Dataset, r model.MonthlyRecord) (decimal.Decimal, error) {
	rate, ok := d.RateFor(r.Month, r.Currency)
	if !ok {
		return decimal.Decimal{}, &MissingRateError{Month: r.Month, Currency: r.Currency}
	}
	return r.Amount.Mul(rate), nil
}

// sumCategoryUSD sums records for one (month, category) across entities in USD.
// found reports whether any matching rows existed, so callers can tell a
// legitimate zero from missing data.
func sumCategoryUSD(d *model.Dataset, records []model.MonthlyRecord, month, category string) (total decimal.Decimal, found bool, err error) {
	for _, r := range records {
		if r.Month != month || r.AccountCategory != category {
			continue
		}
		usd, err := toUSD(d, r)
		if err != nil {
			return decimal.Decimal{}, false, err
		}
		total = total.Add(usd)
		found = true
	}
	return total, found, nil
}

// usdByCategory sums actuals in USD per (month, category) for the given months.
func usdByCategory(d *model.Dataset, months []string) (map[string]map[string]decimal.Decimal, error) {
	want := make(map[string]struct{}, len(months))
	for _, m := range months {
		want[m] = struct{}{}
	}

	out := make(map[string]map[string]decimal.Decimal, len(months))
	for _, r := range d.Actuals {
		if _, ok := want[r.Month]; !ok {
			continue
		}
		usd, err := toUSD(d, r)
		if err != nil {
			return nil, err
		}
		byCat := out[r.Month]
		if byCat == nil {
			byCat = make(map[string]decimal.Decimal)
			out[r.Month] = byCat
		}
		byCat[r.AccountCategory] = byCat[r.AccountCategory].Add(usd)
	}
	return out, nil
}

// opexTotal sums all Opex:* categories for one month's category map.
func opexTotal(byCat map[string]decimal.Decimal) decimal.Decimal {
	var total decimal.Decimal
	for cat, usd := range byCat {
		if len(cat) > len(model.OpexPrefix) && cat[:len(model.OpexPrefix)] == model.OpexPrefix {
			total = total.Add(usd)
		}
	}
	return total
}
