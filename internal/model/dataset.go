package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Dataset bundles the four input collections as an immutable snapshot.
// All accessors treat the data as read-only.
type Dataset struct {
	Actuals []MonthlyRecord
	Budget  []MonthlyRecord
	Fx      []FxRate
	Cash    []CashBalance
}

// ActualMonths returns the distinct months present in actuals, ascending.
// YYYY-MM strings sort lexicographically in chronological order.
func (d *Dataset) ActualMonths() []string {
	seen := make(map[string]struct{})
	for _, r := range d.Actuals {
		seen[r.Month] = struct{}{}
	}
	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Strings(months)
	return months
}

// LatestActualMonth returns the most recent month in actuals, or "" if empty.
func (d *Dataset) LatestActualMonth() string {
	months := d.ActualMonths()
	if len(months) == 0 {
		return ""
	}
	return months[len(months)-1]
}

// LastActualMonths returns up to n trailing months of actuals, ascending.
func (d *Dataset) LastActualMonths(n int) []string {
	months := d.ActualMonths()
	if n <= 0 || n >= len(months) {
		return months
	}
	return months[len(months)-n:]
}

// LatestMonthOfYear returns the most recent actual month whose calendar month
// equals mm (1-12), or "" when none matches. Used to resolve questions like
// "for June" that name a month without a year.
func (d *Dataset) LatestMonthOfYear(mm int) string {
	if mm < 1 || mm > 12 {
		return ""
	}
	suffix := monthSuffix(mm)
	months := d.ActualMonths()
	for i := len(months) - 1; i >= 0; i-- {
		if len(months[i]) == 7 && months[i][4:] == suffix {
			return months[i]
		}
	}
	return ""
}

// RateFor looks up the FX rate for a (month, currency) pair.
func (d *Dataset) RateFor(month, currency string) (decimal.Decimal, bool) {
	for _, fx := range d.Fx {
		if fx.Month == month && fx.Currency == currency {
			return fx.RateToUSD, true
		}
	}
	return decimal.Decimal{}, false
}

// CashSorted returns cash balances sorted ascending by month.
func (d *Dataset) CashSorted() []CashBalance {
	out := make([]CashBalance, len(d.Cash))
	copy(out, d.Cash)
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func monthSuffix(mm int) string {
	return "-" + string([]byte{'0' + byte(mm/10), '0' + byte(mm%10)})
}
