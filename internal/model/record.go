// Package model defines domain types for finsight datasets, intents, and results.
package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Account categories as they appear in the actuals and budget files.
// Operating expense rows use a prefixed category like "Opex:Marketing".
const (
	CategoryRevenue = "Revenue"
	CategoryCOGS    = "COGS"
	OpexPrefix      = "Opex:"
)

// MonthlyRecord is one row of the actuals or budget dataset.
type MonthlyRecord struct {
	Entity          string
	AccountCategory string
	Month           string // YYYY-MM
	Amount          decimal.Decimal
	Currency        string
}

// IsOpex reports whether the record is an operating-expense line.
func (r MonthlyRecord) IsOpex() bool {
	return strings.HasPrefix(r.AccountCategory, OpexPrefix)
}

// OpexCategory returns the category name without the "Opex:" prefix,
// or the full category for non-opex rows.
func (r MonthlyRecord) OpexCategory() string {
	return strings.TrimPrefix(r.AccountCategory, OpexPrefix)
}

// FxRate converts one unit of Currency to USD for Month.
// There is exactly one rate per (month, currency) pair.
type FxRate struct {
	Month     string // YYYY-MM
	Currency  string
	RateToUSD decimal.Decimal
}

// CashBalance is the consolidated USD cash position at the end of Month.
// There is exactly one balance per month.
type CashBalance struct {
	Month   string // YYYY-MM
	CashUSD decimal.Decimal
}
