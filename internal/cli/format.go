// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD formats a USD amount rounded to whole dollars with comma
// separators. e.g., 1014896.4 -> "$1,014,896", -57791.68 -> "-$57,792"
func FormatUSD(d decimal.Decimal) string {
	n := d.Round(0).IntPart()
	if n < 0 {
		return "-$" + FormatNumber(-n)
	}
	return "$" + FormatNumber(n)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a value already expressed in percent units.
// e.g., 61.25 -> "61.3%"
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatSignedPercent is FormatPercent with an explicit leading sign,
// used for variances. e.g., -5.4 -> "-5.4%", 3.2 -> "+3.2%"
func FormatSignedPercent(pct float64) string {
	if pct >= 0 {
		return "+" + FormatPercent(pct)
	}
	return FormatPercent(pct)
}

// FormatRunway formats a months-of-runway figure.
// e.g., 7.31 -> "~7.3 months"
func FormatRunway(months float64) string {
	return fmt.Sprintf("~%.1f months", months)
}
