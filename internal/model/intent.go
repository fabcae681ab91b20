package model

// IntentKind enumerates the closed set of question intents.
type IntentKind int

const (
	IntentUnknown IntentKind = iota
	IntentRevenueVsBudget
	IntentGrossMarginTrend
	IntentOpexBreakdown
	IntentCashRunway
	IntentEBITDATrend
)

// String returns a stable name for logging and tests.
func (k IntentKind) String() string {
	switch k {
	case IntentRevenueVsBudget:
		return "revenue_vs_budget"
	case IntentGrossMarginTrend:
		return "gross_margin_trend"
	case IntentOpexBreakdown:
		return "opex_breakdown"
	case IntentCashRunway:
		return "cash_runway"
	case IntentEBITDATrend:
		return "ebitda_trend"
	default:
		return "unknown"
	}
}

// Intent is a classified question plus its extracted parameters.
//
// Month is set when the question named a full month ("June 2025", "2025-06").
// MonthOfYear is set instead when only a month name appeared ("for June");
// the toolkit resolves it against the latest matching month in the data.
type Intent struct {
	Kind        IntentKind
	Month       string // YYYY-MM, empty when not mentioned
	MonthOfYear int    // 1-12 when only a month name was given, else 0
	Lookback    int    // trailing window in months for trend intents
}
