package planner

import (
	"testing"

	"finsight/internal/model"
)

func TestClassify_Kinds(t *testing.T) {
	cases := []struct {
		question string
		want     model.IntentKind
	}{
		{"What was June 2025 revenue vs budget in USD?", model.IntentRevenueVsBudget},
		{"revenue versus budget", model.IntentRevenueVsBudget},
		{"Show Gross Margin % trend for the last 3 months.", model.IntentGrossMarginTrend},
		{"gm% trend", model.IntentGrossMarginTrend},
		{"Break down Opex by category for June 2025.", model.IntentOpexBreakdown},
		{"operating expenses breakdown", model.IntentOpexBreakdown},
		{"What is our cash runway right now?", model.IntentCashRunway},
		{"how long is the runway", model.IntentCashRunway},
		{"Show EBITDA for the last 6 months.", model.IntentEBITDATrend},
		{"what's the weather like", model.IntentUnknown},
		{"", model.IntentUnknown},
	}

	for _, tc := range cases {
		got := Classify(tc.question)
		if got.Kind != tc.want {
			t.Errorf("Classify(%q).Kind = %s, want %s", tc.question, got.Kind, tc.want)
		}
	}
}

func TestClassify_RevenueVsBudgetJune2025(t *testing.T) {
	got := Classify("What was June 2025 revenue vs budget in USD?")
	if got.Kind != model.IntentRevenueVsBudget {
		t.Fatalf("Kind = %s, want revenue_vs_budget", got.Kind)
	}
	if got.Month != "2025-06" {
		t.Errorf("Month = %q, want 2025-06", got.Month)
	}
}

func TestClassify_LookbackDefault(t *testing.T) {
	got := Classify("Show Gross Margin % trend.")
	if got.Lookback != DefaultLookback {
		t.Errorf("Lookback = %d, want default %d", got.Lookback, DefaultLookback)
	}
}

func TestClassify_LookbackExplicit(t *testing.T) {
	got := Classify("Show Gross Margin % trend for the last 3 months.")
	if got.Kind != model.IntentGrossMarginTrend {
		t.Fatalf("Kind = %s, want gross_margin_trend", got.Kind)
	}
	if got.Lookback != 3 {
		t.Errorf("Lookback = %d, want 3", got.Lookback)
	}

	got = Classify("margin trend over the last 6 months")
	if got.Lookback != 6 {
		t.Errorf("Lookback = %d, want 6", got.Lookback)
	}
}

func TestClassify_LookbackNumberWords(t *testing.T) {
	got := Classify("Show Gross Margin % trend for the last three months.")
	if got.Lookback != 3 {
		t.Errorf("Lookback = %d, want 3", got.Lookback)
	}

	got = Classify("margin for the last twelve months")
	if got.Lookback != 12 {
		t.Errorf("Lookback = %d, want 12", got.Lookback)
	}
}

func TestClassify_MonthWithoutYear(t *testing.T) {
	got := Classify("Break down Opex for June")
	if got.Kind != model.IntentOpexBreakdown {
		t.Fatalf("Kind = %s, want opex_breakdown", got.Kind)
	}
	if got.Month != "" {
		t.Errorf("Month = %q, want empty (year-less mention)", got.Month)
	}
	if got.MonthOfYear != 6 {
		t.Errorf("MonthOfYear = %d, want 6", got.MonthOfYear)
	}
}

func TestClassifyWithDefault(t *testing.T) {
	got := ClassifyWithDefault("show the margin trend", 6)
	if got.Lookback != 6 {
		t.Errorf("Lookback = %d, want configured 6", got.Lookback)
	}

	// Explicit windows still win over the configured default.
	got = ClassifyWithDefault("margin trend for the last 2 months", 6)
	if got.Lookback != 2 {
		t.Errorf("Lookback = %d, want 2", got.Lookback)
	}

	// A nonsense default falls back to the package default.
	got = ClassifyWithDefault("show the margin trend", -1)
	if got.Lookback != DefaultLookback {
		t.Errorf("Lookback = %d, want %d", got.Lookback, DefaultLookback)
	}
}
