package planner

import "testing"

func TestExtractMonth(t *testing.T) {
	cases := []struct {
		q           string
		wantMonth   string
		wantMonthOf int
	}{
		{"what was june 2025 revenue", "2025-06", 0},
		{"revenue for jun 2025", "2025-06", 0},
		{"revenue for january 2024", "2024-01", 0},
		{"revenue for 2025-06 please", "2025-06", 0},
		{"opex for december", "", 12},
		{"opex for sept", "", 9},
		{"cash runway right now", "", 0},
		// Out-of-range ISO month is not a month token.
		{"value 2025-13 here", "", 0},
	}

	for _, tc := range cases {
		month, monthOf := extractMonth(tc.q)
		if month != tc.wantMonth || monthOf != tc.wantMonthOf {
			t.Errorf("extractMonth(%q) = (%q, %d), want (%q, %d)",
				tc.q, month, monthOf, tc.wantMonth, tc.wantMonthOf)
		}
	}
}

func TestParseLookback(t *testing.T) {
	cases := []struct {
		q      string
		want   int
		wantOK bool
	}{
		{"last 3 months", 3, true},
		{"last 12 months", 12, true},
		{"last month trends", 0, false},
		{"over the last seven months", 7, true},
		{"no window here", 0, false},
	}

	for _, tc := range cases {
		got, ok := parseLookback(tc.q)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("parseLookback(%q) = (%d, %v), want (%d, %v)", tc.q, got, ok, tc.want, tc.wantOK)
		}
	}
}
