// Package planner classifies free-text finance questions into intents.
//
// Classification is ordered keyword matching over a small closed set.
// A question that matches nothing yields IntentUnknown, which callers
// surface as a help message rather than an error.
package planner

import (
	"regexp"
	"strings"

	"finsight/internal/model"
)

// DefaultLookback is the trailing window applied when a trend question
// doesn't name one ("show the margin trend").
const DefaultLookback = 3

var runwayRe = regexp.MustCompile(`\brunway\b`)

// Classify maps a question to an intent plus extracted parameters.
// Checks run in priority order so that e.g. "revenue vs budget" wins
// over a stray "margin" later in the sentence.
func Classify(question string) model.Intent {
	return ClassifyWithDefault(question, DefaultLookback)
}

// ClassifyWithDefault is Classify with a caller-supplied fallback lookback,
// used to honor the configured default trend window.
func ClassifyWithDefault(question string, defaultLookback int) model.Intent {
	if defaultLookback <= 0 {
		defaultLookback = DefaultLookback
	}

	q := strings.ToLower(strings.TrimSpace(question))

	intent := model.Intent{Kind: classifyKind(q)}
	if intent.Kind == model.IntentUnknown {
		return intent
	}

	intent.Month, intent.MonthOfYear = extractMonth(q)

	if n, ok := parseLookback(q); ok {
		intent.Lookback = n
	} else {
		intent.Lookback = defaultLookback
	}

	return intent
}

func classifyKind(q string) model.IntentKind {
	switch {
	case strings.Contains(q, "cash runway") || runwayRe.MatchString(q):
		return model.IntentCashRunway
	case strings.Contains(q, "revenue") &&
		(strings.Contains(q, "budget") || strings.Contains(q, "vs") || strings.Contains(q, "versus")):
		return model.IntentRevenueVsBudget
	case strings.Contains(q, "gross margin") || strings.Contains(q, "gm%") ||
		strings.Contains(q, "gm %") || strings.Contains(q, "margin"):
		return model.IntentGrossMarginTrend
	case strings.Contains(q, "opex") || strings.Contains(q, "operating expense"):
		return model.IntentOpexBreakdown
	case strings.Contains(q, "ebitda"):
		return model.IntentEBITDATrend
	default:
		return model.IntentUnknown
	}
}

// SampleQuestions are shown when a question can't be classified.
var SampleQuestions = []string{
	"What was June 2025 revenue vs budget in USD?",
	"Show Gross Margin % trend for the last 3 months.",
	"Break down Opex by category for June 2025.",
	"What is our cash runway right now?",
	"Show EBITDA for the last 6 months.",
}
