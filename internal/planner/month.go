package planner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	monthNames = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

	nameYearRe = regexp.MustCompile(`\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+([12][0-9]{3})\b`)
	isoRe      = regexp.MustCompile(`\b([12][0-9]{3})-(0[1-9]|1[0-2])\b`)
	bareNameRe = regexp.MustCompile(`\bfor\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\b`)

	lookbackDigitsRe = regexp.MustCompile(`last\s+(\d+)\s+months?`)
	lookbackWordsRe  = regexp.MustCompile(`last\s+(one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)\s+months?`)
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

// extractMonth finds a month mention in an already-lowercased question.
// It returns either a full YYYY-MM month, or just a calendar month number
// when the question named a month with no year ("for June").
func extractMonth(q string) (month string, monthOfYear int) {
	if m := nameYearRe.FindStringSubmatch(q); m != nil {
		year, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%04d-%02d", year, monthIndex(m[1])), 0
	}
	if m := isoRe.FindString(q); m != "" {
		return m, 0
	}
	if m := bareNameRe.FindStringSubmatch(q); m != nil {
		return "", monthIndex(m[1])
	}
	return "", 0
}

// parseLookback extracts a trailing window like "last 3 months" or
// "last three months".
func parseLookback(q string) (int, bool) {
	if m := lookbackDigitsRe.FindStringSubmatch(q); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			return n, true
		}
	}
	if m := lookbackWordsRe.FindStringSubmatch(q); m != nil {
		return numberWords[m[1]], true
	}
	return 0, false
}

func monthIndex(abbrev string) int {
	for i, name := range monthNames {
		if strings.HasPrefix(abbrev, name) {
			return i + 1
		}
	}
	return 0
}
