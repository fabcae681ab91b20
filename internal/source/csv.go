// Package source parses the four CSV input files into domain records.
//
// Each file must carry exactly the documented header columns; a missing
// column is fatal at load time. Cell-level problems (bad month format,
// unparseable amount) are reported with file and line so gaps are visible
// instead of silently zero-filled.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"finsight/internal/model"

	"github.com/shopspring/decimal"
)

// Input file names expected in the data directory.
const (
	ActualsFile = "actuals.csv"
	BudgetFile  = "budget.csv"
	FxFile      = "fx.csv"
	CashFile    = "cash.csv"
)

// Files lists the four input files in loading order.
var Files = []string{ActualsFile, BudgetFile, FxFile, CashFile}

var monthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// MalformedInputError reports a required column absent from a file header.
type MalformedInputError struct {
	File   string
	Column string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s: missing required column %q", e.File, e.Column)
}

// LoadDir reads all four CSV files from dir into a Dataset.
func LoadDir(dir string) (*model.Dataset, error) {
	d := &model.Dataset{}

	var err error
	if d.Actuals, err = loadMonthly(filepath.Join(dir, ActualsFile), ActualsFile); err != nil {
		return nil, err
	}
	if d.Budget, err = loadMonthly(filepath.Join(dir, BudgetFile), BudgetFile); err != nil {
		return nil, err
	}
	if d.Fx, err = loadFx(filepath.Join(dir, FxFile)); err != nil {
		return nil, err
	}
	if d.Cash, err = loadCash(filepath.Join(dir, CashFile)); err != nil {
		return nil, err
	}
	return d, nil
}

func loadMonthly(path, name string) ([]model.MonthlyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()
	return ParseMonthly(f, name)
}

func loadFx(path string) ([]model.FxRate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", FxFile, err)
	}
	defer func() { _ = f.Close() }()
	return ParseFx(f)
}

func loadCash(path string) ([]model.CashBalance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", CashFile, err)
	}
	defer func() { _ = f.Close() }()
	return ParseCash(f)
}

// ParseMonthly parses an actuals- or budget-shaped CSV.
// Required columns: entity, account_category, month, amount, currency.
func ParseMonthly(r io.Reader, name string) ([]model.MonthlyRecord, error) {
	rows, idx, err := readAll(r, name, "entity", "account_category", "month", "amount", "currency")
	if err != nil {
		return nil, err
	}

	records := make([]model.MonthlyRecord, 0, len(rows))
	for i, row := range rows {
		line := i + 2 // 1-based, after header

		month := row[idx["month"]]
		if !monthRe.MatchString(month) {
			return nil, fmt.Errorf("%s line %d: month %q is not YYYY-MM", name, line, month)
		}
		amount, err := decimal.NewFromString(row[idx["amount"]])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad amount %q", name, line, row[idx["amount"]])
		}

		records = append(records, model.MonthlyRecord{
			Entity:          row[idx["entity"]],
			AccountCategory: row[idx["account_category"]],
			Month:           month,
			Amount:          amount,
			Currency:        row[idx["currency"]],
		})
	}
	return records, nil
}

// ParseFx parses the FX rates CSV.
// Required columns: month, currency, rate_to_usd. Exactly one rate is
// allowed per (month, currency).
func ParseFx(r io.Reader) ([]model.FxRate, error) {
	rows, idx, err := readAll(r, FxFile, "month", "currency", "rate_to_usd")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]int)
	rates := make([]model.FxRate, 0, len(rows))
	for i, row := range rows {
		line := i + 2

		month := row[idx["month"]]
		if !monthRe.MatchString(month) {
			return nil, fmt.Errorf("%s line %d: month %q is not YYYY-MM", FxFile, line, month)
		}
		rate, err := decimal.NewFromString(row[idx["rate_to_usd"]])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad rate %q", FxFile, line, row[idx["rate_to_usd"]])
		}

		currency := row[idx["currency"]]
		key := month + "/" + currency
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%s line %d: duplicate rate for %s %s (first on line %d)", FxFile, line, month, currency, prev)
		}
		seen[key] = line

		rates = append(rates, model.FxRate{Month: month, Currency: currency, RateToUSD: rate})
	}
	return rates, nil
}

// ParseCash parses the cash balances CSV.
// Required columns: month, cash_usd. Exactly one balance per month.
func ParseCash(r io.Reader) ([]model.CashBalance, error) {
	rows, idx, err := readAll(r, CashFile, "month", "cash_usd")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]int)
	balances := make([]model.CashBalance, 0, len(rows))
	for i, row := range rows {
		line := i + 2

		month := row[idx["month"]]
		if !monthRe.MatchString(month) {
			return nil, fmt.Errorf("%s line %d: month %q is not YYYY-MM", CashFile, line, month)
		}
		cash, err := decimal.NewFromString(row[idx["cash_usd"]])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad cash_usd %q", CashFile, line, row[idx["cash_usd"]])
		}

		if prev, dup := seen[month]; dup {
			return nil, fmt.Errorf("%s line %d: duplicate balance for %s (first on line %d)", CashFile, line, month, prev)
		}
		seen[month] = line

		balances = append(balances, model.CashBalance{Month: month, CashUSD: cash})
	}
	return balances, nil
}

// readAll reads header and rows, resolving the required column indexes.
func readAll(r io.Reader, name string, required ...string) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, &MalformedInputError{File: name, Column: required[0]}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s header: %w", name, err)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[col] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, nil, &MalformedInputError{File: name, Column: col}
		}
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return rows, idx, nil
}
