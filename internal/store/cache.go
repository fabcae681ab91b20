// Package store provides a SQLite-backed cache for parsed CSV datasets.
//
// The cache is a derived, read-through copy of the flat input files, keyed
// by their mtime and size. It can be deleted at any time; the next run
// simply reparses the CSVs.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"finsight/internal/model"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver
)

// Dataset name tags used in the monthly_records table.
const (
	datasetActuals = "actuals"
	datasetBudget  = "budget"
)

// Cache provides SQLite-backed dataset caching.
type Cache struct {
	db *sql.DB
}

// FileInfo holds the tracked mtime and size for an input file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// GetTrackedFiles returns file_path -> FileInfo for all tracked input files.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// SaveDataset replaces the cached dataset and file tracking info in one
// transaction. Amounts are stored as decimal strings so no precision is
// lost on the round trip.
func (c *Cache) SaveDataset(d *model.Dataset, files map[string]FileInfo) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"monthly_records", "fx_rates", "cash_balances", "file_tracker"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	if err := insertMonthly(tx, datasetActuals, d.Actuals); err != nil {
		return err
	}
	if err := insertMonthly(tx, datasetBudget, d.Budget); err != nil {
		return err
	}

	for _, fx := range d.Fx {
		_, err := tx.Exec("INSERT INTO fx_rates (month, currency, rate_to_usd) VALUES (?, ?, ?)",
			fx.Month, fx.Currency, fx.RateToUSD.String())
		if err != nil {
			return err
		}
	}
	for _, cb := range d.Cash {
		_, err := tx.Exec("INSERT INTO cash_balances (month, cash_usd) VALUES (?, ?)",
			cb.Month, cb.CashUSD.String())
		if err != nil {
			return err
		}
	}
	for path, fi := range files {
		_, err := tx.Exec("INSERT INTO file_tracker (file_path, mtime_ns, size_bytes) VALUES (?, ?, ?)",
			path, fi.MtimeNs, fi.SizeBytes)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadDataset reads the cached dataset from the database.
func (c *Cache) LoadDataset() (*model.Dataset, error) {
	d := &model.Dataset{}

	var err error
	if d.Actuals, err = c.loadMonthly(datasetActuals); err != nil {
		return nil, err
	}
	if d.Budget, err = c.loadMonthly(datasetBudget); err != nil {
		return nil, err
	}

	fxRows, err := c.db.Query("SELECT month, currency, rate_to_usd FROM fx_rates")
	if err != nil {
		return nil, err
	}
	defer func() { _ = fxRows.Close() }()
	for fxRows.Next() {
		var fx model.FxRate
		var rate string
		if err := fxRows.Scan(&fx.Month, &fx.Currency, &rate); err != nil {
			return nil, err
		}
		if fx.RateToUSD, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("corrupt cached rate %q: %w", rate, err)
		}
		d.Fx = append(d.Fx, fx)
	}
	if err := fxRows.Err(); err != nil {
		return nil, err
	}

	cashRows, err := c.db.Query("SELECT month, cash_usd FROM cash_balances")
	if err != nil {
		return nil, err
	}
	defer func() { _ = cashRows.Close() }()
	for cashRows.Next() {
		var cb model.CashBalance
		var cash string
		if err := cashRows.Scan(&cb.Month, &cash); err != nil {
			return nil, err
		}
		if cb.CashUSD, err = decimal.NewFromString(cash); err != nil {
			return nil, fmt.Errorf("corrupt cached balance %q: %w", cash, err)
		}
		d.Cash = append(d.Cash, cb)
	}
	return d, cashRows.Err()
}

func insertMonthly(tx *sql.Tx, dataset string, records []model.MonthlyRecord) error {
	for _, r := range records {
		_, err := tx.Exec(`INSERT INTO monthly_records
			(dataset, entity, account_category, month, amount, currency)
			VALUES (?, ?, ?, ?, ?, ?)`,
			dataset, r.Entity, r.AccountCategory, r.Month, r.Amount.String(), r.Currency)
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) loadMonthly(dataset string) ([]model.MonthlyRecord, error) {
	rows, err := c.db.Query(`SELECT entity, account_category, month, amount, currency
		FROM monthly_records WHERE dataset = ?`, dataset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.MonthlyRecord
	for rows.Next() {
		var r model.MonthlyRecord
		var amount string
		if err := rows.Scan(&r.Entity, &r.AccountCategory, &r.Month, &amount, &r.Currency); err != nil {
			return nil, err
		}
		if r.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("corrupt cached amount %q: %w", amount, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
