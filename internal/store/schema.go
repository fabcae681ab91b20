package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS monthly_records (
    dataset          TEXT NOT NULL,
    entity           TEXT NOT NULL,
    account_category TEXT NOT NULL,
    month            TEXT NOT NULL,
    amount           TEXT NOT NULL,
    currency         TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS fx_rates (
    month       TEXT NOT NULL,
    currency    TEXT NOT NULL,
    rate_to_usd TEXT NOT NULL,
    PRIMARY KEY (month, currency)
);

CREATE TABLE IF NOT EXISTS cash_balances (
    month    TEXT PRIMARY KEY,
    cash_usd TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS file_tracker (
    file_path  TEXT PRIMARY KEY,
    mtime_ns   INTEGER NOT NULL,
    size_bytes INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_month ON monthly_records(dataset, month);
`
