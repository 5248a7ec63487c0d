package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens (or creates) a SQLite database at the given path and
// ensures all required tables exist. Pass ":memory:" for an in-memory
// database.
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			order_id TEXT NOT NULL,
			waybill TEXT NOT NULL DEFAULT '',
			dropshipper_email TEXT NOT NULL,
			product_id TEXT NOT NULL,
			product_name TEXT NOT NULL,
			sku TEXT NOT NULL DEFAULT '',
			carrier TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			order_date DATETIME,
			delivered_date DATETIME,
			rts_date DATETIME,
			status TEXT NOT NULL,
			payment_mode TEXT NOT NULL,
			product_value REAL NOT NULL,
			PRIMARY KEY (order_id, dropshipper_email, product_id, waybill)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_dropshipper ON orders(dropshipper_email)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_carrier ON orders(carrier)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders(order_date)`,

		`CREATE TABLE IF NOT EXISTS product_prices (
			dropshipper_email TEXT NOT NULL,
			product_id TEXT NOT NULL,
			unit_cost REAL NOT NULL,
			PRIMARY KEY (dropshipper_email, product_id)
		)`,

		`CREATE TABLE IF NOT EXISTS shipping_rates (
			carrier TEXT PRIMARY KEY,
			rate REAL NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS payout_runs (
			id TEXT PRIMARY KEY,
			order_from TEXT NOT NULL,
			order_to TEXT NOT NULL,
			delivered_from TEXT NOT NULL,
			delivered_to TEXT NOT NULL,
			shipping_total REAL NOT NULL,
			cod_total REAL NOT NULL,
			product_cost_total REAL NOT NULL,
			reversal_total REAL NOT NULL,
			gross_payable REAL NOT NULL,
			final_payable REAL NOT NULL,
			shipping_orders INTEGER NOT NULL,
			cod_orders INTEGER NOT NULL,
			product_cost_orders INTEGER NOT NULL,
			row_count INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS payout_rows (
			run_id TEXT NOT NULL,
			order_id TEXT NOT NULL,
			waybill TEXT NOT NULL DEFAULT '',
			dropshipper_email TEXT NOT NULL,
			product_id TEXT NOT NULL,
			product_name TEXT NOT NULL,
			sku TEXT NOT NULL DEFAULT '',
			carrier TEXT NOT NULL,
			status TEXT NOT NULL,
			payment_mode TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			shipping_rate REAL NOT NULL,
			unit_cost REAL NOT NULL,
			unit_value REAL NOT NULL,
			shipping_cost REAL NOT NULL,
			cod_received REAL NOT NULL,
			product_cost REAL NOT NULL,
			adjustment REAL NOT NULL,
			payable REAL NOT NULL,
			FOREIGN KEY (run_id) REFERENCES payout_runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payout_rows_run ON payout_rows(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payout_rows_order ON payout_rows(order_id)`,

		`CREATE TABLE IF NOT EXISTS payout_adjustments (
			run_id TEXT NOT NULL,
			order_id TEXT NOT NULL,
			reason TEXT NOT NULL,
			amount REAL NOT NULL,
			reference TEXT NOT NULL,
			FOREIGN KEY (run_id) REFERENCES payout_runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payout_adjustments_run ON payout_adjustments(run_id)`,

		`CREATE TABLE IF NOT EXISTS import_batches (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			file_hash TEXT UNIQUE NOT NULL,
			record_count INTEGER NOT NULL,
			ingested_at DATETIME NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:60], err)
		}
	}

	return nil
}
