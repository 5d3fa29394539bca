package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the network schema. The DDL is accepted by both SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createSettingsQuery := `
	CREATE TABLE IF NOT EXISTS network_settings (
		id INTEGER PRIMARY KEY,
		hub TEXT NOT NULL,
		unit_weight DOUBLE PRECISION NOT NULL,
		cost_rate DOUBLE PRECISION NOT NULL
	);
	`

	createProductsQuery := `
	CREATE TABLE IF NOT EXISTS warehouse_products (
		product TEXT PRIMARY KEY,
		warehouse TEXT NOT NULL
	);
	`

	createDistancesQuery := `
	CREATE TABLE IF NOT EXISTS distances (
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (origin, destination)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_warehouse_products_warehouse
	ON warehouse_products(warehouse);
	`

	statements := []string{
		createSettingsQuery,
		createProductsQuery,
		createDistancesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
