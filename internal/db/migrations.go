package db

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// migrations is an ordered list of SQL statements to run.
// Amounts are stored as integer cents.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS units (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		unit_number  TEXT    NOT NULL UNIQUE,
		unit_type    TEXT    NOT NULL DEFAULT '',
		monthly_rent INTEGER NOT NULL DEFAULT 0,
		is_occupied  INTEGER NOT NULL DEFAULT 0 CHECK (is_occupied IN (0, 1)),
		created_at   DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS tenants (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT    NOT NULL,
		contact     TEXT    NOT NULL DEFAULT '',
		email       TEXT    NOT NULL DEFAULT '',
		unit_id     INTEGER REFERENCES units(id) ON DELETE SET NULL,
		lease_start TEXT    NOT NULL DEFAULT '',
		lease_end   TEXT,
		is_active   INTEGER NOT NULL DEFAULT 1 CHECK (is_active IN (0, 1)),
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		tenant_id      INTEGER NOT NULL REFERENCES tenants(id) ON DELETE CASCADE,
		amount         INTEGER NOT NULL CHECK (amount > 0),
		rent_amount    INTEGER,
		utility_amount INTEGER,
		payment_date   TEXT    NOT NULL,
		period_label   TEXT    NOT NULL,
		status         TEXT    NOT NULL DEFAULT 'Paid',
		reference      TEXT    NOT NULL UNIQUE,
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS utility_bills (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		bill_type     TEXT    NOT NULL,
		amount        INTEGER NOT NULL CHECK (amount > 0),
		billing_month TEXT    NOT NULL,
		due_date      TEXT,
		paid          INTEGER NOT NULL DEFAULT 0 CHECK (paid IN (0, 1)),
		created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_units_occupied ON units(is_occupied)`,
	`CREATE INDEX IF NOT EXISTS idx_tenants_unit ON tenants(unit_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_tenant ON payments(tenant_id)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_period ON payments(period_label)`,
	`CREATE INDEX IF NOT EXISTS idx_utility_bills_month ON utility_bills(billing_month)`,

	// Occupancy is maintained by the occupancy package. Older databases
	// carried triggers that did the same thing and would double-apply.
	`DROP TRIGGER IF EXISTS update_unit_occupancy_on_tenant_insert`,
	`DROP TRIGGER IF EXISTS update_unit_occupancy_on_tenant_delete`,
	`DROP TRIGGER IF EXISTS update_unit_occupancy_on_tenant_update`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	// Column additions (idempotent, checks if column exists first)
	columnMigrations := []struct {
		table, column, definition string
	}{
		{"tenants", "move_out_date", "TEXT"},
		{"payments", "notes", "TEXT NOT NULL DEFAULT ''"},
	}

	for _, cm := range columnMigrations {
		if err := addColumnIfNotExists(db, cm.table, cm.column, cm.definition); err != nil {
			return fmt.Errorf("adding %s.%s: %w", cm.table, cm.column, err)
		}
	}

	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(db *sql.DB, table, column, definition string) error {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("checking table info: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			slog.Warn("closing rows", "error", cerr)
		}
	}()

	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("scanning column info: %w", err)
		}
		if name == column {
			return nil // column already exists
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating columns: %w", err)
	}

	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}
