package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// One statement per entry: the pgx stdlib driver does not accept
// multi-statement Exec.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS menu_items (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		price      NUMERIC(12,2) NOT NULL,
		kitchen_id INT NOT NULL CHECK (kitchen_id IN (1, 2))
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id         TEXT PRIMARY KEY,
		table_id   TEXT NOT NULL,
		total      NUMERIC(12,2) NOT NULL,
		is_paid    BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id           TEXT PRIMARY KEY,
		order_id     TEXT NOT NULL REFERENCES orders(id),
		menu_item_id TEXT NOT NULL,
		quantity     INT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'pending',
		position     INT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_table_unpaid ON orders(table_id) WHERE NOT is_paid`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
}

// EnsureSchema creates the tables if they do not exist yet. Idempotent.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
