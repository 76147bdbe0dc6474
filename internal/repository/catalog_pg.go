package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"table-orders/internal/domain"
)

type catalogPG struct {
	db *sql.DB
}

func NewCatalogPG(db *sql.DB) Catalog { return &catalogPG{db: db} }

func (c *catalogPG) MenuItem(ctx context.Context, id string) (domain.MenuItem, bool, error) {
	var m domain.MenuItem
	err := c.db.QueryRowContext(ctx, `
		SELECT id, name, price, kitchen_id FROM menu_items WHERE id = $1
	`, id).Scan(&m.ID, &m.Name, &m.Price, &m.KitchenID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MenuItem{}, false, nil
	}
	if err != nil {
		return domain.MenuItem{}, false, fmt.Errorf("select menu item %s: %w", id, err)
	}
	return m, true, nil
}
