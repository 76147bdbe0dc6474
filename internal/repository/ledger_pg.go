package repository

import (
	"context"
	"database/sql"
	"fmt"

	"table-orders/internal/domain"
)

type ledgerPG struct {
	db *sql.DB
}

func NewLedgerPG(db *sql.DB) Ledger { return &ledgerPG{db: db} }

func (l *ledgerPG) CreateOrder(ctx context.Context, o domain.Order) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, table_id, total, is_paid, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, o.ID, o.TableID, o.Total, o.IsPaid, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, menu_item_id, quantity, status, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, item.ID, o.ID, item.MenuItemID, item.Quantity, item.Status, i)
		if err != nil {
			return fmt.Errorf("insert order item %s: %w", item.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (l *ledgerPG) OrderByID(ctx context.Context, id string) (domain.Order, bool, error) {
	orders, err := l.selectOrders(ctx, `WHERE o.id = $1`, id)
	if err != nil {
		return domain.Order{}, false, err
	}
	if len(orders) == 0 {
		return domain.Order{}, false, nil
	}
	return orders[0], true, nil
}

func (l *ledgerPG) UnpaidByTable(ctx context.Context, tableID string) ([]domain.Order, error) {
	return l.selectOrders(ctx, `WHERE o.table_id = $1 AND NOT o.is_paid`, tableID)
}

func (l *ledgerPG) AllUnpaid(ctx context.Context) ([]domain.Order, error) {
	return l.selectOrders(ctx, `WHERE NOT o.is_paid`)
}

func (l *ledgerPG) MarkTablePaid(ctx context.Context, tableID string) error {
	// No matched-row check: clearing an already-empty table is a no-op.
	_, err := l.db.ExecContext(ctx, `
		UPDATE orders SET is_paid = TRUE WHERE table_id = $1 AND NOT is_paid
	`, tableID)
	if err != nil {
		return fmt.Errorf("mark table %s paid: %w", tableID, err)
	}
	return nil
}

func (l *ledgerPG) UpdateItemStatus(ctx context.Context, orderID, itemID string, status domain.ItemStatus) error {
	_, err := l.db.ExecContext(ctx, `
		UPDATE order_items SET status = $1 WHERE id = $2 AND order_id = $3
	`, status, itemID, orderID)
	if err != nil {
		return fmt.Errorf("update item %s status: %w", itemID, err)
	}
	return nil
}

// selectOrders loads orders and their items in one joined query, grouped in
// order of creation; item order within an order follows insertion position.
func (l *ledgerPG) selectOrders(ctx context.Context, where string, args ...any) ([]domain.Order, error) {
	q := fmt.Sprintf(`
		SELECT o.id, o.table_id, o.total, o.is_paid, o.created_at,
		       i.id, i.menu_item_id, i.quantity, i.status
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		%s
		ORDER BY o.created_at, o.id, i.position
	`, where)

	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var (
		out []domain.Order
		cur *domain.Order
	)
	for rows.Next() {
		var (
			o    domain.Order
			item domain.OrderItem
		)
		if err := rows.Scan(&o.ID, &o.TableID, &o.Total, &o.IsPaid, &o.CreatedAt,
			&item.ID, &item.MenuItemID, &item.Quantity, &item.Status); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		if cur == nil || cur.ID != o.ID {
			out = append(out, o)
			cur = &out[len(out)-1]
		}
		cur.Items = append(cur.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return out, nil
}
