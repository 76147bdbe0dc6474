package repository

import (
	"context"
	"errors"

	"table-orders/internal/domain"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// Catalog is the menu lookup this service consumes. Menu CRUD lives in the
// catalog service; from here the menu is read-only.
type Catalog interface {
	MenuItem(ctx context.Context, id string) (domain.MenuItem, bool, error)
}

// Ledger owns Order documents. It is the single source of truth; all
// coordinators read before they write.
type Ledger interface {
	CreateOrder(ctx context.Context, o domain.Order) error
	OrderByID(ctx context.Context, id string) (domain.Order, bool, error)
	UnpaidByTable(ctx context.Context, tableID string) ([]domain.Order, error)
	AllUnpaid(ctx context.Context) ([]domain.Order, error)
	MarkTablePaid(ctx context.Context, tableID string) error
	UpdateItemStatus(ctx context.Context, orderID, itemID string, status domain.ItemStatus) error
}
