package service

import (
	"context"

	"github.com/shopspring/decimal"

	"table-orders/internal/domain"
	"table-orders/internal/repository"
)

// orderViews resolves every order item through the catalog. Items whose menu
// entry disappeared keep a placeholder name so the row still shows up on the
// dashboard.
func orderViews(ctx context.Context, catalog repository.Catalog, orders []domain.Order) ([]domain.OrderView, error) {
	out := make([]domain.OrderView, 0, len(orders))
	for _, o := range orders {
		view := domain.OrderView{OrderID: o.ID, Total: o.Total}
		for _, item := range o.Items {
			iv := domain.ItemView{
				ItemID: item.ID,
				Name:   "Unknown",
				Price:  decimal.Zero,
				Qty:    item.Quantity,
				Status: item.Status,
			}
			if menu, ok, err := catalog.MenuItem(ctx, item.MenuItemID); err != nil {
				return nil, err
			} else if ok {
				iv.Name = menu.Name
				iv.Price = menu.Price
			}
			view.Items = append(view.Items, iv)
		}
		out = append(out, view)
	}
	return out, nil
}
