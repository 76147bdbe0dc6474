package routing

import (
	"context"

	"table-orders/internal/common/logger"
	"table-orders/internal/domain"
	"table-orders/internal/repository"
)

// Router partitions an order's items by the kitchen that prepares them.
type Router struct {
	catalog repository.Catalog
	lg      *logger.Logger
}

func NewRouter(catalog repository.Catalog, lg *logger.Logger) *Router {
	return &Router{catalog: catalog, lg: lg}
}

// Partition resolves each item through the catalog and groups by kitchen.
// Items whose menu entry no longer exists are dropped from routing entirely;
// only non-empty buckets appear in the result, so callers never publish to an
// idle kitchen.
func (r *Router) Partition(ctx context.Context, order domain.Order) (map[int][]domain.RoutedItem, error) {
	buckets := make(map[int][]domain.RoutedItem)
	for _, item := range order.Items {
		menu, ok, err := r.catalog.MenuItem(ctx, item.MenuItemID)
		if err != nil {
			return nil, err
		}
		if !ok {
			r.lg.Debug("routing_item_dropped", map[string]any{
				"order_id": order.ID, "menu_item_id": item.MenuItemID,
			})
			continue
		}
		buckets[menu.KitchenID] = append(buckets[menu.KitchenID], domain.RoutedItem{
			ItemID: item.ID,
			Name:   menu.Name,
			Qty:    item.Quantity,
		})
	}
	return buckets, nil
}
