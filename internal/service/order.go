package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"table-orders/internal/billing"
	"table-orders/internal/broker"
	"table-orders/internal/common/logger"
	"table-orders/internal/domain"
	"table-orders/internal/repository"
	"table-orders/internal/routing"
)

type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, origin broker.Conn, req domain.PlaceOrderRequest) error
}

type OrderService struct {
	catalog repository.Catalog
	ledger  repository.Ledger
	bills   *billing.Aggregator
	router  *routing.Router
	topics  broker.TopicBroker
	lg      *logger.Logger
}

func NewOrderService(catalog repository.Catalog, ledger repository.Ledger,
	bills *billing.Aggregator, router *routing.Router, topics broker.TopicBroker,
	lg *logger.Logger) OrderServiceInterface {
	return &OrderService{
		catalog: catalog, ledger: ledger,
		bills: bills, router: router, topics: topics, lg: lg,
	}
}

// PlaceOrder runs the placement flow: resolve items against the catalog,
// persist the order, then publish the derived events to every interested
// actor. Nothing is published before the persist succeeds. Failures surface
// as order_failed on the originating connection only.
func (s *OrderService) PlaceOrder(ctx context.Context, origin broker.Conn, req domain.PlaceOrderRequest) error {
	// 1. Resolve requested items. Unknown menu ids are dropped, the order
	// proceeds with whatever resolved.
	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, ri := range req.Items {
		menu, ok, err := s.catalog.MenuItem(ctx, ri.MenuItemID)
		if err != nil {
			origin.Send(domain.OrderFailed{Message: "Your order could not be placed."})
			return fmt.Errorf("resolve menu item %s: %w", ri.MenuItemID, err)
		}
		if !ok {
			s.lg.Debug("order_item_dropped", map[string]any{
				"table_id": req.TableID, "menu_item_id": ri.MenuItemID,
			})
			continue
		}
		total = total.Add(menu.Price.Mul(decimal.NewFromInt(int64(ri.Quantity))))
		items = append(items, domain.OrderItem{
			ID:         uuid.NewString(),
			MenuItemID: menu.ID,
			Quantity:   ri.Quantity,
			Status:     domain.StatusPending,
		})
	}
	if len(items) == 0 {
		origin.Send(domain.OrderFailed{Message: "No orderable items in your order."})
		return errors.New("no resolvable items")
	}

	// 2. Persist. The total is a price snapshot: later menu edits never touch
	// this order.
	order := domain.Order{
		ID:        uuid.NewString(),
		TableID:   req.TableID,
		Items:     items,
		Total:     total,
		IsPaid:    false,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.ledger.CreateOrder(ctx, order); err != nil {
		origin.Send(domain.OrderFailed{Message: "Your order could not be placed."})
		return fmt.Errorf("save order: %w", err)
	}
	s.lg.Info("order_placed", map[string]any{
		"order_id": order.ID, "table_id": order.TableID,
		"total": order.Total.String(), "items": len(order.Items),
	})

	// From here on the order is committed; a failed follow-up step is logged
	// and the rest still runs. Viewers reconcile on their next full fetch.

	// 3. Recompute the grand total and push it to the table and the admin.
	if grand, err := s.bills.GrandTotal(ctx, order.TableID); err != nil {
		s.lg.Error("grand_total_failed", err, map[string]any{"table_id": order.TableID})
	} else {
		s.topics.Publish(broker.TableTopic(order.TableID), domain.BillUpdated{Total: grand})

		// The admin payload carries the full reconstructed order list; if that
		// rebuild fails there is nothing truthful to send, so the admin update
		// is skipped and the next full fetch reconciles.
		if views, err := s.tableOrderViews(ctx, order.TableID); err != nil {
			s.lg.Error("table_view_failed", err, map[string]any{"table_id": order.TableID})
		} else {
			s.topics.Publish(broker.TopicAdmin, domain.TableBillUpdated{
				TableID: order.TableID, Total: grand, Orders: views,
			})
		}
	}

	// 4. Route items to their kitchens.
	buckets, err := s.router.Partition(ctx, order)
	if err != nil {
		s.lg.Error("kitchen_partition_failed", err, map[string]any{"order_id": order.ID})
	}
	for kitchenID, routed := range buckets {
		s.topics.Publish(broker.KitchenTopic(kitchenID), domain.NewOrder{
			OrderID: order.ID, TableID: order.TableID, Items: routed,
		})
	}

	// 5. Confirm to the table.
	s.topics.Publish(broker.TableTopic(order.TableID), domain.OrderConfirmed{Message: "Order confirmed!"})
	return nil
}

// tableOrderViews rebuilds the table's unpaid order list from the ledger for
// the admin payload; the admin gets absolute state, not a diff.
func (s *OrderService) tableOrderViews(ctx context.Context, tableID string) ([]domain.OrderView, error) {
	orders, err := s.ledger.UnpaidByTable(ctx, tableID)
	if err != nil {
		return nil, err
	}
	return orderViews(ctx, s.catalog, orders)
}
