package service

import (
	"context"
	"fmt"

	"table-orders/internal/broker"
	"table-orders/internal/common/logger"
	"table-orders/internal/domain"
	"table-orders/internal/repository"
)

type StatusServiceInterface interface {
	UpdateItemStatus(ctx context.Context, req domain.UpdateStatusRequest) error
}

type StatusService struct {
	catalog repository.Catalog
	ledger  repository.Ledger
	topics  broker.TopicBroker
	lg      *logger.Logger
}

func NewStatusService(catalog repository.Catalog, ledger repository.Ledger,
	topics broker.TopicBroker, lg *logger.Logger) StatusServiceInterface {
	return &StatusService{catalog: catalog, ledger: ledger, topics: topics, lg: lg}
}

// UpdateItemStatus applies the one transition the kitchen can make:
// pending -> ready. A missing order or item is a no-op toward subscribers;
// so is a repeated or backward transition. Only the order's table hears about
// the change — the kitchen removes the item from its own display at the
// moment of the action.
func (s *StatusService) UpdateItemStatus(ctx context.Context, req domain.UpdateStatusRequest) error {
	order, ok, err := s.ledger.OrderByID(ctx, req.OrderID)
	if err != nil {
		return fmt.Errorf("load order %s: %w", req.OrderID, err)
	}
	if !ok {
		s.lg.Debug("status_update_order_missing", map[string]any{"order_id": req.OrderID})
		return nil
	}

	var item *domain.OrderItem
	for i := range order.Items {
		if order.Items[i].ID == req.ItemID {
			item = &order.Items[i]
			break
		}
	}
	if item == nil {
		s.lg.Debug("status_update_item_missing", map[string]any{
			"order_id": req.OrderID, "item_id": req.ItemID,
		})
		return nil
	}

	next := domain.ItemStatus(req.Status)
	if item.Status != domain.StatusPending || next != domain.StatusReady {
		s.lg.Debug("status_update_ignored", map[string]any{
			"order_id": req.OrderID, "item_id": req.ItemID,
			"from": string(item.Status), "to": req.Status,
		})
		return nil
	}

	if err := s.ledger.UpdateItemStatus(ctx, order.ID, item.ID, next); err != nil {
		return fmt.Errorf("persist item status: %w", err)
	}

	name := item.MenuItemID
	if menu, ok, err := s.catalog.MenuItem(ctx, item.MenuItemID); err == nil && ok {
		name = menu.Name
	}
	s.lg.Info("item_status_changed", map[string]any{
		"order_id": order.ID, "item_id": item.ID, "status": string(next),
	})
	s.topics.Publish(broker.TableTopic(order.TableID), domain.ItemStatusChanged{
		ItemName: name, Status: next,
	})
	return nil
}
