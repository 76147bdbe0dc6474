package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"table-orders/internal/auth"
	"table-orders/internal/billing"
	"table-orders/internal/broker"
	"table-orders/internal/common/logger"
	"table-orders/internal/domain"
	"table-orders/internal/service"
)

// Dispatcher turns one client action into coordinator calls. Handlers run to
// completion per message; no locking is needed inside a single call.
type Dispatcher struct {
	topics broker.TopicBroker
	bills  *billing.Aggregator
	orders service.OrderServiceInterface
	status service.StatusServiceInterface
	billSv service.BillServiceInterface
	gate   auth.Gate
	lg     *logger.Logger
}

func NewDispatcher(topics broker.TopicBroker, bills *billing.Aggregator,
	orders service.OrderServiceInterface, status service.StatusServiceInterface,
	billSv service.BillServiceInterface, gate auth.Gate, lg *logger.Logger) *Dispatcher {
	return &Dispatcher{
		topics: topics, bills: bills,
		orders: orders, status: status, billSv: billSv,
		gate: gate, lg: lg,
	}
}

// Handle dispatches one raw client message arriving on conn. A returned
// error means the message was malformed; coordinator-level failures are
// handled inside the coordinators and logged here.
func (d *Dispatcher) Handle(ctx context.Context, conn broker.Conn, raw []byte) error {
	var msg domain.ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("unmarshal client message: %w", err)
	}

	switch msg.Action {
	case domain.ActionJoinTable:
		var req domain.JoinTableRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return fmt.Errorf("unmarshal %s: %w", msg.Action, err)
		}
		d.topics.Join(conn, broker.TableTopic(req.TableID))
		d.lg.Info("table_joined", map[string]any{"conn": conn.ID(), "table_id": req.TableID})
		// Immediate bill snapshot for the newly joined table. Best effort: a
		// failed read here is recovered by the next bill_updated publish.
		if total, err := d.bills.GrandTotal(ctx, req.TableID); err != nil {
			d.lg.Error("bill_snapshot_failed", err, map[string]any{"table_id": req.TableID})
		} else {
			conn.Send(domain.BillUpdated{Total: total})
		}
		return nil

	case domain.ActionJoinKitchen:
		var req domain.JoinKitchenRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return fmt.Errorf("unmarshal %s: %w", msg.Action, err)
		}
		if !domain.ValidKitchen(req.KitchenID) {
			return fmt.Errorf("invalid kitchen id %d", req.KitchenID)
		}
		d.topics.Join(conn, broker.KitchenTopic(req.KitchenID))
		d.lg.Info("kitchen_joined", map[string]any{"conn": conn.ID(), "kitchen_id": req.KitchenID})
		return nil

	case domain.ActionJoinAdmin:
		d.topics.Join(conn, broker.TopicAdmin)
		d.lg.Info("admin_joined", map[string]any{"conn": conn.ID()})
		return nil

	case domain.ActionPlaceOrder:
		var req domain.PlaceOrderRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return fmt.Errorf("unmarshal %s: %w", msg.Action, err)
		}
		if err := d.orders.PlaceOrder(ctx, conn, req); err != nil {
			// The coordinator already signaled order_failed to the origin.
			d.lg.Error("order_failed", err, map[string]any{"conn": conn.ID(), "table_id": req.TableID})
		}
		return nil

	case domain.ActionUpdateStatus:
		var req domain.UpdateStatusRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return fmt.Errorf("unmarshal %s: %w", msg.Action, err)
		}
		if err := d.status.UpdateItemStatus(ctx, req); err != nil {
			d.lg.Error("status_update_failed", err, map[string]any{"order_id": req.OrderID})
		}
		return nil

	case domain.ActionClearBill:
		if !d.gate.Verify(msg.Token) {
			d.lg.Info("clear_bill_denied", map[string]any{"conn": conn.ID()})
			return nil
		}
		var req domain.ClearBillRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return fmt.Errorf("unmarshal %s: %w", msg.Action, err)
		}
		if err := d.billSv.ClearBill(ctx, req.TableID); err != nil {
			d.lg.Error("clear_bill_failed", err, map[string]any{"table_id": req.TableID})
		}
		return nil

	default:
		return fmt.Errorf("unknown action %q", msg.Action)
	}
}
