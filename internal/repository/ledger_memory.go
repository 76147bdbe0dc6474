package repository

import (
	"context"
	"sync"

	"table-orders/internal/domain"
)

// ledgerMemory backs tests and the --memory development mode.
type ledgerMemory struct {
	mu     sync.RWMutex
	orders []domain.Order // creation order preserved
	byID   map[string]int
}

func NewLedgerMemory() Ledger {
	return &ledgerMemory{byID: make(map[string]int)}
}

func (l *ledgerMemory) CreateOrder(_ context.Context, o domain.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	o.Items = cloneItems(o.Items)
	l.byID[o.ID] = len(l.orders)
	l.orders = append(l.orders, o)
	return nil
}

func (l *ledgerMemory) OrderByID(_ context.Context, id string) (domain.Order, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	idx, ok := l.byID[id]
	if !ok {
		return domain.Order{}, false, nil
	}
	return cloneOrder(l.orders[idx]), true, nil
}

func (l *ledgerMemory) UnpaidByTable(_ context.Context, tableID string) ([]domain.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.Order
	for _, o := range l.orders {
		if o.TableID == tableID && !o.IsPaid {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (l *ledgerMemory) AllUnpaid(_ context.Context) ([]domain.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []domain.Order
	for _, o := range l.orders {
		if !o.IsPaid {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (l *ledgerMemory) MarkTablePaid(_ context.Context, tableID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.orders {
		if l.orders[i].TableID == tableID {
			l.orders[i].IsPaid = true
		}
	}
	return nil
}

func (l *ledgerMemory) UpdateItemStatus(_ context.Context, orderID, itemID string, status domain.ItemStatus) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx, ok := l.byID[orderID]
	if !ok {
		return nil
	}
	items := l.orders[idx].Items
	for i := range items {
		if items[i].ID == itemID {
			items[i].Status = status
		}
	}
	return nil
}

func cloneOrder(o domain.Order) domain.Order {
	o.Items = cloneItems(o.Items)
	return o
}

func cloneItems(items []domain.OrderItem) []domain.OrderItem {
	out := make([]domain.OrderItem, len(items))
	copy(out, items)
	return out
}
