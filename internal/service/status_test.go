package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-orders/internal/domain"
)

// A ready transition notifies the order's table only; neither the admin nor
// the kitchens hear a server echo.
func TestUpdateItemStatusNotifiesTableOnly(t *testing.T) {
	f := newFixture(t)
	f.place(t, domain.RequestedItem{MenuItemID: "A", Quantity: 2})
	order := f.placedOrder(t, 0)

	baselineAdmin := len(f.admin.events())
	baselineKitchen := len(f.kitchen1.events())

	err := f.status.UpdateItemStatus(context.Background(), domain.UpdateStatusRequest{
		OrderID: order.ID, ItemID: order.Items[0].ID, Status: "ready",
	})
	require.NoError(t, err)

	changed := f.table.byKind(domain.KindItemStatusChanged)
	require.Len(t, changed, 1)
	ev := changed[0].(domain.ItemStatusChanged)
	assert.Equal(t, "A", ev.ItemName)
	assert.Equal(t, domain.StatusReady, ev.Status)

	assert.Len(t, f.admin.events(), baselineAdmin, "admin receives nothing")
	assert.Len(t, f.kitchen1.events(), baselineKitchen, "kitchen receives nothing")

	stored, _, err := f.ledger.OrderByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, stored.Items[0].Status)
}

// Missing order or item: silent no-op, no event to anyone.
func TestUpdateItemStatusMissingIsSilent(t *testing.T) {
	f := newFixture(t)
	f.place(t, domain.RequestedItem{MenuItemID: "A", Quantity: 1})
	order := f.placedOrder(t, 0)
	before := len(f.table.events())

	require.NoError(t, f.status.UpdateItemStatus(context.Background(), domain.UpdateStatusRequest{
		OrderID: "no-such-order", ItemID: order.Items[0].ID, Status: "ready",
	}))
	require.NoError(t, f.status.UpdateItemStatus(context.Background(), domain.UpdateStatusRequest{
		OrderID: order.ID, ItemID: "no-such-item", Status: "ready",
	}))

	assert.Len(t, f.table.events(), before)
}

// Once ready, no sequence of update calls moves the item back.
func TestUpdateItemStatusMonotonic(t *testing.T) {
	f := newFixture(t)
	f.place(t, domain.RequestedItem{MenuItemID: "A", Quantity: 1})
	order := f.placedOrder(t, 0)
	itemID := order.Items[0].ID

	ready := domain.UpdateStatusRequest{OrderID: order.ID, ItemID: itemID, Status: "ready"}
	require.NoError(t, f.status.UpdateItemStatus(context.Background(), ready))

	// Repeat, revert, and a transition into served: all no-ops.
	require.NoError(t, f.status.UpdateItemStatus(context.Background(), ready))
	require.NoError(t, f.status.UpdateItemStatus(context.Background(), domain.UpdateStatusRequest{
		OrderID: order.ID, ItemID: itemID, Status: "pending",
	}))
	require.NoError(t, f.status.UpdateItemStatus(context.Background(), domain.UpdateStatusRequest{
		OrderID: order.ID, ItemID: itemID, Status: "served",
	}))

	stored, _, err := f.ledger.OrderByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, stored.Items[0].Status)
	assert.Len(t, f.table.byKind(domain.KindItemStatusChanged), 1,
		"only the first transition publishes")
}
