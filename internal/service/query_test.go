package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-orders/internal/domain"
)

func TestKitchenPendingFiltersAndGroups(t *testing.T) {
	f := newFixture(t)
	f.place(t,
		domain.RequestedItem{MenuItemID: "A", Quantity: 2},
		domain.RequestedItem{MenuItemID: "B", Quantity: 1},
	)
	f.place(t, domain.RequestedItem{MenuItemID: "B", Quantity: 3})

	hot, err := f.query.KitchenPending(context.Background(), domain.KitchenHot)
	require.NoError(t, err)
	require.Len(t, hot, 1, "only the first order has hot-kitchen items")
	require.Len(t, hot[0].Items, 1)
	assert.Equal(t, "A", hot[0].Items[0].Name)
	assert.Equal(t, 2, hot[0].Items[0].Qty)
	assert.Equal(t, "5", hot[0].TableID)

	cold, err := f.query.KitchenPending(context.Background(), domain.KitchenCold)
	require.NoError(t, err)
	assert.Len(t, cold, 2, "regrouped by order")

	_, err = f.query.KitchenPending(context.Background(), 9)
	assert.Error(t, err)
}

// Items already marked ready disappear from the pending view; paid orders
// disappear entirely.
func TestKitchenPendingExcludesReadyAndPaid(t *testing.T) {
	f := newFixture(t)
	f.place(t, domain.RequestedItem{MenuItemID: "A", Quantity: 1})
	order := f.placedOrder(t, 0)

	require.NoError(t, f.status.UpdateItemStatus(context.Background(), domain.UpdateStatusRequest{
		OrderID: order.ID, ItemID: order.Items[0].ID, Status: "ready",
	}))
	hot, err := f.query.KitchenPending(context.Background(), domain.KitchenHot)
	require.NoError(t, err)
	assert.Empty(t, hot)

	f.place(t, domain.RequestedItem{MenuItemID: "A", Quantity: 1})
	require.NoError(t, f.billSv.ClearBill(context.Background(), "5"))
	hot, err = f.query.KitchenPending(context.Background(), domain.KitchenHot)
	require.NoError(t, err)
	assert.Empty(t, hot)
}

// The on-demand fetch must agree with what the live new_order events said.
func TestKitchenPendingMatchesLiveEvents(t *testing.T) {
	f := newFixture(t)
	f.place(t,
		domain.RequestedItem{MenuItemID: "A", Quantity: 2},
		domain.RequestedItem{MenuItemID: "B", Quantity: 1},
	)

	live := f.kitchen1.byKind(domain.KindNewOrder)
	require.Len(t, live, 1)
	fetched, err := f.query.KitchenPending(context.Background(), domain.KitchenHot)
	require.NoError(t, err)
	require.Len(t, fetched, 1)

	ev := live[0].(domain.NewOrder)
	assert.Equal(t, ev.OrderID, fetched[0].OrderID)
	assert.Equal(t, ev.TableID, fetched[0].TableID)
	assert.Equal(t, ev.Items, fetched[0].Items)
}

func TestActiveTablesGroupsAndSorts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	place := func(tableID, menuID string, qty int) {
		origin := &recordConn{id: "origin"}
		require.NoError(t, f.orders.PlaceOrder(ctx, origin, domain.PlaceOrderRequest{
			TableID: tableID,
			Items:   []domain.RequestedItem{{MenuItemID: menuID, Quantity: qty}},
		}))
	}
	place("10", "A", 1) // 100
	place("2", "B", 2)  // 100
	place("2", "A", 1)  // 100 -> table 2 totals 200

	tables, err := f.query.ActiveTables(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	assert.Equal(t, "2", tables[0].TableID, "numeric sort: 2 before 10")
	assert.Equal(t, "10", tables[1].TableID)
	assert.True(t, tables[0].Total.Equal(decimal.NewFromInt(200)))
	assert.Len(t, tables[0].Orders, 2)

	require.Len(t, tables[1].Orders, 1)
	items := tables[1].Orders[0].Items
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Name)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, domain.StatusPending, items[0].Status)
}

func TestActiveTablesResolvesDeletedMenuItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.place(t, domain.RequestedItem{MenuItemID: "A", Quantity: 1})
	f.catalog.Remove("A")

	tables, err := f.query.ActiveTables(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	item := tables[0].Orders[0].Items[0]
	assert.Equal(t, "Unknown", item.Name)
	assert.True(t, item.Price.IsZero())
	// Totals come from the order snapshot, not the catalog.
	assert.True(t, tables[0].Total.Equal(decimal.NewFromInt(100)))
}
