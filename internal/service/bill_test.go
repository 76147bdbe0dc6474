package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-orders/internal/domain"
)

// clearBill("5"): table_cleared to admin, bill_cleared to the table, and the
// grand total drops to zero.
func TestClearBill(t *testing.T) {
	f := newFixture(t)
	f.place(t,
		domain.RequestedItem{MenuItemID: "A", Quantity: 2},
		domain.RequestedItem{MenuItemID: "B", Quantity: 1},
	)
	f.place(t, domain.RequestedItem{MenuItemID: "A", Quantity: 1})

	require.NoError(t, f.billSv.ClearBill(context.Background(), "5"))

	cleared := f.admin.byKind(domain.KindTableCleared)
	require.Len(t, cleared, 1)
	assert.Equal(t, "5", cleared[0].(domain.TableCleared).TableID)
	assert.Len(t, f.table.byKind(domain.KindBillCleared), 1)

	total, err := f.bills.GrandTotal(context.Background(), "5")
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

// Clear-bill finality: no subsequent bill_updated reflects pre-clear orders.
func TestClearBillFinality(t *testing.T) {
	f := newFixture(t)
	f.place(t, domain.RequestedItem{MenuItemID: "A", Quantity: 2}) // 200
	require.NoError(t, f.billSv.ClearBill(context.Background(), "5"))

	f.place(t, domain.RequestedItem{MenuItemID: "B", Quantity: 1}) // 50

	bills := f.table.byKind(domain.KindBillUpdated)
	require.Len(t, bills, 2)
	last := bills[len(bills)-1].(domain.BillUpdated)
	assert.Equal(t, "50", last.Total.String())
}

// Clearing a table with no unpaid orders is a harmless no-op that still
// publishes; consumers treat both events idempotently.
func TestClearBillEmptyTable(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.billSv.ClearBill(context.Background(), "5"))

	assert.Len(t, f.admin.byKind(domain.KindTableCleared), 1)
	assert.Len(t, f.table.byKind(domain.KindBillCleared), 1)
}
