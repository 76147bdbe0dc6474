package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-orders/internal/domain"
)

func testOrder(id, tableID string, total int64) domain.Order {
	return domain.Order{
		ID:      id,
		TableID: tableID,
		Items: []domain.OrderItem{
			{ID: id + "-i1", MenuItemID: "m1", Quantity: 2, Status: domain.StatusPending},
		},
		Total:     decimal.NewFromInt(total),
		CreatedAt: time.Now().UTC(),
	}
}

func TestLedgerMemoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	l := NewLedgerMemory()

	require.NoError(t, l.CreateOrder(ctx, testOrder("o1", "5", 100)))
	require.NoError(t, l.CreateOrder(ctx, testOrder("o2", "5", 50)))
	require.NoError(t, l.CreateOrder(ctx, testOrder("o3", "7", 30)))

	o, ok, err := l.OrderByID(ctx, "o2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "5", o.TableID)
	assert.True(t, o.Total.Equal(decimal.NewFromInt(50)))

	_, ok, err = l.OrderByID(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	unpaid, err := l.UnpaidByTable(ctx, "5")
	require.NoError(t, err)
	assert.Len(t, unpaid, 2)

	all, err := l.AllUnpaid(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestLedgerMemoryMarkTablePaid(t *testing.T) {
	ctx := context.Background()
	l := NewLedgerMemory()
	require.NoError(t, l.CreateOrder(ctx, testOrder("o1", "5", 100)))
	require.NoError(t, l.CreateOrder(ctx, testOrder("o2", "7", 30)))

	require.NoError(t, l.MarkTablePaid(ctx, "5"))

	unpaid, err := l.UnpaidByTable(ctx, "5")
	require.NoError(t, err)
	assert.Empty(t, unpaid)

	// Orders are archived, not deleted.
	o, ok, err := l.OrderByID(ctx, "o1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, o.IsPaid)

	// Other tables untouched; clearing an empty table is a no-op.
	require.NoError(t, l.MarkTablePaid(ctx, "99"))
	other, err := l.UnpaidByTable(ctx, "7")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestLedgerMemoryUpdateItemStatus(t *testing.T) {
	ctx := context.Background()
	l := NewLedgerMemory()
	require.NoError(t, l.CreateOrder(ctx, testOrder("o1", "5", 100)))

	require.NoError(t, l.UpdateItemStatus(ctx, "o1", "o1-i1", domain.StatusReady))
	o, _, err := l.OrderByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, o.Items[0].Status)

	// Unknown order or item: no error, no effect.
	require.NoError(t, l.UpdateItemStatus(ctx, "nope", "o1-i1", domain.StatusReady))
	require.NoError(t, l.UpdateItemStatus(ctx, "o1", "nope", domain.StatusPending))
	o, _, _ = l.OrderByID(ctx, "o1")
	assert.Equal(t, domain.StatusReady, o.Items[0].Status)
}

func TestLedgerMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	l := NewLedgerMemory()
	require.NoError(t, l.CreateOrder(ctx, testOrder("o1", "5", 100)))

	o, _, err := l.OrderByID(ctx, "o1")
	require.NoError(t, err)
	o.Items[0].Status = domain.StatusServed

	fresh, _, _ := l.OrderByID(ctx, "o1")
	assert.Equal(t, domain.StatusPending, fresh.Items[0].Status,
		"mutating a returned order must not touch the ledger")
}
