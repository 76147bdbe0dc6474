package billing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"table-orders/internal/repository"
)

// Aggregator computes a table's running bill. Every call rescans the ledger;
// nothing is cached, so partial updates can never leave a stale total behind.
type Aggregator struct {
	ledger repository.Ledger
}

func NewAggregator(ledger repository.Ledger) *Aggregator {
	return &Aggregator{ledger: ledger}
}

// GrandTotal sums total over the table's unpaid orders.
func (a *Aggregator) GrandTotal(ctx context.Context, tableID string) (decimal.Decimal, error) {
	orders, err := a.ledger.UnpaidByTable(ctx, tableID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load unpaid orders for table %s: %w", tableID, err)
	}
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total)
	}
	return total, nil
}
