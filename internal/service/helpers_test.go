package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"table-orders/internal/billing"
	"table-orders/internal/broker"
	"table-orders/internal/common/logger"
	"table-orders/internal/domain"
	"table-orders/internal/repository"
	"table-orders/internal/routing"
)

type recordConn struct {
	id string
	mu sync.Mutex
	ev []domain.Event
}

func (c *recordConn) ID() string { return c.id }

func (c *recordConn) Send(ev domain.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ev = append(c.ev, ev)
}

func (c *recordConn) events() []domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Event, len(c.ev))
	copy(out, c.ev)
	return out
}

func (c *recordConn) kinds() []string {
	var out []string
	for _, ev := range c.events() {
		out = append(out, ev.Kind())
	}
	return out
}

func (c *recordConn) byKind(kind string) []domain.Event {
	var out []domain.Event
	for _, ev := range c.events() {
		if ev.Kind() == kind {
			out = append(out, ev)
		}
	}
	return out
}

// fixture wires the full coordinator stack over in-memory ledger, catalog and
// broker, with one recording connection per actor role, all joined to the
// topics of the standard scenario: menu item A (price 100, kitchen 1) and B
// (price 50, kitchen 2), table "5".
type fixture struct {
	catalog *repository.CatalogMemory
	ledger  repository.Ledger
	topics  *broker.MemoryBroker
	bills   *billing.Aggregator

	orders OrderServiceInterface
	status StatusServiceInterface
	billSv BillServiceInterface
	query  QueryServiceInterface

	table    *recordConn
	admin    *recordConn
	kitchen1 *recordConn
	kitchen2 *recordConn
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	lg := logger.New("test")
	f := &fixture{
		catalog: repository.NewCatalogMemory(
			domain.MenuItem{ID: "A", Name: "A", Price: decimal.NewFromInt(100), KitchenID: domain.KitchenHot},
			domain.MenuItem{ID: "B", Name: "B", Price: decimal.NewFromInt(50), KitchenID: domain.KitchenCold},
		),
		ledger: repository.NewLedgerMemory(),
		topics: broker.NewMemoryBroker(),
	}
	f.bills = billing.NewAggregator(f.ledger)
	router := routing.NewRouter(f.catalog, lg)
	f.orders = NewOrderService(f.catalog, f.ledger, f.bills, router, f.topics, lg)
	f.status = NewStatusService(f.catalog, f.ledger, f.topics, lg)
	f.billSv = NewBillService(f.ledger, f.topics, lg)
	f.query = NewQueryService(f.catalog, f.ledger)

	f.table = &recordConn{id: "table-conn"}
	f.admin = &recordConn{id: "admin-conn"}
	f.kitchen1 = &recordConn{id: "kitchen1-conn"}
	f.kitchen2 = &recordConn{id: "kitchen2-conn"}
	f.topics.Join(f.table, broker.TableTopic("5"))
	f.topics.Join(f.admin, broker.TopicAdmin)
	f.topics.Join(f.kitchen1, broker.KitchenTopic(1))
	f.topics.Join(f.kitchen2, broker.KitchenTopic(2))
	return f
}

// place places an order on table "5" through a throwaway origin connection
// and returns that origin.
func (f *fixture) place(t *testing.T, items ...domain.RequestedItem) *recordConn {
	t.Helper()
	origin := &recordConn{id: "origin"}
	err := f.orders.PlaceOrder(context.Background(), origin, domain.PlaceOrderRequest{
		TableID: "5", Items: items,
	})
	require.NoError(t, err)
	return origin
}

func (f *fixture) placedOrder(t *testing.T, index int) domain.Order {
	t.Helper()
	orders, err := f.ledger.UnpaidByTable(context.Background(), "5")
	require.NoError(t, err)
	require.Greater(t, len(orders), index)
	return orders[index]
}
