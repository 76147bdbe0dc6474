package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"table-orders/internal/domain"
	"table-orders/internal/repository"
)

type QueryServiceInterface interface {
	KitchenPending(ctx context.Context, kitchenID int) ([]domain.KitchenOrder, error)
	ActiveTables(ctx context.Context) ([]domain.TableView, error)
}

// QueryService serves the authoritative full-state fetches viewers issue on
// (re)connect, independent of the live event stream. Its output must agree
// with what the incremental events would have produced for a viewer connected
// the whole time.
type QueryService struct {
	catalog repository.Catalog
	ledger  repository.Ledger
}

func NewQueryService(catalog repository.Catalog, ledger repository.Ledger) QueryServiceInterface {
	return &QueryService{catalog: catalog, ledger: ledger}
}

// KitchenPending lists, per order, the still-pending items this kitchen is
// responsible for. Orders with nothing pending for the kitchen are omitted.
func (s *QueryService) KitchenPending(ctx context.Context, kitchenID int) ([]domain.KitchenOrder, error) {
	if !domain.ValidKitchen(kitchenID) {
		return nil, fmt.Errorf("invalid kitchen id %d", kitchenID)
	}
	orders, err := s.ledger.AllUnpaid(ctx)
	if err != nil {
		return nil, fmt.Errorf("load unpaid orders: %w", err)
	}

	var out []domain.KitchenOrder
	for _, o := range orders {
		ko := domain.KitchenOrder{OrderID: o.ID, TableID: o.TableID}
		for _, item := range o.Items {
			if item.Status != domain.StatusPending {
				continue
			}
			menu, ok, err := s.catalog.MenuItem(ctx, item.MenuItemID)
			if err != nil {
				return nil, err
			}
			if !ok || menu.KitchenID != kitchenID {
				continue
			}
			ko.Items = append(ko.Items, domain.RoutedItem{
				ItemID: item.ID, Name: menu.Name, Qty: item.Quantity,
			})
		}
		if len(ko.Items) > 0 {
			out = append(out, ko)
		}
	}
	sortByTable(out, func(k domain.KitchenOrder) string { return k.TableID })
	return out, nil
}

// ActiveTables groups all unpaid orders by table with per-table totals, the
// admin dashboard's initial state.
func (s *QueryService) ActiveTables(ctx context.Context) ([]domain.TableView, error) {
	orders, err := s.ledger.AllUnpaid(ctx)
	if err != nil {
		return nil, fmt.Errorf("load unpaid orders: %w", err)
	}

	byTable := make(map[string]*domain.TableView)
	var tableIDs []string
	for _, o := range orders {
		tv, ok := byTable[o.TableID]
		if !ok {
			tv = &domain.TableView{TableID: o.TableID, Total: decimal.Zero}
			byTable[o.TableID] = tv
			tableIDs = append(tableIDs, o.TableID)
		}
		views, err := orderViews(ctx, s.catalog, []domain.Order{o})
		if err != nil {
			return nil, err
		}
		tv.Orders = append(tv.Orders, views...)
		tv.Total = tv.Total.Add(o.Total)
	}

	out := make([]domain.TableView, 0, len(byTable))
	for _, id := range tableIDs {
		out = append(out, *byTable[id])
	}
	sortByTable(out, func(t domain.TableView) string { return t.TableID })
	return out, nil
}

// sortByTable orders numerically when table ids parse as numbers ("2" before
// "10"), lexically otherwise.
func sortByTable[T any](items []T, key func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		na, errA := strconv.Atoi(a)
		nb, errB := strconv.Atoi(b)
		if errA == nil && errB == nil {
			return na < nb
		}
		return a < b
	})
}
