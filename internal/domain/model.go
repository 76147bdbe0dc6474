package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kitchens are fixed stations; every menu item is prepared by exactly one.
const (
	KitchenHot  = 1
	KitchenCold = 2
)

func ValidKitchen(id int) bool { return id == KitchenHot || id == KitchenCold }

type ItemStatus string

const (
	StatusPending ItemStatus = "pending"
	StatusReady   ItemStatus = "ready"
	StatusServed  ItemStatus = "served" // in the value space, no transition produces it yet
)

type MenuItem struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	KitchenID int
}

type OrderItem struct {
	ID         string
	MenuItemID string
	Quantity   int
	Status     ItemStatus
}

type Order struct {
	ID        string
	TableID   string
	Items     []OrderItem
	Total     decimal.Decimal // price snapshot at placement, never recomputed
	IsPaid    bool
	CreatedAt time.Time
}
