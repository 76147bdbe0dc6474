package domain

import "github.com/shopspring/decimal"

// Read models served to kitchen and admin viewers. Item names and prices are
// resolved through the menu catalog at query time.

type RoutedItem struct {
	ItemID string `json:"item_id"`
	Name   string `json:"name"`
	Qty    int    `json:"qty"`
}

type ItemView struct {
	ItemID string          `json:"item_id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Qty    int             `json:"qty"`
	Status ItemStatus      `json:"status"`
}

type OrderView struct {
	OrderID string          `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
	Items   []ItemView      `json:"items"`
}

// TableView groups a table's unpaid orders for the admin dashboard.
type TableView struct {
	TableID string          `json:"table_id"`
	Total   decimal.Decimal `json:"total"`
	Orders  []OrderView     `json:"orders"`
}

// KitchenOrder is one order's still-pending items for a single kitchen.
type KitchenOrder struct {
	OrderID string       `json:"order_id"`
	TableID string       `json:"table_id"`
	Items   []RoutedItem `json:"items"`
}
