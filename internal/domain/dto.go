package domain

import "encoding/json"

// Client actions arriving on a topic-scoped connection.
const (
	ActionJoinTable    = "join_table"
	ActionJoinKitchen  = "join_kitchen"
	ActionJoinAdmin    = "join_admin"
	ActionPlaceOrder   = "place_order"
	ActionUpdateStatus = "update_item_status"
	ActionClearBill    = "clear_bill"
)

type ClientMessage struct {
	Action  string          `json:"action"`
	Token   string          `json:"token,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type JoinTableRequest struct {
	TableID string `json:"table_id"`
}

type JoinKitchenRequest struct {
	KitchenID int `json:"kitchen_id"`
}

type RequestedItem struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"qty"`
}

type PlaceOrderRequest struct {
	TableID string          `json:"table_id"`
	Items   []RequestedItem `json:"items"`
}

type UpdateStatusRequest struct {
	OrderID string `json:"order_id"`
	ItemID  string `json:"item_id"`
	Status  string `json:"status"`
}

type ClearBillRequest struct {
	TableID string `json:"table_id"`
}
