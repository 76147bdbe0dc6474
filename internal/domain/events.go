package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Event is a tagged variant published through the topic broker. Each kind has
// a fixed payload schema; consumers switch on Kind.
type Event interface {
	Kind() string
}

const (
	KindBillUpdated       = "bill_updated"
	KindTableBillUpdated  = "table_bill_updated"
	KindNewOrder          = "new_order"
	KindOrderConfirmed    = "order_confirmed"
	KindOrderFailed       = "order_failed"
	KindItemStatusChanged = "item_status_changed"
	KindTableCleared      = "table_cleared"
	KindBillCleared       = "bill_cleared"
)

// BillUpdated is an absolute-value snapshot of the table's grand total, not a
// delta; consumers apply it last-write-wins.
type BillUpdated struct {
	Total decimal.Decimal `json:"total"`
}

func (BillUpdated) Kind() string { return KindBillUpdated }

// TableBillUpdated is the admin-side counterpart, carrying the table and its
// full reconstructed order list.
type TableBillUpdated struct {
	TableID string          `json:"table_id"`
	Total   decimal.Decimal `json:"total"`
	Orders  []OrderView     `json:"orders"`
}

func (TableBillUpdated) Kind() string { return KindTableBillUpdated }

type NewOrder struct {
	OrderID string       `json:"order_id"`
	TableID string       `json:"table_id"`
	Items   []RoutedItem `json:"items"`
}

func (NewOrder) Kind() string { return KindNewOrder }

type OrderConfirmed struct {
	Message string `json:"message"`
}

func (OrderConfirmed) Kind() string { return KindOrderConfirmed }

type OrderFailed struct {
	Message string `json:"message"`
}

func (OrderFailed) Kind() string { return KindOrderFailed }

type ItemStatusChanged struct {
	ItemName string     `json:"item_name"`
	Status   ItemStatus `json:"status"`
}

func (ItemStatusChanged) Kind() string { return KindItemStatusChanged }

type TableCleared struct {
	TableID string `json:"table_id"`
}

func (TableCleared) Kind() string { return KindTableCleared }

type BillCleared struct{}

func (BillCleared) Kind() string { return KindBillCleared }

// envelope is the wire form of an event.
type envelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

func EncodeEvent(ev Event) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", ev.Kind(), err)
	}
	return json.Marshal(envelope{Kind: ev.Kind(), Payload: payload})
}

func DecodeEvent(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal event envelope: %w", err)
	}
	var ev Event
	switch env.Kind {
	case KindBillUpdated:
		ev = &BillUpdated{}
	case KindTableBillUpdated:
		ev = &TableBillUpdated{}
	case KindNewOrder:
		ev = &NewOrder{}
	case KindOrderConfirmed:
		ev = &OrderConfirmed{}
	case KindOrderFailed:
		ev = &OrderFailed{}
	case KindItemStatusChanged:
		ev = &ItemStatusChanged{}
	case KindTableCleared:
		ev = &TableCleared{}
	case KindBillCleared:
		ev = &BillCleared{}
	default:
		return nil, fmt.Errorf("unknown event kind %q", env.Kind)
	}
	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, ev); err != nil {
			return nil, fmt.Errorf("unmarshal %s payload: %w", env.Kind, err)
		}
	}
	return ev, nil
}
