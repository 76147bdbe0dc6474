package handlers

import (
	"net/http"
	"strconv"

	"table-orders/internal/domain"
	"table-orders/internal/service"
)

type OrdersHandler struct {
	query service.QueryServiceInterface
}

func NewOrdersHandler(query service.QueryServiceInterface) *OrdersHandler {
	return &OrdersHandler{query: query}
}

// KitchenPending is the full-state fetch a kitchen viewer issues on connect,
// before subscribing to its live topic.
func (h *OrdersHandler) KitchenPending(w http.ResponseWriter, r *http.Request) {
	kitchenID, err := strconv.Atoi(r.PathValue("kitchen_id"))
	if err != nil || !domain.ValidKitchen(kitchenID) {
		writeProblem(w, http.StatusBadRequest, "invalid_kitchen", "invalid kitchen id")
		return
	}
	orders, err := h.query.KitchenPending(r.Context(), kitchenID)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if orders == nil {
		orders = []domain.KitchenOrder{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// ActiveTables is the admin dashboard's full-state fetch.
func (h *OrdersHandler) ActiveTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.query.ActiveTables(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if tables == nil {
		tables = []domain.TableView{}
	}
	writeJSON(w, http.StatusOK, tables)
}
