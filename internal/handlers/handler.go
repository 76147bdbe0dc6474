package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"table-orders/internal/auth"
)

type Handler struct {
	Orders *OrdersHandler
	Auth   *AuthHandler

	// Actions is set only for the in-memory deployment; the full deployment
	// takes client actions from the message queue instead.
	Actions *ActionsHandler
}

func Router(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/orders/kitchen/{kitchen_id}", h.Orders.KitchenPending)
	mux.HandleFunc("GET /api/orders/active", adminAuth(h.Auth.gate, h.Orders.ActiveTables))
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("GET /api/auth/verify", h.Auth.Verify)
	if h.Actions != nil {
		mux.HandleFunc("POST /api/actions", h.Actions.Dispatch)
	}
	return mux
}

// adminAuth guards admin-only routes with a bearer token.
func adminAuth(gate auth.Gate, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeProblem(w, http.StatusUnauthorized, "no_token", "no token provided")
			return
		}
		if !gate.Verify(token) {
			writeProblem(w, http.StatusForbidden, "invalid_token", "invalid token")
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return h[7:]
	}
	return ""
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeProblem renders errors in a single shape across routes.
func writeProblem(w http.ResponseWriter, code int, typ, detail string) {
	writeJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}
