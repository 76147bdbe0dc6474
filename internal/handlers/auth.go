package handlers

import (
	"encoding/json"
	"net/http"

	"table-orders/internal/auth"
)

type AuthHandler struct {
	gate auth.Gate
}

func NewAuthHandler(gate auth.Gate) *AuthHandler {
	return &AuthHandler{gate: gate}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}
	token, ok := h.gate.Login(req.Username, req.Password)
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if !h.gate.Verify(bearerToken(r)) {
		writeProblem(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
