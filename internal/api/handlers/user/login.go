package user

import (
	"net/http"

	"Inkwell/internal/api/handlers"
	"Inkwell/internal/core/users"
)

// LoginHandler exchanges credentials for a bearer token
type LoginHandler struct {
	service users.UserService
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(service users.UserService) *LoginHandler {
	return &LoginHandler{service: service}
}

// HandleLogin handles POST /api/auth/login
//
// Request body: { "username": "...", "password": "..." }
// Response: 200 { "token": "...", "user": {...} }
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req users.LoginRequest
	if !handlers.DecodeJSONBody(w, r, 64*1024, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}
