package user

import (
	"net/http"

	"Inkwell/internal/api/handlers"
	"Inkwell/internal/core/users"
)

// SignupHandler handles account registration
type SignupHandler struct {
	service users.UserService
}

// NewSignupHandler creates a new signup handler
func NewSignupHandler(service users.UserService) *SignupHandler {
	return &SignupHandler{service: service}
}

// HandleSignup handles POST /api/auth/signup
//
// Request body: { "username": "...", "password": "...", "name": "..." }
// Response: 201 { "token": "...", "user": {...} }
func (h *SignupHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req users.RegisterRequest
	if !handlers.DecodeJSONBody(w, r, 64*1024, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, resp)
}
