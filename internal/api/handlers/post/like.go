package post

import (
	"net/http"

	"Inkwell/internal/api/handlers"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// LikeHandler handles like toggles
type LikeHandler struct {
	service posts.Service
}

// NewLikeHandler creates a new handler for toggling likes
func NewLikeHandler(service posts.Service) *LikeHandler {
	return &LikeHandler{service: service}
}

// HandleToggle handles POST /api/posts/{id}/like
// Clients must not retry this blindly: a second call undoes the first.
func (h *LikeHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if !requireUserID(w, userID) {
		return
	}

	view, err := h.service.ToggleLike(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, view)
}
