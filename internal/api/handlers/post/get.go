package post

import (
	"net/http"

	"Inkwell/internal/api/handlers"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// GetHandler serves read endpoints for posts
type GetHandler struct {
	service posts.Service
}

// NewGetHandler creates a new handler for reading posts
func NewGetHandler(service posts.Service) *GetHandler {
	return &GetHandler{service: service}
}

// HandleList handles GET /api/posts
func (h *GetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListPosts(r.Context(), posts.ListFilter{}, middleware.GetUserID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, views)
}

// HandleListByAuthor handles GET /api/posts/user/{userId}
func (h *GetHandler) HandleListByAuthor(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r)
	if !requireUserID(w, viewerID) {
		return
	}

	authorID := chi.URLParam(r, "userId")
	if authorID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "userId is required")
		return
	}

	views, err := h.service.ListPosts(r.Context(), posts.ListFilter{AuthorID: authorID}, viewerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, views)
}

// HandleGet handles GET /api/posts/{id}
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetPost(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, view)
}
