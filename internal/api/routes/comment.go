package routes

import (
	"Inkwell/internal/api/handlers/comments"
	"Inkwell/internal/api/middleware"
	commentsCore "Inkwell/internal/core/comments"

	"github.com/go-chi/chi/v5"
)

// RegisterCommentRoutes registers comment endpoints on the router.
// Comments are returned embedded in post views, so only creation is routed here.
func RegisterCommentRoutes(r chi.Router, service commentsCore.Service, authMiddleware middleware.AuthMiddleware) {
	createHandler := comments.NewCreateCommentHandler(service)

	r.With(authMiddleware.RequireAuth).Post("/api/posts/{id}/comments", createHandler.HandleCreate)
}
