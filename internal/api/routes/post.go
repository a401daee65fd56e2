package routes

import (
	"Inkwell/internal/api/handlers/post"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers post endpoints on the router.
// Reads are public with optional auth for viewer state; writes require auth.
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware middleware.AuthMiddleware) {
	// Initialize handlers
	createHandler := post.NewCreateHandler(service)
	getHandler := post.NewGetHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	likeHandler := post.NewLikeHandler(service)

	r.With(authMiddleware.OptionalAuth).Get("/api/posts", getHandler.HandleList)

	// Registered before /{id} so "user" is never taken as a post ID
	r.With(authMiddleware.RequireAuth).Get("/api/posts/user/{userId}", getHandler.HandleListByAuthor)

	r.With(authMiddleware.OptionalAuth).Get("/api/posts/{id}", getHandler.HandleGet)

	r.With(authMiddleware.RequireAuth).Post("/api/posts", createHandler.HandleCreate)

	// Only the author can delete; anyone else gets the same 404 as a missing post
	r.With(authMiddleware.RequireAuth).Delete("/api/posts/{id}", deleteHandler.HandleDelete)

	r.With(authMiddleware.RequireAuth).Post("/api/posts/{id}/like", likeHandler.HandleToggle)
}
