package routes

import (
	"net/http"

	"Inkwell/internal/api/middleware"
	"Inkwell/internal/core/comments"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/users"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Services bundles the domain services the HTTP layer exposes
type Services struct {
	Users    users.UserService
	Posts    posts.Service
	Comments comments.Service
}

// NewRouter builds the full HTTP surface
func NewRouter(svc Services, authMiddleware middleware.AuthMiddleware, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(corsMiddleware(allowedOrigins))

	RegisterAccountRoutes(r, svc.Users)
	RegisterPostRoutes(r, svc.Posts, authMiddleware)
	RegisterCommentRoutes(r, svc.Comments, authMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
