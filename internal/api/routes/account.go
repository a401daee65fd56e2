package routes

import (
	"Inkwell/internal/api/handlers/user"
	"Inkwell/internal/core/users"

	"github.com/go-chi/chi/v5"
)

// RegisterAccountRoutes registers signup and login. Both are public.
func RegisterAccountRoutes(r chi.Router, service users.UserService) {
	signupHandler := user.NewSignupHandler(service)
	loginHandler := user.NewLoginHandler(service)

	r.Post("/api/auth/signup", signupHandler.HandleSignup)
	r.Post("/api/auth/login", loginHandler.HandleLogin)
}
