package routes

import (
	"net/http"

	"github.com/go-chi/cors"
)

// corsMiddleware creates the CORS middleware for the browser client
func corsMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	// Credentials cannot be combined with a wildcard origin
	allowCredentials := true
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		AllowCredentials: allowCredentials,
		MaxAge:           300, // 5 minutes
	})
}
