package post

import (
	"errors"
	"log"
	"net/http"

	"Inkwell/internal/api/handlers"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/users"
)

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, posts.ErrNotFoundOrUnauthorized):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found or unauthorized")

	case errors.Is(err, posts.ErrNotFound):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")

	case errors.Is(err, users.ErrUnknownAuthor):
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")

	case posts.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	default:
		// Don't leak internal error details to clients
		log.Printf("Unexpected error in post handler: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}

// requireUserID returns the authenticated caller or writes a 401.
// Routes mount these handlers behind RequireAuth, so a miss means misconfiguration.
func requireUserID(w http.ResponseWriter, userID string) bool {
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", "Authentication required")
		return false
	}
	return true
}
