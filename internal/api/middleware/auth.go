package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"Inkwell/internal/auth"
)

// Context keys for storing user information
type contextKey string

const (
	UserIDKey contextKey = "user_id"
)

// TokenVerifier resolves a bearer token to a user ID
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware is what route registration needs from an auth layer
type AuthMiddleware interface {
	RequireAuth(next http.Handler) http.Handler
	OptionalAuth(next http.Handler) http.Handler
}

// BearerAuthMiddleware enforces bearer token authentication for protected routes
type BearerAuthMiddleware struct {
	verifier TokenVerifier
}

// NewBearerAuthMiddleware creates a new bearer auth middleware
func NewBearerAuthMiddleware(verifier TokenVerifier) *BearerAuthMiddleware {
	return &BearerAuthMiddleware{verifier: verifier}
}

// RequireAuth middleware ensures the user is authenticated with a valid token.
// Every failure produces the same 401 response; the reason is only logged.
func (m *BearerAuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractBearerToken(r)
		if !ok {
			log.Printf("[AUTH_FAILURE] type=missing_token ip=%s method=%s path=%s",
				r.RemoteAddr, r.Method, r.URL.Path)
			writeAuthError(w)
			return
		}

		userID, err := m.verifier.Verify(token)
		if err != nil {
			failure := "invalid_token"
			if errors.Is(err, auth.ErrTokenExpired) {
				failure = "expired_token"
			}
			log.Printf("[AUTH_FAILURE] type=%s ip=%s method=%s path=%s error=%v",
				failure, r.RemoteAddr, r.Method, r.URL.Path, err)
			writeAuthError(w)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth middleware loads user info if authenticated, but doesn't require it.
// Used on read endpoints so views can carry viewer state.
func (m *BearerAuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractBearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := m.verifier.Verify(token)
		if err != nil {
			// Invalid token - continue without user context
			log.Printf("Optional auth failed: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the user's ID from the request context
// Returns empty string if not authenticated
func GetUserID(r *http.Request) string {
	return GetAuthenticatedUserID(r.Context())
}

// GetAuthenticatedUserID extracts the authenticated user's ID from the context
// Returns empty string if not authenticated
func GetAuthenticatedUserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

// SetTestUserID sets the user ID in the context for testing purposes
// This function should ONLY be used in tests to mock authenticated users
func SetTestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func extractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// writeAuthError writes the uniform JSON response for authentication failures
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	response := `{"error":"AuthenticationRequired","message":"Authentication required"}`
	if _, err := w.Write([]byte(response)); err != nil {
		log.Printf("Failed to write auth error response: %v", err)
	}
}
