package users

import "context"

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	// Create inserts a new user. Returns ErrHandleAlreadyTaken on a duplicate handle.
	Create(ctx context.Context, user *User) (*User, error)

	// GetByID returns ErrUserNotFound when absent.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByHandle returns ErrUserNotFound when absent.
	GetByHandle(ctx context.Context, handle string) (*User, error)

	// GetByIDs retrieves multiple users in one query.
	// Missing users are simply absent from the returned map.
	GetByIDs(ctx context.Context, ids []string) (map[string]*User, error)
}

// TokenIssuer mints bearer tokens for a user identity.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// UserService defines the interface for account business logic
type UserService interface {
	// Register creates an account and returns a token for it.
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)

	// Login exchanges a handle and password for a token.
	// Safe to retry: it has no side effects.
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)

	// FindByHandle returns ErrUserNotFound when no such handle exists.
	FindByHandle(ctx context.Context, handle string) (*User, error)

	// VerifySecret reports whether candidate matches the user's stored hash.
	VerifySecret(user *User, candidate string) bool
}
