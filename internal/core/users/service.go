package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// dummyPassword is hashed once per service so that a login for an unknown
// handle costs the same bcrypt comparison as one for a known handle.
const dummyPassword = "inkwell-login-timing-equalizer"

type userService struct {
	userRepo  UserRepository
	tokens    TokenIssuer
	logger    *slog.Logger
	dummyHash []byte
	cost      int
}

// NewUserService creates a new user service.
// A bcryptCost of zero uses bcrypt.DefaultCost.
func NewUserService(userRepo UserRepository, tokens TokenIssuer, bcryptCost int) UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), bcryptCost)
	if err != nil {
		// Only reachable with an out-of-range cost; config validation rejects those.
		slog.Error("failed to prepare dummy password hash", "error", err)
	}

	return &userService{
		userRepo:  userRepo,
		tokens:    tokens,
		cost:      bcryptCost,
		dummyHash: dummyHash,
		logger:    slog.Default(),
	}
}

// Register creates an account and returns a token for it
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.Handle = strings.TrimSpace(req.Handle)
	req.DisplayName = strings.TrimSpace(req.DisplayName)

	if err := s.validateRegisterRequest(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Handle:       req.Handle,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	// Repository will handle duplicate constraint errors
	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", created.ID, "handle", created.Handle)

	return s.authResponse(created)
}

// Login exchanges a handle and password for a token
func (s *userService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	req.Handle = strings.TrimSpace(req.Handle)
	if req.Handle == "" {
		return nil, NewValidationError("username", "required")
	}
	if req.Password == "" {
		return nil, NewValidationError("password", "required")
	}

	user, err := s.FindByHandle(ctx, req.Handle)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Burn the same bcrypt work so response timing doesn't reveal the handle exists
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.VerifySecret(user, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// FindByHandle retrieves a user by their handle
func (s *userService) FindByHandle(ctx context.Context, handle string) (*User, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, ErrUserNotFound
	}
	return s.userRepo.GetByHandle(ctx, handle)
}

// VerifySecret compares candidate against the stored bcrypt hash.
// It never returns an error; any failure is a mismatch.
func (s *userService) VerifySecret(user *User, candidate string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(candidate)) == nil
}

func (s *userService) authResponse(user *User) (*AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResponse{
		Token: token,
		User:  user.ToPublic(),
	}, nil
}

func (s *userService) validateRegisterRequest(req RegisterRequest) error {
	if req.Handle == "" {
		return NewValidationError("username", "required")
	}
	if req.Password == "" {
		return NewValidationError("password", "required")
	}
	if req.DisplayName == "" {
		return NewValidationError("name", "required")
	}
	// bcrypt silently truncates past 72 bytes and errors in newer releases
	if len(req.Password) > 72 {
		return NewValidationError("password", "must be at most 72 bytes")
	}
	return nil
}
