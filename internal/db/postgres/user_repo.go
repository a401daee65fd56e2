package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"Inkwell/internal/core/users"

	"github.com/lib/pq"
)

// Postgres SQLSTATEs the repositories translate into domain errors
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// isMissingUser reports whether err is a foreign key violation on the given
// user reference constraint
func isMissingUser(err error, constraint string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation && pqErr.Constraint == constraint
}

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.UserRepository {
	return &postgresUserRepo{db: db}
}

// Create inserts a new user into the users table
func (r *postgresUserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		INSERT INTO users (id, handle, display_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, handle, display_name, password_hash, created_at`

	created := &users.User{}
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Handle, user.DisplayName, user.PasswordHash, user.CreatedAt).
		Scan(&created.ID, &created.Handle, &created.DisplayName, &created.PasswordHash, &created.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint == "users_handle_key" {
			return nil, users.ErrHandleAlreadyTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// GetByID retrieves a user by ID
func (r *postgresUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	query := `SELECT id, handle, display_name, password_hash, created_at FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByHandle retrieves a user by their handle
func (r *postgresUserRepo) GetByHandle(ctx context.Context, handle string) (*users.User, error) {
	query := `SELECT id, handle, display_name, password_hash, created_at FROM users WHERE handle = $1`
	return r.getOne(ctx, query, handle)
}

func (r *postgresUserRepo) getOne(ctx context.Context, query, arg string) (*users.User, error) {
	user := &users.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Handle, &user.DisplayName, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// MaxBatchSize caps the number of IDs bound to a single ANY($1) query
const MaxBatchSize = 1000

// splitBatches cuts ids into consecutive chunks of at most size elements
func splitBatches(ids []string, size int) [][]string {
	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		batches = append(batches, ids[start:end])
	}
	return batches
}

// GetByIDs retrieves multiple users by ID, querying at most MaxBatchSize IDs
// at a time. Missing users are not included in the result map.
func (r *postgresUserRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*users.User, error) {
	result := make(map[string]*users.User, len(ids))
	for _, batch := range splitBatches(ids, MaxBatchSize) {
		if err := r.getBatch(ctx, batch, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *postgresUserRepo) getBatch(ctx context.Context, ids []string, into map[string]*users.User) error {
	query := `SELECT id, handle, display_name, password_hash, created_at FROM users WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query users by IDs: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	for rows.Next() {
		user := &users.User{}
		if err := rows.Scan(&user.ID, &user.Handle, &user.DisplayName, &user.PasswordHash, &user.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan user row: %w", err)
		}
		into[user.ID] = user
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating user rows: %w", err)
	}
	return nil
}
