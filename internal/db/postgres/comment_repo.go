package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"

	"Inkwell/internal/core/comments"
	"Inkwell/internal/core/users"

	"github.com/lib/pq"
)

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

// Create inserts a comment and bumps the parent post's updated_at in one transaction
func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && rollbackErr != sql.ErrTxDone {
			log.Printf("Failed to rollback transaction: %v", rollbackErr)
		}
	}()

	// Lock the parent so a concurrent delete can't leave this comment orphaned
	var postID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM posts WHERE id = $1 FOR UPDATE`, comment.PostID).Scan(&postID)
	if err == sql.ErrNoRows {
		return comments.ErrPostNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock post: %w", err)
	}

	insertQuery := `
		INSERT INTO comments (id, post_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`
	err = tx.QueryRowContext(ctx, insertQuery,
		comment.ID, comment.PostID, comment.AuthorID, comment.Content, comment.CreatedAt).
		Scan(&comment.CreatedAt)
	if err != nil {
		if isMissingUser(err, "comments_author_id_fkey") {
			return users.ErrUnknownAuthor
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE posts SET updated_at = GREATEST(updated_at, $2) WHERE id = $1`,
		comment.PostID, comment.CreatedAt); err != nil {
		return fmt.Errorf("failed to touch post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListByPostIDs retrieves comments for several posts, each thread in append order
func (r *postgresCommentRepo) ListByPostIDs(ctx context.Context, postIDs []string) (map[string][]*comments.Comment, error) {
	result := make(map[string][]*comments.Comment)
	if len(postIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, post_id, author_id, content, created_at
		FROM comments
		WHERE post_id = ANY($1)
		ORDER BY post_id, seq`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(postIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	for rows.Next() {
		c := &comments.Comment{}
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		result[c.PostID] = append(result[c.PostID], c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return result, nil
}
