package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"

	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/users"

	"github.com/lib/pq"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// postColumns selects a post together with its liker set in like order
const postColumns = `
	p.id, p.title, p.content, p.author_id, p.like_count, p.created_at, p.updated_at,
	COALESCE(
		(SELECT array_agg(l.user_id ORDER BY l.created_at, l.user_id) FROM post_likes l WHERE l.post_id = p.id),
		'{}'
	)`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*posts.Post, error) {
	post := &posts.Post{}
	var likedBy pq.StringArray
	err := row.Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.Likes,
		&post.CreatedAt, &post.UpdatedAt, &likedBy)
	if err != nil {
		return nil, err
	}
	post.LikedBy = []string(likedBy)
	if post.LikedBy == nil {
		post.LikedBy = []string{}
	}
	return post, nil
}

// Create inserts a new post into the posts table
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (id, title, content, author_id, like_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 0, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		post.ID, post.Title, post.Content, post.AuthorID, post.CreatedAt, post.UpdatedAt).
		Scan(&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if isMissingUser(err, "posts_author_id_fkey") {
			return users.ErrUnknownAuthor
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by its ID
func (r *postgresPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p WHERE p.id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// List retrieves posts newest first, optionally filtered by author
func (r *postgresPostRepo) List(ctx context.Context, filter posts.ListFilter) ([]*posts.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p`
	var args []interface{}
	if filter.AuthorID != "" {
		query += ` WHERE p.author_id = $1`
		args = append(args, filter.AuthorID)
	}
	query += ` ORDER BY p.created_at DESC, p.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	result := []*posts.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		result = append(result, post)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return result, nil
}

// Delete atomically removes a post with its comments and likes.
// The post row is locked first so a concurrent comment insert either
// commits before the cascade or fails with not found afterwards.
func (r *postgresPostRepo) Delete(ctx context.Context, id, authorID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && rollbackErr != sql.ErrTxDone {
			log.Printf("Failed to rollback transaction: %v", rollbackErr)
		}
	}()

	var lockedID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM posts WHERE id = $1 AND author_id = $2 FOR UPDATE`, id, authorID).
		Scan(&lockedID)
	if err == sql.ErrNoRows {
		return posts.ErrNotFoundOrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("failed to lock post: %w", err)
	}

	// Cascade first; a failure here aborts the whole delete
	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	// post_likes rows go with the post via ON DELETE CASCADE
	if _, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ToggleLike flips userID's like on a post under a row lock
func (r *postgresPostRepo) ToggleLike(ctx context.Context, postID, userID string) (*posts.Post, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && rollbackErr != sql.ErrTxDone {
			log.Printf("Failed to rollback transaction: %v", rollbackErr)
		}
	}()

	// Serializes concurrent toggles on the same post
	var lockedID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM posts WHERE id = $1 FOR UPDATE`, postID).Scan(&lockedID)
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock post: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove like: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check unlike result: %w", err)
	}

	delta := -1
	if removed == 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_likes (post_id, user_id, created_at) VALUES ($1, $2, NOW())`,
			postID, userID); err != nil {
			if isMissingUser(err, "post_likes_user_id_fkey") {
				return nil, users.ErrUnknownAuthor
			}
			return nil, fmt.Errorf("failed to add like: %w", err)
		}
		delta = 1
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE posts SET like_count = like_count + $2 WHERE id = $1`, postID, delta); err != nil {
		return nil, fmt.Errorf("failed to update like count: %w", err)
	}

	post, err := scanPost(tx.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts p WHERE p.id = $1`, postID))
	if err != nil {
		return nil, fmt.Errorf("failed to reload post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return post, nil
}

// ReconcileLikeCounts rewrites posts.like_count from post_likes for every post
// whose counter has drifted. Returns the number of posts corrected.
func ReconcileLikeCounts(ctx context.Context, db *sql.DB) (int64, error) {
	query := `
		UPDATE posts p
		SET like_count = counts.n
		FROM (
			SELECT p2.id, COUNT(l.user_id) AS n
			FROM posts p2
			LEFT JOIN post_likes l ON l.post_id = p2.id
			GROUP BY p2.id
		) counts
		WHERE p.id = counts.id AND p.like_count <> counts.n`

	result, err := db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to reconcile like counts: %w", err)
	}
	fixed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read reconcile result: %w", err)
	}
	return fixed, nil
}
