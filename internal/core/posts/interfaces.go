package posts

import "context"

// Service defines the business logic interface for posts
type Service interface {
	// CreatePost creates a post owned by authorID with no likes and no comments
	CreatePost(ctx context.Context, authorID string, req CreatePostRequest) (*PostView, error)

	// GetPost returns one hydrated post. viewerID may be empty.
	GetPost(ctx context.Context, postID, viewerID string) (*PostView, error)

	// ListPosts returns hydrated posts, newest first. viewerID may be empty.
	ListPosts(ctx context.Context, filter ListFilter, viewerID string) ([]*PostView, error)

	// DeletePost removes a post and all its comments.
	// Returns ErrNotFoundOrUnauthorized unless callerID authored the post.
	DeletePost(ctx context.Context, callerID, postID string) error

	// ToggleLike adds or removes callerID from the liker set.
	// Not retry-safe: a repeated call reverts the previous one.
	ToggleLike(ctx context.Context, callerID, postID string) (*PostView, error)
}

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts a new post
	Create(ctx context.Context, post *Post) error

	// GetByID retrieves a post with its liker set. Returns ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*Post, error)

	// List returns posts matching filter ordered by created_at descending
	List(ctx context.Context, filter ListFilter) ([]*Post, error)

	// Delete removes the post, its likes and its comments in one transaction.
	// Returns ErrNotFoundOrUnauthorized if no post with id is authored by authorID.
	Delete(ctx context.Context, id, authorID string) error

	// ToggleLike flips userID's membership in the liker set while holding the
	// post row, keeping the like count equal to the set size.
	// Returns ErrNotFound when the post is absent.
	ToggleLike(ctx context.Context, postID, userID string) (*Post, error)
}
