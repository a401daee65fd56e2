package comments

import "context"

// Repository defines the data access interface for comments
type Repository interface {
	// Create inserts a comment and appends it to its post's thread as one unit.
	// The post row is locked for the duration and its updated_at is bumped.
	// Returns ErrPostNotFound if the post does not exist.
	Create(ctx context.Context, comment *Comment) error

	// ListByPostIDs retrieves the comments of several posts in one query.
	// Each slice is in append order. Posts without comments are absent from the map.
	ListByPostIDs(ctx context.Context, postIDs []string) (map[string][]*Comment, error)
}

// Service defines the business logic interface for comment operations
type Service interface {
	// AddComment creates a comment owned by authorID on postID.
	// Not idempotent: every call appends a new comment.
	AddComment(ctx context.Context, authorID, postID string, req CreateCommentRequest) (*CommentView, error)
}
