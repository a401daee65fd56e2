package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"Inkwell/internal/core/users"

	"github.com/google/uuid"
)

type postService struct {
	repo     Repository
	hydrator *hydrator
	logger   *slog.Logger
}

// NewPostService creates a new post service.
// commentLister and authors are used only for building views.
func NewPostService(repo Repository, commentLister CommentLister, authors AuthorResolver, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo: repo,
		hydrator: &hydrator{
			comments: commentLister,
			authors:  authors,
		},
		logger: logger,
	}
}

// CreatePost creates a new post
func (s *postService) CreatePost(ctx context.Context, authorID string, req CreatePostRequest) (*PostView, error) {
	if strings.TrimSpace(authorID) == "" {
		return nil, fmt.Errorf("author ID is required")
	}
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, authorID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &Post{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		AuthorID:  authorID,
		Likes:     0,
		LikedBy:   []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		if errors.Is(err, users.ErrUnknownAuthor) {
			return nil, err
		}
		s.logger.Error("failed to create post", "error", err, "author", authorID)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created", "post_id", post.ID, "author", authorID)

	return s.hydrator.hydrateOne(ctx, post, authorID)
}

// GetPost retrieves a single hydrated post
func (s *postService) GetPost(ctx context.Context, postID, viewerID string) (*PostView, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, ErrNotFound
	}

	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	return s.hydrator.hydrateOne(ctx, post, viewerID)
}

// ListPosts lists hydrated posts newest first
func (s *postService) ListPosts(ctx context.Context, filter ListFilter, viewerID string) ([]*PostView, error) {
	raw, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return s.hydrator.hydrate(ctx, raw, viewerID)
}

// DeletePost deletes a post owned by callerID together with its comments
func (s *postService) DeletePost(ctx context.Context, callerID, postID string) error {
	if strings.TrimSpace(callerID) == "" || strings.TrimSpace(postID) == "" {
		return ErrNotFoundOrUnauthorized
	}

	if err := s.repo.Delete(ctx, postID, callerID); err != nil {
		if errors.Is(err, ErrNotFoundOrUnauthorized) {
			return err
		}
		s.logger.Error("failed to delete post", "error", err, "post_id", postID, "caller", callerID)
		return fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("post deleted", "post_id", postID, "caller", callerID)
	return nil
}

// ToggleLike flips the caller's like on a post
func (s *postService) ToggleLike(ctx context.Context, callerID, postID string) (*PostView, error) {
	if strings.TrimSpace(callerID) == "" {
		return nil, fmt.Errorf("caller ID is required")
	}
	if strings.TrimSpace(postID) == "" {
		return nil, ErrNotFound
	}

	post, err := s.repo.ToggleLike(ctx, postID, callerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, users.ErrUnknownAuthor) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	s.logger.Debug("like toggled",
		"post_id", postID,
		"caller", callerID,
		"liked", post.HasLiked(callerID),
		"likes", post.Likes)

	return s.hydrator.hydrateOne(ctx, post, callerID)
}

// requireUser fails with users.ErrUnknownAuthor when userID has no record.
// Runs before any write so a failed lookup leaves nothing stored.
func (s *postService) requireUser(ctx context.Context, userID string) error {
	if _, err := s.hydrator.authors.Resolve(ctx, []string{userID}); err != nil {
		if users.IsDanglingAuthor(err) {
			return users.ErrUnknownAuthor
		}
		return fmt.Errorf("failed to resolve author: %w", err)
	}
	return nil
}

// validateCreateRequest checks presence only; content is stored as given
func (s *postService) validateCreateRequest(req CreatePostRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return NewValidationError("title", "required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return NewValidationError("content", "required")
	}
	return nil
}
