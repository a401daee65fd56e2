package comments

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

// AuthorResolver resolves user IDs to public author summaries
type AuthorResolver interface {
	Resolve(ctx context.Context, ids []string) (map[string]*users.AuthorView, error)
}

// commentService implements the Service interface
type commentService struct {
	commentRepo Repository
	authors     AuthorResolver
	logger      *slog.Logger
}

// NewCommentService creates a new comment service instance
func NewCommentService(commentRepo Repository, authors AuthorResolver, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		commentRepo: commentRepo,
		authors:     authors,
		logger:      logger,
	}
}

// AddComment creates a new comment on a post
func (s *commentService) AddComment(ctx context.Context, authorID, postID string, req CreateCommentRequest) (*CommentView, error) {
	if strings.TrimSpace(authorID) == "" {
		return nil, fmt.Errorf("author ID is required")
	}
	if strings.TrimSpace(postID) == "" {
		return nil, ErrPostNotFound
	}

	// Presence check only; the body is stored as given
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrContentEmpty
	}

	// Resolve before writing so a failed lookup never leaves a stored comment behind
	authors, err := s.authors.Resolve(ctx, []string{authorID})
	if err != nil {
		if users.IsDanglingAuthor(err) {
			return nil, users.ErrUnknownAuthor
		}
		return nil, fmt.Errorf("failed to resolve comment author: %w", err)
	}

	comment := &Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		if IsNotFound(err) || errors.Is(err, users.ErrUnknownAuthor) {
			return nil, err
		}
		s.logger.Error("failed to create comment",
			"error", err,
			"commenter", authorID,
			"post", postID)
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Info("comment created",
		"commenter", authorID,
		"comment_id", comment.ID,
		"post", postID)

	return comment.ToView(authors[authorID]), nil
}
