package posts

import (
	"context"
	"fmt"

	"Inkwell/internal/core/comments"
	"Inkwell/internal/core/users"
)

// AuthorResolver resolves user IDs to public author summaries
type AuthorResolver interface {
	Resolve(ctx context.Context, ids []string) (map[string]*users.AuthorView, error)
}

// CommentLister loads comment threads for a batch of posts
type CommentLister interface {
	ListByPostIDs(ctx context.Context, postIDs []string) (map[string][]*comments.Comment, error)
}

// hydrator is the single place raw posts become PostViews.
// Every author reference is resolved through AuthorResolver, which only ever
// emits users.AuthorView, so no view can carry a password hash.
type hydrator struct {
	comments CommentLister
	authors  AuthorResolver
}

// hydrate builds views in the order given.
// 1. Load comments for all posts in one query
// 2. Resolve post and comment authors in one batch
// 3. Project
func (h *hydrator) hydrate(ctx context.Context, raw []*Post, viewerID string) ([]*PostView, error) {
	if len(raw) == 0 {
		return []*PostView{}, nil
	}

	postIDs := make([]string, 0, len(raw))
	for _, p := range raw {
		postIDs = append(postIDs, p.ID)
	}

	threads, err := h.comments.ListByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	authorIDs := make([]string, 0, len(raw))
	for _, p := range raw {
		authorIDs = append(authorIDs, p.AuthorID)
		for _, c := range threads[p.ID] {
			authorIDs = append(authorIDs, c.AuthorID)
		}
	}

	authors, err := h.authors.Resolve(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*PostView, 0, len(raw))
	for _, p := range raw {
		thread := threads[p.ID]
		commentViews := make([]*comments.CommentView, 0, len(thread))
		for _, c := range thread {
			commentViews = append(commentViews, c.ToView(authors[c.AuthorID]))
		}

		likedBy := p.LikedBy
		if likedBy == nil {
			likedBy = []string{}
		}

		view := &PostView{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			Author:    authors[p.AuthorID],
			Likes:     p.Likes,
			LikedBy:   likedBy,
			Comments:  commentViews,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
		if viewerID != "" {
			view.Viewer = &ViewerState{Liked: p.HasLiked(viewerID)}
		}
		views = append(views, view)
	}

	return views, nil
}

func (h *hydrator) hydrateOne(ctx context.Context, p *Post, viewerID string) (*PostView, error) {
	views, err := h.hydrate(ctx, []*Post{p}, viewerID)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}
