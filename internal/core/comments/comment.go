package comments

import (
	"time"

	"Inkwell/internal/core/users"
)

// Comment is a text reply attached to exactly one post.
// Comments are never edited; they disappear only with their parent post.
type Comment struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"post" db:"post_id"`
	AuthorID  string    `json:"author" db:"author_id"`
	Content   string    `json:"content" db:"content"`
}

// CommentView is a comment enriched with its author's public summary
type CommentView struct {
	CreatedAt time.Time         `json:"createdAt"`
	Author    *users.AuthorView `json:"author"`
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Post      string            `json:"post"`
}

// CreateCommentRequest contains parameters for creating a comment
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// ToView attaches an author summary. The author must be non-nil.
func (c *Comment) ToView(author *users.AuthorView) *CommentView {
	return &CommentView{
		ID:        c.ID,
		Content:   c.Content,
		Author:    author,
		Post:      c.PostID,
		CreatedAt: c.CreatedAt,
	}
}
