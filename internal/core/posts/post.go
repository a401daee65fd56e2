package posts

import (
	"time"

	"Inkwell/internal/core/comments"
	"Inkwell/internal/core/users"
)

// Post represents a stored post.
// Likes always equals len(LikedBy); repositories maintain both together.
type Post struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	AuthorID  string    `json:"author" db:"author_id"`
	LikedBy   []string  `json:"likedBy" db:"-"`
	Likes     int       `json:"likes" db:"like_count"`
}

// CreatePostRequest represents input for creating a new post
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListFilter selects which posts to list. An empty AuthorID lists everything.
type ListFilter struct {
	AuthorID string
}

// PostView represents the full view of a post with all metadata.
// Built only by the hydrator in views.go.
type PostView struct {
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
	Author    *users.AuthorView       `json:"author"`
	Viewer    *ViewerState            `json:"viewer,omitempty"`
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Content   string                  `json:"content"`
	LikedBy   []string                `json:"likedBy"`
	Comments  []*comments.CommentView `json:"comments"`
	Likes     int                     `json:"likes"`
}

// ViewerState represents the viewer's relationship with the post
type ViewerState struct {
	Liked bool `json:"liked"`
}

// DeletePostResponse is returned after a successful delete
type DeletePostResponse struct {
	Message string `json:"message"`
}

// HasLiked reports whether userID is in the liker set
func (p *Post) HasLiked(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}
