// Package memory is an in-process storage backend. Every operation runs under
// one mutex, so each repository call is applied as a single unit. User
// references are checked the way the Postgres foreign keys check them.
package memory

import (
	"context"
	"sort"
	"sync"

	"Inkwell/internal/core/comments"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/users"
)

type postRecord struct {
	post *posts.Post
	seq  int64
}

// Store holds users, posts and comments in memory
type Store struct {
	users    map[string]*users.User
	handles  map[string]string
	posts    map[string]*postRecord
	comments map[string][]*comments.Comment
	mu       sync.RWMutex
	seq      int64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:    make(map[string]*users.User),
		handles:  make(map[string]string),
		posts:    make(map[string]*postRecord),
		comments: make(map[string][]*comments.Comment),
	}
}

// Users returns the store as a users.UserRepository
func (s *Store) Users() users.UserRepository { return &userRepo{s: s} }

// Posts returns the store as a posts.Repository
func (s *Store) Posts() posts.Repository { return &postRepo{s: s} }

// Comments returns the store as a comments.Repository
func (s *Store) Comments() comments.Repository { return &commentRepo{s: s} }

func copyUser(u *users.User) *users.User {
	c := *u
	return &c
}

func copyPost(p *posts.Post) *posts.Post {
	c := *p
	c.LikedBy = append([]string{}, p.LikedBy...)
	return &c
}

func copyComment(cm *comments.Comment) *comments.Comment {
	c := *cm
	return &c
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.handles[user.Handle]; taken {
		return nil, users.ErrHandleAlreadyTaken
	}
	stored := copyUser(user)
	r.s.users[user.ID] = stored
	r.s.handles[user.Handle] = user.ID
	return copyUser(stored), nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (r *userRepo) GetByHandle(ctx context.Context, handle string) (*users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.handles[handle]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return copyUser(r.s.users[id]), nil
}

func (r *userRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make(map[string]*users.User, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			result[id] = copyUser(u)
		}
	}
	return result, nil
}

type postRepo struct{ s *Store }

func (r *postRepo) Create(ctx context.Context, post *posts.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[post.AuthorID]; !ok {
		return users.ErrUnknownAuthor
	}

	r.s.seq++
	stored := copyPost(post)
	stored.Likes = len(stored.LikedBy)
	r.s.posts[post.ID] = &postRecord{post: stored, seq: r.s.seq}
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.posts[id]
	if !ok {
		return nil, posts.ErrNotFound
	}
	return copyPost(rec.post), nil
}

func (r *postRepo) List(ctx context.Context, filter posts.ListFilter) ([]*posts.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	records := make([]*postRecord, 0, len(r.s.posts))
	for _, rec := range r.s.posts {
		if filter.AuthorID != "" && rec.post.AuthorID != filter.AuthorID {
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.post.CreatedAt.Equal(b.post.CreatedAt) {
			return a.post.CreatedAt.After(b.post.CreatedAt)
		}
		return a.seq > b.seq
	})

	result := make([]*posts.Post, 0, len(records))
	for _, rec := range records {
		result = append(result, copyPost(rec.post))
	}
	return result, nil
}

func (r *postRepo) Delete(ctx context.Context, id, authorID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.posts[id]
	if !ok || rec.post.AuthorID != authorID {
		return posts.ErrNotFoundOrUnauthorized
	}

	delete(r.s.comments, id)
	delete(r.s.posts, id)
	return nil
}

func (r *postRepo) ToggleLike(ctx context.Context, postID, userID string) (*posts.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.posts[postID]
	if !ok {
		return nil, posts.ErrNotFound
	}
	if _, ok := r.s.users[userID]; !ok {
		return nil, users.ErrUnknownAuthor
	}

	p := rec.post
	idx := -1
	for i, id := range p.LikedBy {
		if id == userID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		p.LikedBy = append(p.LikedBy[:idx], p.LikedBy[idx+1:]...)
	} else {
		p.LikedBy = append(p.LikedBy, userID)
	}
	p.Likes = len(p.LikedBy)

	return copyPost(p), nil
}

type commentRepo struct{ s *Store }

func (r *commentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.posts[comment.PostID]
	if !ok {
		return comments.ErrPostNotFound
	}
	if _, ok := r.s.users[comment.AuthorID]; !ok {
		return users.ErrUnknownAuthor
	}

	r.s.comments[comment.PostID] = append(r.s.comments[comment.PostID], copyComment(comment))
	if comment.CreatedAt.After(rec.post.UpdatedAt) {
		rec.post.UpdatedAt = comment.CreatedAt
	}
	return nil
}

func (r *commentRepo) ListByPostIDs(ctx context.Context, postIDs []string) (map[string][]*comments.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make(map[string][]*comments.Comment, len(postIDs))
	for _, id := range postIDs {
		thread := r.s.comments[id]
		if len(thread) == 0 {
			continue
		}
		copied := make([]*comments.Comment, 0, len(thread))
		for _, c := range thread {
			copied = append(copied, copyComment(c))
		}
		result[id] = copied
	}
	return result, nil
}
