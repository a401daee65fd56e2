package users

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultAuthorCacheSize bounds the number of cached author summaries
const DefaultAuthorCacheSize = 1000

// AuthorResolver turns user IDs into public author summaries.
// Users are never mutated after signup, so summaries are cached without expiry.
type AuthorResolver struct {
	repo  UserRepository
	cache *lru.Cache[string, *AuthorView]
}

// NewAuthorResolver creates a resolver backed by a bounded LRU cache
func NewAuthorResolver(repo UserRepository, cacheSize int) (*AuthorResolver, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultAuthorCacheSize
	}
	cache, err := lru.New[string, *AuthorView](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create author cache: %w", err)
	}
	return &AuthorResolver{repo: repo, cache: cache}, nil
}

// Resolve returns a summary for every requested ID.
// Any ID that does not resolve to a user yields a DanglingAuthorError.
func (r *AuthorResolver) Resolve(ctx context.Context, ids []string) (map[string]*AuthorView, error) {
	result := make(map[string]*AuthorView, len(ids))
	var missing []string
	seen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if view, ok := r.cache.Get(id); ok {
			result[id] = view
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 {
		return result, nil
	}

	found, err := r.repo.GetByIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}

	for _, id := range missing {
		user, ok := found[id]
		if !ok {
			return nil, &DanglingAuthorError{UserID: id}
		}
		view := user.ToAuthorView()
		r.cache.Add(id, view)
		result[id] = view
	}

	return result, nil
}
