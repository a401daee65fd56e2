package comments

import (
	"context"
	"errors"
	"testing"

	"Inkwell/internal/core/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockCommentRepo is a mock implementation of Repository
type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *mockCommentRepo) ListByPostIDs(ctx context.Context, postIDs []string) (map[string][]*Comment, error) {
	args := m.Called(ctx, postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]*Comment), args.Error(1)
}

// mockAuthorResolver is a mock implementation of AuthorResolver
type mockAuthorResolver struct {
	mock.Mock
}

func (m *mockAuthorResolver) Resolve(ctx context.Context, ids []string) (map[string]*users.AuthorView, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*users.AuthorView), args.Error(1)
}

func TestAddComment_Success(t *testing.T) {
	repo := new(mockCommentRepo)
	authors := new(mockAuthorResolver)
	service := NewCommentService(repo, authors, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(c *Comment) bool {
		return c.PostID == "post-1" && c.AuthorID == "u-1" && c.Content == "Nice!" && c.ID != "" && !c.CreatedAt.IsZero()
	})).Return(nil)
	authors.On("Resolve", ctx, []string{"u-1"}).Return(map[string]*users.AuthorView{
		"u-1": {ID: "u-1", Handle: "alice", DisplayName: "Alice"},
	}, nil)

	view, err := service.AddComment(ctx, "u-1", "post-1", CreateCommentRequest{Content: "Nice!"})
	require.NoError(t, err)
	assert.Equal(t, "Nice!", view.Content)
	assert.Equal(t, "post-1", view.Post)
	require.NotNil(t, view.Author)
	assert.Equal(t, "alice", view.Author.Handle)

	repo.AssertExpectations(t)
	authors.AssertExpectations(t)
}

func TestAddComment_EmptyContent(t *testing.T) {
	repo := new(mockCommentRepo)
	service := NewCommentService(repo, new(mockAuthorResolver), nil)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := service.AddComment(context.Background(), "u-1", "post-1", CreateCommentRequest{Content: content})
		assert.ErrorIs(t, err, ErrContentEmpty)
		assert.True(t, IsValidationError(err))
	}

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddComment_PostNotFound(t *testing.T) {
	repo := new(mockCommentRepo)
	authors := new(mockAuthorResolver)
	service := NewCommentService(repo, authors, nil)
	ctx := context.Background()

	authors.On("Resolve", ctx, []string{"u-1"}).Return(map[string]*users.AuthorView{
		"u-1": {ID: "u-1", Handle: "alice", DisplayName: "Alice"},
	}, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*comments.Comment")).Return(ErrPostNotFound)

	view, err := service.AddComment(ctx, "u-1", "missing", CreateCommentRequest{Content: "hi"})
	assert.Nil(t, view)
	assert.True(t, IsNotFound(err))
}

func TestAddComment_RepositoryFailureIsWrapped(t *testing.T) {
	repo := new(mockCommentRepo)
	authors := new(mockAuthorResolver)
	service := NewCommentService(repo, authors, nil)
	ctx := context.Background()

	authors.On("Resolve", ctx, []string{"u-1"}).Return(map[string]*users.AuthorView{
		"u-1": {ID: "u-1", Handle: "alice", DisplayName: "Alice"},
	}, nil)
	dbErr := errors.New("deadlock detected")
	repo.On("Create", ctx, mock.AnythingOfType("*comments.Comment")).Return(dbErr)

	_, err := service.AddComment(ctx, "u-1", "post-1", CreateCommentRequest{Content: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, IsNotFound(err))
}

func TestAddComment_UnknownAuthorWritesNothing(t *testing.T) {
	repo := new(mockCommentRepo)
	authors := new(mockAuthorResolver)
	service := NewCommentService(repo, authors, nil)
	ctx := context.Background()

	authors.On("Resolve", ctx, []string{"ghost"}).Return(nil, &users.DanglingAuthorError{UserID: "ghost"})

	view, err := service.AddComment(ctx, "ghost", "post-1", CreateCommentRequest{Content: "hi"})
	assert.Nil(t, view)
	assert.ErrorIs(t, err, users.ErrUnknownAuthor)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddComment_ResolverFailureWritesNothing(t *testing.T) {
	repo := new(mockCommentRepo)
	authors := new(mockAuthorResolver)
	service := NewCommentService(repo, authors, nil)
	ctx := context.Background()

	lookupErr := errors.New("connection reset")
	authors.On("Resolve", ctx, []string{"u-1"}).Return(nil, lookupErr)

	_, err := service.AddComment(ctx, "u-1", "post-1", CreateCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, lookupErr)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddComment_RequiresAuthor(t *testing.T) {
	service := NewCommentService(new(mockCommentRepo), new(mockAuthorResolver), nil)

	_, err := service.AddComment(context.Background(), "", "post-1", CreateCommentRequest{Content: "hi"})
	assert.Error(t, err)
}
