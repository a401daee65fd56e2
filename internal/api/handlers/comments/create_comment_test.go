package comments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Inkwell/internal/api/middleware"
	"Inkwell/internal/core/comments"
	"Inkwell/internal/core/users"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCommentService struct {
	addFunc func(ctx context.Context, authorID, postID string, req comments.CreateCommentRequest) (*comments.CommentView, error)
}

func (m *mockCommentService) AddComment(ctx context.Context, authorID, postID string, req comments.CreateCommentRequest) (*comments.CommentView, error) {
	return m.addFunc(ctx, authorID, postID, req)
}

func newCommentRequest(body, postID, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/posts/"+postID+"/comments", strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", postID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if userID != "" {
		ctx = middleware.SetTestUserID(ctx, userID)
	}
	return req.WithContext(ctx)
}

func TestCreateCommentHandler_Success(t *testing.T) {
	service := &mockCommentService{
		addFunc: func(ctx context.Context, authorID, postID string, req comments.CreateCommentRequest) (*comments.CommentView, error) {
			assert.Equal(t, "u-1", authorID)
			assert.Equal(t, "p-1", postID)
			assert.Equal(t, "nice post", req.Content)
			return &comments.CommentView{
				ID:      "c-1",
				Post:    postID,
				Content: req.Content,
				Author:  &users.AuthorView{ID: authorID, Handle: "alice", DisplayName: "Alice"},
			}, nil
		},
	}
	handler := NewCreateCommentHandler(service)

	w := httptest.NewRecorder()
	handler.HandleCreate(w, newCommentRequest(`{"content":"nice post"}`, "p-1", "u-1"))

	assert.Equal(t, http.StatusCreated, w.Code)
	var view map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "c-1", view["id"])
	assert.Equal(t, "p-1", view["post"])
	author := view["author"].(map[string]interface{})
	assert.Equal(t, "alice", author["username"])
	assert.NotContains(t, w.Body.String(), "password")
}

func TestCreateCommentHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userID     string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{name: "unauthenticated", body: `{"content":"x"}`, wantStatus: http.StatusUnauthorized, wantError: "AuthenticationRequired"},
		{name: "malformed body", body: `{`, userID: "u-1", wantStatus: http.StatusBadRequest, wantError: "InvalidRequest"},
		{name: "empty content", body: `{"content":""}`, userID: "u-1", serviceErr: comments.ErrContentEmpty, wantStatus: http.StatusBadRequest, wantError: "InvalidRequest"},
		{name: "missing post", body: `{"content":"x"}`, userID: "u-1", serviceErr: comments.ErrPostNotFound, wantStatus: http.StatusNotFound, wantError: "PostNotFound"},
		{name: "token for deleted account", body: `{"content":"x"}`, userID: "u-ghost", serviceErr: users.ErrUnknownAuthor, wantStatus: http.StatusUnauthorized, wantError: "AuthenticationRequired"},
		{name: "internal", body: `{"content":"x"}`, userID: "u-1", serviceErr: assert.AnError, wantStatus: http.StatusInternalServerError, wantError: "InternalServerError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockCommentService{
				addFunc: func(ctx context.Context, authorID, postID string, req comments.CreateCommentRequest) (*comments.CommentView, error) {
					return nil, tt.serviceErr
				},
			}
			handler := NewCreateCommentHandler(service)

			w := httptest.NewRecorder()
			handler.HandleCreate(w, newCommentRequest(tt.body, "p-1", tt.userID))

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp["error"])
		})
	}
}

func TestCreateCommentHandler_BodyTooLarge(t *testing.T) {
	handler := NewCreateCommentHandler(&mockCommentService{})

	body := `{"content":"` + strings.Repeat("a", 200*1024) + `"}`
	w := httptest.NewRecorder()
	handler.HandleCreate(w, newCommentRequest(body, "p-1", "u-1"))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
