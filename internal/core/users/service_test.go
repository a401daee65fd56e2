package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *User) (*User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(context.Context, *User) *User); ok {
		return fn(ctx, user), args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByHandle(ctx context.Context, handle string) (*User, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*User), args.Error(1)
}

// stubIssuer returns a predictable token per user
type stubIssuer struct {
	err error
}

func (s *stubIssuer) Issue(userID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-for-" + userID, nil
}

func newTestService(repo UserRepository) UserService {
	return NewUserService(repo, &stubIssuer{}, bcrypt.MinCost)
}

func hashedUser(t *testing.T, id, handle, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &User{ID: id, Handle: handle, DisplayName: "Display " + handle, PasswordHash: string(hash)}
}

func TestRegister_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
		return u.Handle == "alice" && u.DisplayName == "Alice" && u.ID != "" &&
			u.PasswordHash != "" && u.PasswordHash != "secretA"
	})).Return(func(_ context.Context, u *User) *User { return u }, nil)

	resp, err := service.Register(ctx, RegisterRequest{Handle: " alice ", Password: "secretA", DisplayName: "Alice"})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Handle)
	assert.Equal(t, "Alice", resp.User.DisplayName)
	assert.Equal(t, "token-for-"+resp.User.ID, resp.Token)
	assert.False(t, resp.User.CreatedAt.IsZero())

	mockRepo.AssertExpectations(t)
}

func TestRegister_StoresBcryptHash(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	var stored *User
	mockRepo.On("Create", ctx, mock.AnythingOfType("*users.User")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*User) }).
		Return(func(_ context.Context, u *User) *User { return u }, nil)

	_, err := service.Register(ctx, RegisterRequest{Handle: "alice", Password: "secretA", DisplayName: "Alice"})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secretA")))
	assert.True(t, service.VerifySecret(stored, "secretA"))
	assert.False(t, service.VerifySecret(stored, "secretB"))
}

func TestRegister_DuplicateHandle(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*users.User")).Return(nil, ErrHandleAlreadyTaken)

	resp, err := service.Register(ctx, RegisterRequest{Handle: "alice", Password: "secretA", DisplayName: "Alice"})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrHandleAlreadyTaken)
}

func TestRegister_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		req   RegisterRequest
		field string
	}{
		{"missing handle", RegisterRequest{Password: "p", DisplayName: "n"}, "username"},
		{"blank handle", RegisterRequest{Handle: "   ", Password: "p", DisplayName: "n"}, "username"},
		{"missing password", RegisterRequest{Handle: "h", DisplayName: "n"}, "password"},
		{"missing name", RegisterRequest{Handle: "h", Password: "p"}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			service := newTestService(mockRepo)

			_, err := service.Register(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))

			var valErr *ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.field, valErr.Field)

			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestRegister_TokenFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, &stubIssuer{err: errors.New("boom")}, bcrypt.MinCost)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*users.User")).
		Return(func(_ context.Context, u *User) *User { return u }, nil)

	_, err := service.Register(ctx, RegisterRequest{Handle: "alice", Password: "secretA", DisplayName: "Alice"})
	assert.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	user := hashedUser(t, "u-1", "alice", "secretA")
	mockRepo.On("GetByHandle", ctx, "alice").Return(user, nil)

	resp, err := service.Login(ctx, LoginRequest{Handle: "alice", Password: "secretA"})
	require.NoError(t, err)
	assert.Equal(t, "token-for-u-1", resp.Token)
	assert.Equal(t, "u-1", resp.User.ID)
}

func TestLogin_WrongPasswordAndUnknownHandleAreIndistinguishable(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByHandle", ctx, "alice").Return(hashedUser(t, "u-1", "alice", "secretA"), nil)
	mockRepo.On("GetByHandle", ctx, "nobody").Return(nil, ErrUserNotFound)

	_, wrongPassword := service.Login(ctx, LoginRequest{Handle: "alice", Password: "wrong"})
	_, unknownHandle := service.Login(ctx, LoginRequest{Handle: "nobody", Password: "wrong"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownHandle, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownHandle.Error())
}

func TestLogin_RepositoryError(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByHandle", ctx, "alice").Return(nil, errors.New("connection refused"))

	_, err := service.Login(ctx, LoginRequest{Handle: "alice", Password: "secretA"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_MissingFields(t *testing.T) {
	service := newTestService(new(MockUserRepository))

	_, err := service.Login(context.Background(), LoginRequest{Password: "x"})
	assert.True(t, IsValidationError(err))

	_, err = service.Login(context.Background(), LoginRequest{Handle: "alice"})
	assert.True(t, IsValidationError(err))
}

func TestFindByHandle_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := newTestService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByHandle", ctx, "ghost").Return(nil, ErrUserNotFound)

	user, err := service.FindByHandle(ctx, "ghost")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestVerifySecret_NeverPanics(t *testing.T) {
	service := newTestService(new(MockUserRepository))

	assert.False(t, service.VerifySecret(nil, "x"))
	assert.False(t, service.VerifySecret(&User{}, "x"))
	assert.False(t, service.VerifySecret(&User{PasswordHash: "not-a-bcrypt-hash"}, "x"))
}

func TestPublicProjections_OmitHash(t *testing.T) {
	user := &User{ID: "u-1", Handle: "alice", DisplayName: "Alice", PasswordHash: "$2a$secret"}

	pub := user.ToPublic()
	assert.Equal(t, "alice", pub.Handle)

	author := user.ToAuthorView()
	assert.Equal(t, &AuthorView{ID: "u-1", Handle: "alice", DisplayName: "Alice"}, author)
}
