package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookreview-backend/internal/domains/user"
	"bookreview-backend/internal/shared/apperror"
)

// ========================================
// MOCKS
// ========================================

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *mockCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockCache) Increment(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return m.Called(ctx, key, ttl).Error(0)
}

func (m *mockCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(time.Duration), args.Error(1)
}

type stubIssuer struct {
	err error
}

func (s stubIssuer) GenerateAccessToken(userID uuid.UUID, username string) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return "token-" + username, time.Now().Add(time.Hour), nil
}

// ========================================
// HELPERS
// ========================================

var testOpts = Options{
	BcryptCost:      bcrypt.MinCost,
	MaxFailedLogins: 3,
	LockoutWindow:   15 * time.Minute,
}

func newTestService(repo *mockRepo, c *mockCache) user.Service {
	return NewUserService(repo, c, stubIssuer{}, testOpts)
}

func existingUser(t *testing.T, password string) *user.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &user.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}
}

// setCounter làm mock Get ghi attempts vào dest
func setCounter(attempts int64) func(mock.Arguments) {
	return func(args mock.Arguments) {
		*(args.Get(2).(*int64)) = attempts
	}
}

// ========================================
// REGISTER
// ========================================

func TestRegister_Success(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
		return u.Username == "alice" &&
			u.Email == "alice@example.com" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password1")) == nil &&
			u.ID.Version() == 7
	})).Return(nil)

	dto, err := newTestService(repo, new(mockCache)).Register(context.Background(), user.RegisterRequest{
		Username: "alice",
		Password: "password1",
		Email:    "Alice@Example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", dto.Username)
	assert.Equal(t, "alice@example.com", dto.Email)
	repo.AssertExpectations(t)
}

func TestRegister_ValidationError(t *testing.T) {
	repo := new(mockRepo)

	_, err := newTestService(repo, new(mockCache)).Register(context.Background(), user.RegisterRequest{
		Username: "alice",
		Password: "short",
		Email:    "bad",
	})

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Details, "password")
	assert.Contains(t, appErr.Details, "email")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_Conflict(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(user.ErrUsernameAlreadyExists)

	_, err := newTestService(repo, new(mockCache)).Register(context.Background(), user.RegisterRequest{
		Username: "alice",
		Password: "password1",
		Email:    "alice@example.com",
	})

	assert.ErrorIs(t, err, user.ErrUsernameAlreadyExists)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

// ========================================
// LOGIN
// ========================================

func TestLogin_SuccessByUsername(t *testing.T) {
	u := existingUser(t, "password1")
	repo := new(mockRepo)
	repo.On("FindByUsername", mock.Anything, "alice").Return(u, nil)

	c := new(mockCache)
	c.On("Get", mock.Anything, "login_failed:username:alice", mock.Anything).Return(false, nil)
	c.On("Delete", mock.Anything, []string{"login_failed:username:alice"}).Return(nil)

	res, err := newTestService(repo, c).Login(context.Background(), user.LoginRequest{
		Username: "alice",
		Email:    "someone-else@example.com",
		Password: "password1",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-alice", res.Token)
	repo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	c.AssertExpectations(t)
}

func TestLogin_PaddedUsernameMatchesRegisteredUser(t *testing.T) {
	var stored *user.User
	repo := new(mockRepo)
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*user.User)
	}).Return(nil)

	c := new(mockCache)
	c.On("Get", mock.Anything, "login_failed:username:alice", mock.Anything).Return(false, nil)
	c.On("Delete", mock.Anything, []string{"login_failed:username:alice"}).Return(nil)

	svc := newTestService(repo, c)
	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "  alice ",
		Password: "password1",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "alice", stored.Username)

	repo.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)

	res, err := svc.Login(context.Background(), user.LoginRequest{
		Username: "  alice ",
		Password: "password1",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-alice", res.Token)
	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestLogin_SuccessByEmail(t *testing.T) {
	u := existingUser(t, "password1")
	repo := new(mockRepo)
	repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(u, nil)

	c := new(mockCache)
	c.On("Get", mock.Anything, "login_failed:email:alice@example.com", mock.Anything).Return(false, nil)
	c.On("Delete", mock.Anything, mock.Anything).Return(nil)

	res, err := newTestService(repo, c).Login(context.Background(), user.LoginRequest{
		Email:    "ALICE@example.com",
		Password: "password1",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-alice", res.Token)
}

func TestLogin_WrongPasswordCountsFailure(t *testing.T) {
	u := existingUser(t, "password1")
	repo := new(mockRepo)
	repo.On("FindByUsername", mock.Anything, "alice").Return(u, nil)

	key := "login_failed:username:alice"
	c := new(mockCache)
	c.On("Get", mock.Anything, key, mock.Anything).Return(false, nil)
	c.On("Increment", mock.Anything, key).Return(int64(1), nil)
	c.On("Expire", mock.Anything, key, 15*time.Minute).Return(nil)

	_, err := newTestService(repo, c).Login(context.Background(), user.LoginRequest{
		Username: "alice",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	assert.Equal(t, apperror.KindAuth, apperror.KindOf(err))
	c.AssertExpectations(t)
}

func TestLogin_UnknownUserIsInvalidCredentials(t *testing.T) {
	repo := new(mockRepo)
	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, user.ErrUserNotFound)

	c := new(mockCache)
	c.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	c.On("Increment", mock.Anything, mock.Anything).Return(int64(2), nil)

	_, err := newTestService(repo, c).Login(context.Background(), user.LoginRequest{
		Username: "ghost",
		Password: "password1",
	})

	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, user.ErrUserNotFound)
	c.AssertNotCalled(t, "Expire", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_LockedOut(t *testing.T) {
	repo := new(mockRepo)

	c := new(mockCache)
	c.On("Get", mock.Anything, "login_failed:username:alice", mock.Anything).
		Run(setCounter(3)).
		Return(true, nil)

	_, err := newTestService(repo, c).Login(context.Background(), user.LoginRequest{
		Username: "alice",
		Password: "password1",
	})

	assert.ErrorIs(t, err, user.ErrTooManyAttempts)
	assert.Equal(t, apperror.KindTooManyRequests, apperror.KindOf(err))
	repo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestLogin_BelowThresholdStillAllowed(t *testing.T) {
	u := existingUser(t, "password1")
	repo := new(mockRepo)
	repo.On("FindByUsername", mock.Anything, "alice").Return(u, nil)

	c := new(mockCache)
	c.On("Get", mock.Anything, mock.Anything, mock.Anything).Run(setCounter(2)).Return(true, nil)
	c.On("Delete", mock.Anything, mock.Anything).Return(nil)

	_, err := newTestService(repo, c).Login(context.Background(), user.LoginRequest{
		Username: "alice",
		Password: "password1",
	})

	assert.NoError(t, err)
}

func TestLogin_CacheDownDoesNotBlock(t *testing.T) {
	u := existingUser(t, "password1")
	repo := new(mockRepo)
	repo.On("FindByUsername", mock.Anything, "alice").Return(u, nil)

	cacheErr := errors.New("redis: connection refused")
	c := new(mockCache)
	c.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, cacheErr)
	c.On("Delete", mock.Anything, mock.Anything).Return(cacheErr)

	res, err := newTestService(repo, c).Login(context.Background(), user.LoginRequest{
		Username: "alice",
		Password: "password1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestLogin_TokenFailureIsInternal(t *testing.T) {
	u := existingUser(t, "password1")
	repo := new(mockRepo)
	repo.On("FindByUsername", mock.Anything, "alice").Return(u, nil)

	svc := NewUserService(repo, new(mockCache), stubIssuer{err: errors.New("sign failed")}, Options{BcryptCost: bcrypt.MinCost})

	_, err := svc.Login(context.Background(), user.LoginRequest{Username: "alice", Password: "password1"})

	require.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}

func TestLogin_ValidationError(t *testing.T) {
	_, err := newTestService(new(mockRepo), new(mockCache)).Login(context.Background(), user.LoginRequest{
		Password: "password1",
	})

	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
