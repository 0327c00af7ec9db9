package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bookreview-backend/internal/domains/user"
	"bookreview-backend/internal/shared/apperror"
	"bookreview-backend/pkg/cache"
	"bookreview-backend/pkg/logger"
)

const failedLoginKeyPrefix = "login_failed:"

// TokenIssuer ký access token cho user đã xác thực (jwt.Manager)
type TokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, username string) (string, time.Time, error)
}

// Options điều khiển hashing và lockout sau nhiều lần login sai
type Options struct {
	BcryptCost      int
	MaxFailedLogins int // <= 0: tắt lockout
	LockoutWindow   time.Duration
}

// userService implement user.Service interface
type userService struct {
	repo   user.Repository
	cache  cache.Cache
	tokens TokenIssuer
	opts   Options
}

// NewUserService tạo service instance
func NewUserService(repo user.Repository, cache cache.Cache, tokens TokenIssuer, opts Options) user.Service {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		repo:   repo,
		cache:  cache,
		tokens: tokens,
		opts:   opts,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register tạo user mới
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	// 2. HASH PASSWORD
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.opts.BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperror.Validation("Validation failed", map[string]string{
				"password": "must be at most 72 bytes",
			})
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. CREATE USER ENTITY
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate user id: %w", err)
	}
	newUser := &user.User{
		ID:           id,
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now().UTC(),
	}

	// 4. PERSIST - unique username/email do DB đảm bảo
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	dto := newUser.ToDTO()
	return &dto, nil
}

// Login xác thực user và trả về access token
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	// 2. CHECK LOCKOUT
	failedKey := failedLoginKeyPrefix + req.Identifier()
	if s.isLockedOut(ctx, failedKey) {
		return nil, user.ErrTooManyAttempts
	}

	// 3. FIND USER - username ưu tiên hơn email
	var (
		u   *user.User
		err error
	)
	if username := strings.TrimSpace(req.Username); username != "" {
		u, err = s.repo.FindByUsername(ctx, username)
	} else {
		u, err = s.repo.FindByEmail(ctx, strings.ToLower(req.Email))
	}
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Không expose "user not found"
			s.recordFailedLogin(ctx, failedKey)
			return nil, user.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 4. VERIFY PASSWORD
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedLogin(ctx, failedKey)
		return nil, user.ErrInvalidCredentials
	}

	// 5. CLEAR FAILED COUNTER
	if s.opts.MaxFailedLogins > 0 {
		if err := s.cache.Delete(ctx, failedKey); err != nil {
			logger.Warn("clear failed login counter", map[string]interface{}{"key": failedKey, "error": err.Error()})
		}
	}

	// 6. GENERATE TOKEN
	token, expiresAt, err := s.tokens.GenerateAccessToken(u.ID, u.Username)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &user.LoginResponse{
		Message:   "Login successful",
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// ========================================
// FAILED LOGIN TRACKING
// ========================================

// isLockedOut - cache lỗi thì không chặn login
func (s *userService) isLockedOut(ctx context.Context, key string) bool {
	if s.opts.MaxFailedLogins <= 0 {
		return false
	}

	var attempts int64
	found, err := s.cache.Get(ctx, key, &attempts)
	if err != nil {
		logger.Warn("read failed login counter", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	return found && attempts >= int64(s.opts.MaxFailedLogins)
}

func (s *userService) recordFailedLogin(ctx context.Context, key string) {
	if s.opts.MaxFailedLogins <= 0 {
		return
	}

	attempts, err := s.cache.Increment(ctx, key)
	if err != nil {
		logger.Warn("increment failed login counter", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}

	// Window bắt đầu từ lần sai đầu tiên
	if attempts == 1 {
		if err := s.cache.Expire(ctx, key, s.opts.LockoutWindow); err != nil {
			logger.Warn("set failed login window", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}

	if attempts >= int64(s.opts.MaxFailedLogins) {
		logger.Warn("login locked out", map[string]interface{}{"key": key, "attempts": attempts})
	}
}
