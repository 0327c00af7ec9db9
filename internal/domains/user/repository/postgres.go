package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	user "bookreview-backend/internal/domains/user"
	"bookreview-backend/pkg/cache"
	"bookreview-backend/pkg/logger"
)

const (
	uniqueViolation = "23505"

	userCacheTTL = 15 * time.Minute
)

// postgresRepository là concrete implementation của user.Repository interface
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository - Dependency Injection via Constructor
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) user.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

// ========================================
// BASIC CRUD OPERATIONS
// ========================================

// Create tạo user mới. Uniqueness do UNIQUE constraint của Postgres đảm bảo,
// không check trước bằng SELECT.
func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case "users_username_key":
				return user.ErrUsernameAlreadyExists
			case "users_email_key":
				return user.ErrEmailAlreadyExists
			}
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// FindByID tìm user theo UUID với Redis caching (Cache-Aside)
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	cacheKey := fmt.Sprintf("user:%s", id.String())

	var u user.User
	found, err := r.cache.Get(ctx, cacheKey, &u)
	if err != nil {
		logger.Warn("user cache get failed", map[string]interface{}{"key": cacheKey, "error": err.Error()})
	}
	if err == nil && found {
		return &u, nil
	}

	cached, err := r.findOne(ctx, "id = $1", id)
	if err != nil {
		return nil, err
	}

	// password_hash không được cache
	safe := *cached
	safe.PasswordHash = ""
	if err := r.cache.Set(ctx, cacheKey, &safe, userCacheTTL); err != nil {
		logger.Warn("user cache set failed", map[string]interface{}{"key": cacheKey, "error": err.Error()})
	}

	return cached, nil
}

// FindByUsername - không cache vì chỉ dùng khi login và cần password_hash
func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.findOne(ctx, "username = $1", username)
}

// FindByEmail - email được lưu lowercase
func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *postgresRepository) findOne(ctx context.Context, where string, arg interface{}) (*user.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users
		WHERE ` + where

	var u user.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &u, nil
}
