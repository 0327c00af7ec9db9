package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa contract cho data access layer
type Repository interface {
	// Create tạo user mới
	// Returns: ErrUsernameAlreadyExists / ErrEmailAlreadyExists khi vi phạm unique
	Create(ctx context.Context, user *User) error

	// FindByID tìm user theo ID
	// Returns: ErrUserNotFound nếu không tìm thấy
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername tìm user theo username (dùng cho login)
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindByEmail tìm user theo email (dùng cho login)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
