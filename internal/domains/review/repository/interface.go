package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookreview-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW REPOSITORY INTERFACE
// =====================================================

type ReviewRepository interface {
	// ========================================
	// WRITE Operations
	// ========================================

	// Create inserts review. UNIQUE (user_id, book_id) là guard duy nhất:
	// ErrAlreadyReviewed khi trùng, ErrBookNotFound khi book_id không tồn tại
	Create(ctx context.Context, review *model.Review) error

	// UpdateByUserAndBook cập nhật review của chính user cho book.
	// ErrReviewNotFound nếu không có row, không bao giờ upsert
	UpdateByUserAndBook(ctx context.Context, userID, bookID uuid.UUID, rating int, content string) (*model.Review, error)

	// DeleteByUserAndBook - ErrReviewNotFound nếu không có row
	DeleteByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) error

	// ========================================
	// READ Operations
	// ========================================

	// ListByBook lists reviews for a book, ORDER BY id (insertion order)
	ListByBook(ctx context.Context, bookID uuid.UUID, limit, offset int) ([]*model.Review, error)

	// AverageRating - NULL (Valid=false) khi book chưa có review
	AverageRating(ctx context.Context, bookID uuid.UUID) (decimal.NullDecimal, error)
}
