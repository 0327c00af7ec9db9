package service

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// CreateReview - một review cho mỗi (user, book)
	CreateReview(ctx context.Context, userID, bookID uuid.UUID, req model.ReviewRequest) (*model.Review, error)

	// UpdateReview cập nhật review của user cho book (định danh bằng book id + caller)
	UpdateReview(ctx context.Context, userID, bookID uuid.UUID, req model.ReviewRequest) error

	// DeleteReview xoá review của user cho book
	DeleteReview(ctx context.Context, userID, bookID uuid.UUID) error

	// ListReviewsForBook - page bắt đầu từ 1
	ListReviewsForBook(ctx context.Context, bookID uuid.UUID, page, pageSize int) ([]*model.Review, error)

	// AverageRating - nil khi book chưa có review
	AverageRating(ctx context.Context, bookID uuid.UUID) (*float64, error)
}
