package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/domains/review/repository"
	"bookreview-backend/internal/shared/apperror"
	"bookreview-backend/internal/shared/utils"
	"bookreview-backend/pkg/logger"
)

type reviewService struct {
	repo repository.ReviewRepository
}

func NewReviewService(repo repository.ReviewRepository) ServiceInterface {
	return &reviewService{repo: repo}
}

// =====================================================
// USER OPERATIONS
// =====================================================

func (s *reviewService) CreateReview(ctx context.Context, userID, bookID uuid.UUID, req model.ReviewRequest) (*model.Review, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate review id: %w", err)
	}

	now := time.Now().UTC()
	review := &model.Review{
		ID:        id,
		UserID:    userID,
		BookID:    bookID,
		Rating:    req.Rating,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Không check trùng trước: INSERT + UNIQUE constraint là atomic
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	logger.Info("review created", map[string]interface{}{
		"review_id": review.ID,
		"user_id":   userID,
		"book_id":   bookID,
		"rating":    review.Rating,
	})

	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID, bookID uuid.UUID, req model.ReviewRequest) error {
	if err := req.Validate(); err != nil {
		return apperror.FromValidation(err)
	}

	if _, err := s.repo.UpdateByUserAndBook(ctx, userID, bookID, req.Rating, req.Content); err != nil {
		return err
	}

	return nil
}

func (s *reviewService) DeleteReview(ctx context.Context, userID, bookID uuid.UUID) error {
	if err := s.repo.DeleteByUserAndBook(ctx, userID, bookID); err != nil {
		return err
	}

	logger.Info("review deleted", map[string]interface{}{
		"user_id": userID,
		"book_id": bookID,
	})

	return nil
}

// =====================================================
// READ OPERATIONS
// =====================================================

func (s *reviewService) ListReviewsForBook(ctx context.Context, bookID uuid.UUID, page, pageSize int) ([]*model.Review, error) {
	p := utils.NewPagination(page, pageSize)
	return s.repo.ListByBook(ctx, bookID, p.PageSize, p.Skip())
}

func (s *reviewService) AverageRating(ctx context.Context, bookID uuid.UUID) (*float64, error) {
	avg, err := s.repo.AverageRating(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return utils.NullDecimalToFloat(avg), nil
}
