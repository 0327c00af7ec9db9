package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/shared/apperror"
)

// =====================================================
// MOCK REPOSITORY
// =====================================================

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, review *model.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockRepo) UpdateByUserAndBook(ctx context.Context, userID, bookID uuid.UUID, rating int, content string) (*model.Review, error) {
	args := m.Called(ctx, userID, bookID, rating, content)
	r, _ := args.Get(0).(*model.Review)
	return r, args.Error(1)
}

func (m *mockRepo) DeleteByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) error {
	return m.Called(ctx, userID, bookID).Error(0)
}

func (m *mockRepo) ListByBook(ctx context.Context, bookID uuid.UUID, limit, offset int) ([]*model.Review, error) {
	args := m.Called(ctx, bookID, limit, offset)
	rs, _ := args.Get(0).([]*model.Review)
	return rs, args.Error(1)
}

func (m *mockRepo) AverageRating(ctx context.Context, bookID uuid.UUID) (decimal.NullDecimal, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).(decimal.NullDecimal), args.Error(1)
}

// =====================================================
// CREATE
// =====================================================

func TestCreateReview_Success(t *testing.T) {
	userID, bookID := uuid.New(), uuid.New()
	repo := new(mockRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Review) bool {
		return r.UserID == userID && r.BookID == bookID &&
			r.Rating == 4 && r.Content == "Solid" &&
			r.ID.Version() == 7 && !r.CreatedAt.IsZero()
	})).Return(nil)

	review, err := NewReviewService(repo).CreateReview(context.Background(), userID, bookID, model.ReviewRequest{
		Rating:  4,
		Content: "Solid",
	})

	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, review.CreatedAt, review.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestCreateReview_InvalidRatingSkipsRepo(t *testing.T) {
	repo := new(mockRepo)

	_, err := NewReviewService(repo).CreateReview(context.Background(), uuid.New(), uuid.New(), model.ReviewRequest{
		Rating:  9,
		Content: "x",
	})

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Details, "rating")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReview_DuplicatePropagates(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(model.ErrAlreadyReviewed)

	_, err := NewReviewService(repo).CreateReview(context.Background(), uuid.New(), uuid.New(), model.ReviewRequest{
		Rating:  3,
		Content: "Again",
	})

	assert.ErrorIs(t, err, model.ErrAlreadyReviewed)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

// =====================================================
// UPDATE / DELETE
// =====================================================

func TestUpdateReview(t *testing.T) {
	userID, bookID := uuid.New(), uuid.New()

	t.Run("updates existing review", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("UpdateByUserAndBook", mock.Anything, userID, bookID, 2, "Changed my mind").
			Return(&model.Review{Rating: 2}, nil)

		err := NewReviewService(repo).UpdateReview(context.Background(), userID, bookID, model.ReviewRequest{
			Rating:  2,
			Content: "Changed my mind",
		})

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("no existing review", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("UpdateByUserAndBook", mock.Anything, userID, bookID, 2, "x").
			Return(nil, model.ErrReviewNotFound)

		err := NewReviewService(repo).UpdateReview(context.Background(), userID, bookID, model.ReviewRequest{
			Rating:  2,
			Content: "x",
		})

		assert.ErrorIs(t, err, model.ErrReviewNotFound)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid body", func(t *testing.T) {
		repo := new(mockRepo)

		err := NewReviewService(repo).UpdateReview(context.Background(), userID, bookID, model.ReviewRequest{Rating: 3})

		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		repo.AssertNotCalled(t, "UpdateByUserAndBook", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteReview(t *testing.T) {
	userID, bookID := uuid.New(), uuid.New()

	repo := new(mockRepo)
	repo.On("DeleteByUserAndBook", mock.Anything, userID, bookID).Return(nil).Once()
	repo.On("DeleteByUserAndBook", mock.Anything, userID, bookID).Return(model.ErrReviewNotFound).Once()

	svc := NewReviewService(repo)
	assert.NoError(t, svc.DeleteReview(context.Background(), userID, bookID))
	assert.ErrorIs(t, svc.DeleteReview(context.Background(), userID, bookID), model.ErrReviewNotFound)
}

// =====================================================
// READ
// =====================================================

func TestListReviewsForBook_Paging(t *testing.T) {
	bookID := uuid.New()
	repo := new(mockRepo)
	repo.On("ListByBook", mock.Anything, bookID, 5, 5).Return([]*model.Review{{Rating: 1}}, nil)
	repo.On("ListByBook", mock.Anything, bookID, 10, 0).Return([]*model.Review{}, nil)

	svc := NewReviewService(repo)

	reviews, err := svc.ListReviewsForBook(context.Background(), bookID, 2, 5)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	// page/pageSize không hợp lệ rơi về default
	_, err = svc.ListReviewsForBook(context.Background(), bookID, 0, -1)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestAverageRating(t *testing.T) {
	bookID := uuid.New()

	t.Run("no reviews", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("AverageRating", mock.Anything, bookID).Return(decimal.NullDecimal{}, nil)

		avg, err := NewReviewService(repo).AverageRating(context.Background(), bookID)

		require.NoError(t, err)
		assert.Nil(t, avg)
	})

	t.Run("mean of ratings", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("AverageRating", mock.Anything, bookID).
			Return(decimal.NewNullDecimal(decimal.RequireFromString("4.5")), nil)

		avg, err := NewReviewService(repo).AverageRating(context.Background(), bookID)

		require.NoError(t, err)
		require.NotNil(t, avg)
		assert.InDelta(t, 4.5, *avg, 1e-9)
	})
}
