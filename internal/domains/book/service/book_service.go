package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/book/model"
	"bookreview-backend/internal/domains/book/repository"
	reviewService "bookreview-backend/internal/domains/review/service"
	"bookreview-backend/internal/shared/apperror"
	"bookreview-backend/internal/shared/utils"
	"bookreview-backend/pkg/logger"
)

// BookService - Business logic layer
type BookService struct {
	repo    repository.RepositoryInterface
	reviews reviewService.ServiceInterface
}

// NewService - Constructor with DI
func NewService(repo repository.RepositoryInterface, reviews reviewService.ServiceInterface) ServiceInterface {
	return &BookService{
		repo:    repo,
		reviews: reviews,
	}
}

// CreateBook - validate rồi INSERT, trùng title trả về ErrTitleAlreadyExists
func (s *BookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate book id: %w", err)
	}

	book := req.ToBook()
	book.ID = id
	book.CreatedAt = time.Now().UTC()

	if err := s.repo.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	logger.Info("book created", map[string]interface{}{
		"book_id": book.ID,
		"title":   book.Title,
	})

	return book, nil
}

// ListBooks - trang rỗng trả về ErrNoBooksFound (404)
func (s *BookService) ListBooks(ctx context.Context, req model.ListBooksRequest) ([]model.Book, error) {
	p := utils.NewPagination(req.Page, req.PageSize)

	books, err := s.repo.ListBooks(ctx, model.BookFilter{
		Author: req.Author,
		Genre:  req.Genre,
		Offset: p.Skip(),
		Limit:  p.PageSize,
	})
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, model.ErrNoBooksFound
	}

	return books, nil
}

// SearchBooks - cần ít nhất title hoặc author
func (s *BookService) SearchBooks(ctx context.Context, req model.SearchBooksRequest) ([]model.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	books, err := s.repo.SearchBooks(ctx, req.Title, req.Author)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, model.ErrNoBooksFound
	}

	return books, nil
}

// GetBookDetail:
//  1. book không tồn tại -> ErrBookNotFound
//  2. chưa có review -> chỉ trả về book
//  3. có review -> book + averageRating + trang reviews
func (s *BookService) GetBookDetail(ctx context.Context, id uuid.UUID, page, pageSize int) (*model.BookDetailResponse, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	avg, err := s.reviews.AverageRating(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	if avg == nil {
		return &model.BookDetailResponse{Book: book}, nil
	}

	reviews, err := s.reviews.ListReviewsForBook(ctx, id, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return &model.BookDetailResponse{
		Book:          book,
		AverageRating: avg,
		Reviews:       reviews,
	}, nil
}
