package repository

import (
	"context"

	"github.com/google/uuid"

	"bookreview-backend/internal/domains/book/model"
)

// RepositoryInterface - Định nghĩa data access methods
type RepositoryInterface interface {
	// CreateBook - ErrTitleAlreadyExists khi trùng title
	CreateBook(ctx context.Context, book *model.Book) error
	// ListBooks - ORDER BY id (insertion order)
	ListBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error)
	// GetByID - ErrBookNotFound khi không tồn tại
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	// SearchBooks - ILIKE substring, title OR author
	SearchBooks(ctx context.Context, title, author string) ([]model.Book, error)
	// ListBookRatings - books kèm review count và average rating
	ListBookRatings(ctx context.Context, filter model.BookFilter) ([]model.BookRating, error)
}
