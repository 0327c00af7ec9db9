package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"bookreview-backend/internal/domains/book/model"
)

// ServiceInterface - Định nghĩa business logic methods
type ServiceInterface interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	ListBooks(ctx context.Context, req model.ListBooksRequest) ([]model.Book, error)
	SearchBooks(ctx context.Context, req model.SearchBooksRequest) ([]model.Book, error)
	GetBookDetail(ctx context.Context, id uuid.UUID, page, pageSize int) (*model.BookDetailResponse, error)
	ExportBooks(ctx context.Context, filter model.BookFilter) (*excelize.File, error)
}
