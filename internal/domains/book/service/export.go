package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"bookreview-backend/internal/domains/book/model"
)

const exportSheetName = "Books"

var exportHeaders = []string{
	"Title",
	"Author",
	"Genre",
	"Publication Date",
	"Reviews",
	"Average Rating",
}

// ExportBooks - xuất books (kèm thống kê review) ra file Excel.
// Không phân trang, filter giống ListBooks
func (s *BookService) ExportBooks(ctx context.Context, filter model.BookFilter) (*excelize.File, error) {
	filter.Offset, filter.Limit = 0, 0

	books, err := s.repo.ListBookRatings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list book ratings: %w", err)
	}

	f, err := buildBooksExcelFile(books)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}

	return f, nil
}

func buildBooksExcelFile(books []model.BookRating) (*excelize.File, error) {
	f := excelize.NewFile()

	// Rename default sheet
	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, err
	}

	// Row 1: Header
	for colIdx, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(exportSheetName, "A1", lastCol, headerStyle)
	}

	// Data rows, bắt đầu từ row 2
	for i, b := range books {
		row := []interface{}{
			b.Title,
			deref(b.Author),
			deref(b.Genre),
			nil,
			b.ReviewCount,
			nil, // ô trống khi chưa có review
		}
		if b.PublicationDate != nil {
			row[3] = b.PublicationDate.Format("2006-01-02")
		}
		if b.AverageRating != nil {
			row[5] = *b.AverageRating
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
