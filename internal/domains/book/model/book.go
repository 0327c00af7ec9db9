package model

import (
	"time"

	"github.com/google/uuid"
)

// Book - immutable sau khi tạo, title unique
type Book struct {
	ID              uuid.UUID  `json:"bookId"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	Author          *string    `json:"author,omitempty"`
	Genre           *string    `json:"genre,omitempty"`
	PublicationDate *time.Time `json:"publicationDate,omitempty"`
	ImageLink       *string    `json:"imageLink,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// BookRating - book kèm thống kê review, dùng cho export
type BookRating struct {
	Book
	ReviewCount   int
	AverageRating *float64 // nil khi chưa có review
}

// BookFilter - Filter object for database query.
// Author/Genre so khớp chính xác; Limit = 0 nghĩa là không giới hạn
type BookFilter struct {
	Author string
	Genre  string
	Offset int
	Limit  int
}
