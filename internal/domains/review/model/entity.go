package model

import (
	"time"

	"github.com/google/uuid"
)

// Review - mỗi (user, book) có tối đa một review
type Review struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
	BookID uuid.UUID `json:"bookId"`

	// Content
	Rating  int    `json:"rating"` // 1-5
	Content string `json:"content"`

	// Timestamps
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
