package model

import (
	"bookreview-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeReviewNotFound  = "REV001"
	ErrCodeAlreadyReviewed = "REV002"
	ErrCodeBookNotFound    = "REV003"
)

// Errors
var (
	ErrReviewNotFound  = apperror.New(apperror.KindNotFound, ErrCodeReviewNotFound, "Review not found")
	ErrAlreadyReviewed = apperror.New(apperror.KindConflict, ErrCodeAlreadyReviewed, "You have already reviewed this book")
	ErrBookNotFound    = apperror.New(apperror.KindNotFound, ErrCodeBookNotFound, "Book not found")
)
