package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// ReviewRequest - body cho POST /books/:id/reviews và PUT /reviews/:id
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

func (r ReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating,
			validation.Required.Error("rating is required"),
			validation.Min(MinRating).Error("rating must be between 1 and 5"),
			validation.Max(MaxRating).Error("rating must be between 1 and 5"),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
			validation.RuneLength(1, MaxContentLength).Error("content must be at most 500 characters"),
		),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// CreateReviewResponse - 201 {message, review}
type CreateReviewResponse struct {
	Message string  `json:"message"`
	Review  *Review `json:"review"`
}
