package model

const (
	// Content limits
	MaxContentLength = 500

	// Rating
	MinRating = 1
	MaxRating = 5
)
