package user

import "bookreview-backend/internal/shared/apperror"

// Repository-level errors
var (
	// Not Found
	ErrUserNotFound = apperror.New(apperror.KindNotFound, "USR001", "User not found")

	// Conflict
	ErrUsernameAlreadyExists = apperror.New(apperror.KindConflict, "USR002", "Username already exists")
	ErrEmailAlreadyExists    = apperror.New(apperror.KindConflict, "USR003", "Email already exists")
)

// Service-level (Business logic) errors
var (
	// Authentication
	ErrInvalidCredentials = apperror.New(apperror.KindAuth, "USR004", "Invalid username/email or password")

	// Rate Limiting
	ErrTooManyAttempts = apperror.New(apperror.KindTooManyRequests, "USR005", "Too many failed login attempts, please try again later")
)
