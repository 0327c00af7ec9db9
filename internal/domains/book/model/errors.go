package model

import (
	"bookreview-backend/internal/shared/apperror"
)

var (
	ErrBookNotFound       = apperror.New(apperror.KindNotFound, "BOOK001", "Book not found")
	ErrTitleAlreadyExists = apperror.New(apperror.KindConflict, "BOOK002", "A book with this title already exists")
	ErrNoBooksFound       = apperror.New(apperror.KindNotFound, "BOOK003", "No books found")
)
