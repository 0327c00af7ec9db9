package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	reviewModel "bookreview-backend/internal/domains/review/model"
)

const dateLayout = "2006-01-02"

// ========================================
// REQUEST DTOs
// ========================================

// CreateBookRequest - POST /books
type CreateBookRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Author          string `json:"author,omitempty"`
	Genre           string `json:"genre,omitempty"`
	PublicationDate string `json:"publicationDate,omitempty"` // YYYY-MM-DD hoặc RFC3339
	ImageLink       string `json:"imageLink,omitempty"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.By(notBlank),
			validation.RuneLength(1, 256),
		),
		validation.Field(&r.Description, validation.RuneLength(0, 500)),
		validation.Field(&r.Author, validation.RuneLength(0, 50)),
		validation.Field(&r.Genre, validation.RuneLength(0, 15)),
		// cột publication_date là DATE nên phải parse được; imageLink thì free-form
		validation.Field(&r.PublicationDate, validation.By(validDate)),
	)
}

// ToBook map request sang entity (chưa có ID/CreatedAt)
func (r CreateBookRequest) ToBook() *Book {
	b := &Book{
		Title:       strings.TrimSpace(r.Title),
		Description: optional(r.Description),
		Author:      optional(r.Author),
		Genre:       optional(r.Genre),
		ImageLink:   optional(r.ImageLink),
	}
	if d, err := parseDate(r.PublicationDate); err == nil && !d.IsZero() {
		b.PublicationDate = &d
	}
	return b
}

// ListBooksRequest - GET /books?page=&offset=&author=&genre=
type ListBooksRequest struct {
	Author   string
	Genre    string
	Page     int
	PageSize int
}

// SearchBooksRequest - GET /search?title=&author=
// Ít nhất một trong hai, match theo OR
type SearchBooksRequest struct {
	Title  string `form:"title"`
	Author string `form:"author"`
}

func (r SearchBooksRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.When(r.Author == "").Error("title or author is required"),
			validation.RuneLength(0, 256),
		),
		validation.Field(&r.Author,
			validation.Required.When(r.Title == "").Error("title or author is required"),
			validation.RuneLength(0, 50),
		),
	)
}

// ========================================
// RESPONSE DTOs
// ========================================

// CreateBookResponse - 201 {message, book}
type CreateBookResponse struct {
	Message string `json:"message"`
	Book    *Book  `json:"book"`
}

// ListBooksResponse - {books: [...]}, dùng cho cả list và search
type ListBooksResponse struct {
	Books []Book `json:"books"`
}

// BookDetailResponse - GET /books/:id
// Chưa có review: chỉ {book}. Có review: {book, averageRating, reviews}
type BookDetailResponse struct {
	Book          *Book
	AverageRating *float64
	Reviews       []*reviewModel.Review
}

func (r BookDetailResponse) MarshalJSON() ([]byte, error) {
	if r.AverageRating == nil {
		return json.Marshal(struct {
			Book *Book `json:"book"`
		}{r.Book})
	}

	reviews := r.Reviews
	if reviews == nil {
		reviews = []*reviewModel.Review{}
	}
	return json.Marshal(struct {
		Book          *Book                 `json:"book"`
		AverageRating float64               `json:"averageRating"`
		Reviews       []*reviewModel.Review `json:"reviews"`
	}{r.Book, *r.AverageRating, reviews})
}

// ========================================
// HELPERS
// ========================================

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return d.UTC().Truncate(24 * time.Hour), nil
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if s != "" && strings.TrimSpace(s) == "" {
		return errors.New("must not be blank")
	}
	return nil
}

func validDate(value interface{}) error {
	s, _ := value.(string)
	if _, err := parseDate(s); err != nil {
		return errors.New("must be a date in YYYY-MM-DD format")
	}
	return nil
}
