package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookreview-backend/internal/domains/book/model"
	service "bookreview-backend/internal/domains/book/service"
	"bookreview-backend/internal/shared/response"
	"bookreview-backend/internal/shared/utils"
	"bookreview-backend/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler - HTTP Handler (single file)
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateBook - POST /books (auth required)
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, model.CreateBookResponse{
		Message: "Book created successfully",
		Book:    book,
	})
}

// ListBooks - GET /books
// Query params: page, offset (page size), author, genre
func (h *Handler) ListBooks(c *gin.Context) {
	p := utils.ParsePagination(c)

	books, err := h.service.ListBooks(c.Request.Context(), model.ListBooksRequest{
		Author:   c.Query("author"),
		Genre:    c.Query("genre"),
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ListBooksResponse{Books: books})
}

// GetBookDetail - GET /books/:id?page=&offset=
func (h *Handler) GetBookDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	p := utils.ParsePagination(c)

	detail, err := h.service.GetBookDetail(c.Request.Context(), id, p.Page, p.PageSize)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// SearchBooks - GET /search?title=&author=
func (h *Handler) SearchBooks(c *gin.Context) {
	var req model.SearchBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	books, err := h.service.SearchBooks(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, model.ListBooksResponse{Books: books})
}

// ExportBooks - GET /books/export?author=&genre=
func (h *Handler) ExportBooks(c *gin.Context) {
	f, err := h.service.ExportBooks(c.Request.Context(), model.BookFilter{
		Author: c.Query("author"),
		Genre:  c.Query("genre"),
	})
	if err != nil {
		response.HandleError(c, err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error("close export workbook", err)
		}
	}()

	filename := fmt.Sprintf("books_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		logger.Error("write export workbook", err)
	}
}
