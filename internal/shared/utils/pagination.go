package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Pagination: Page bắt đầu từ 1, PageSize là số item mỗi trang
// (query param "offset" là page size, không phải số record bỏ qua)
type Pagination struct {
	Page     int
	PageSize int
}

// NewPagination chuẩn hoá giá trị không hợp lệ về default, page size quá lớn bị cắt về MaxPageSize
func NewPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	// (page-1)*pageSize không được tràn int, nếu không OFFSET sẽ âm
	if maxPage := math.MaxInt / pageSize; page > maxPage {
		page = maxPage
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// ParsePagination đọc ?page=&offset= từ request
func ParsePagination(c *gin.Context) Pagination {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = DefaultPage
	}
	pageSize, err := strconv.Atoi(c.Query("offset"))
	if err != nil {
		pageSize = DefaultPageSize
	}
	return NewPagination(page, pageSize)
}

// Skip = (page-1) * pageSize
func (p Pagination) Skip() int {
	return (p.Page - 1) * p.PageSize
}
