package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bookreview-backend/internal/domains/review/model"
	"bookreview-backend/internal/domains/review/service"
	"bookreview-backend/internal/shared/middleware"
	"bookreview-backend/internal/shared/response"
)

// =====================================================
// REVIEW HANDLER
// =====================================================

type ReviewHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewHandler(reviewService service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

// getUserID lấy user ID từ Identity do AuthMiddleware set
func getUserID(c *gin.Context) (uuid.UUID, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return uuid.Nil, false
	}
	return identity.UserID, true
}

// parseBookID - cả /books/:id/reviews và /reviews/:id đều dùng book id
func parseBookID(c *gin.Context) (uuid.UUID, bool) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return uuid.Nil, false
	}
	return bookID, true
}

// =====================================================
// USER REVIEW ENDPOINTS
// =====================================================

// CreateReview creates new review
// POST /books/:id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	// Step 1: Get user ID from token
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "You are Unauthorized")
		return
	}

	// Step 2: Parse book ID
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	// Step 3: Bind request body
	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Step 4: Call service (validate + insert)
	review, err := h.reviewService.CreateReview(c.Request.Context(), userID, bookID, req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, model.CreateReviewResponse{
		Message: "Review created successfully",
		Review:  review,
	})
}

// UpdateReview updates caller's review for the book
// PUT /reviews/:id (id là book id)
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "You are Unauthorized")
		return
	}

	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	var req model.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.reviewService.UpdateReview(c.Request.Context(), userID, bookID, req); err != nil {
		response.HandleError(c, err)
		return
	}

	response.NoContent(c)
}

// DeleteReview deletes caller's review for the book
// DELETE /reviews/:id (id là book id)
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "You are Unauthorized")
		return
	}

	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), userID, bookID); err != nil {
		response.HandleError(c, err)
		return
	}

	response.NoContent(c)
}
