package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookreview-backend/internal/domains/user"
	"bookreview-backend/internal/shared/response"
)

// UserHandler xử lý HTTP requests cho user domain
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Signup xử lý POST /signup
func (h *UserHandler) Signup(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	userDTO, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user.RegisterResponse{
		Message: "User registered successfully",
		User:    *userDTO,
	})
}

// Login xử lý POST /login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}
