package user

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// ========================================
// AUTH DTOs
// ========================================

const usernameMaxLength = 15

// RegisterRequest - POST /signup
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Username được trim trước khi kiểm tra, giống như khi lưu
func (r RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.RuneLength(1, usernameMaxLength).Error("username must be at most 15 characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.RuneLength(8, 0).Error("password must be at least 8 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
		),
	)
}

// LoginRequest - POST /login
// Username được ưu tiên hơn email khi cả hai cùng có
type LoginRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.When(r.Email == "").Error("username or email is required"),
			validation.RuneLength(0, usernameMaxLength).Error("username must be at most 15 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.When(r.Username == "").Error("username or email is required"),
			is.EmailFormat.Error("invalid email format"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.RuneLength(8, 0).Error("password must be at least 8 characters"),
		),
	)
}

// Identifier là key dùng để lookup user và đếm failed login
func (r LoginRequest) Identifier() string {
	if username := strings.TrimSpace(r.Username); username != "" {
		return "username:" + username
	}
	return "email:" + strings.ToLower(r.Email)
}

// LoginResponse - 200 {message, token}
type LoginResponse struct {
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ========================================
// USER DTOs
// ========================================

// UserDTO - public view của User, không có password hash
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterResponse - 201 {message, user}
type RegisterResponse struct {
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
}
