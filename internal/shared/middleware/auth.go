package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookreview-backend/internal/shared/apperror"
	"bookreview-backend/internal/shared/response"
	"bookreview-backend/pkg/jwt"
)

const identityKey = "identity"

var (
	// ErrMissingAuthHeader: không có header hoặc không đúng dạng "Bearer <token>"
	ErrMissingAuthHeader = apperror.New(apperror.KindAuth, "AUTH001", "Authorization Missing or Incorrect")
	// ErrInvalidToken: token sai chữ ký, hết hạn hoặc thiếu claim
	ErrInvalidToken = apperror.New(apperror.KindAuth, "AUTH002", "You are Unauthorized")
)

// Identity là caller đã xác thực
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// TokenValidator là phần của jwt.Manager mà middleware cần
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// Authenticate tách và verify bearer token từ Authorization header
func Authenticate(header string, validator TokenValidator) (*Identity, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, ErrMissingAuthHeader
	}

	claims, err := validator.ValidateAccessToken(strings.TrimSpace(token))
	if err != nil {
		return nil, apperror.Wrap(ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperror.Wrap(ErrInvalidToken, err)
	}

	return &Identity{UserID: userID, Username: claims.Username}, nil
}

// AuthMiddleware - Middleware xác thực JWT token, set Identity vào context
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := Authenticate(c.GetHeader("Authorization"), validator)
		if err != nil {
			event := log.Warn().
				Str("request_id", c.GetString("request_id")).
				Str("path", c.Request.URL.Path)
			if errors.Is(err, ErrMissingAuthHeader) {
				event.Msg("missing or malformed authorization header")
			} else {
				event.Err(err).Msg("invalid bearer token")
			}

			response.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// GetIdentity lấy Identity do AuthMiddleware set
func GetIdentity(c *gin.Context) (*Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*Identity)
	return identity, ok
}
