package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookreview-backend/internal/shared/apperror"
)

// ErrorBody là shape chung của mọi error response: {"error": "...", "code": "..."}
type ErrorBody struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// Success ghi body JSON nguyên trạng (top-level keys như books, book, token)
func Success(c *gin.Context, statusCode int, body interface{}) {
	c.JSON(statusCode, body)
}

// NoContent cho 204 (update/delete review)
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error ghi error response
func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorBody{Error: message, Code: code})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details map[string]string) {
	c.JSON(statusCode, ErrorBody{Error: message, Code: code, Details: details})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, "NOT_FOUND", message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
}

// HandleError map domain error sang HTTP response.
// Lỗi internal chỉ được log, client nhận message chung.
func HandleError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperror.KindInternal {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Msg("unhandled error")
		InternalServerError(c)
		return
	}

	ErrorWithDetails(c, appErr.Kind.HTTPStatus(), appErr.Code, appErr.Message, appErr.Details)
}
