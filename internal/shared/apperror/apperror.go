package apperror

import (
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind phân loại lỗi theo cách caller phải xử lý
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindConflict
	KindTooManyRequests
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindTooManyRequests:
		return "too_many_requests"
	default:
		return "internal"
	}
}

// HTTPStatus map Kind sang HTTP status code
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error là error type chung cho mọi domain.
// Sentinel của từng domain là *Error nên so sánh bằng errors.Is theo pointer.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Validation tạo lỗi 400 kèm field-level details
func Validation(message string, details map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: message, Details: details}
}

// Wrap gắn nguyên nhân vào một sentinel mà vẫn giữ Kind/Code của nó
func Wrap(sentinel *Error, err error) *Error {
	return &Error{
		Kind:    sentinel.Kind,
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Details: sentinel.Details,
		Err:     errors.Join(sentinel, err),
	}
}

// KindOf trả về Kind của err; lỗi không phân loại là KindInternal
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// FromValidation chuyển validation.Errors của ozzo thành lỗi 400 "Validation failed"
// với message theo từng field
func FromValidation(err error) error {
	if err == nil {
		return nil
	}

	var internalErr validation.InternalError
	if errors.As(err, &internalErr) {
		return fmt.Errorf("validator: %w", internalErr.InternalError())
	}

	details := map[string]string{}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		for field, fieldErr := range fieldErrs {
			if fieldErr != nil {
				details[field] = fieldErr.Error()
			}
		}
	} else {
		details["request"] = err.Error()
	}

	return Validation("Validation failed", details)
}
