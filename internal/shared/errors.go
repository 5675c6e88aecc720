package shared

import (
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Error codes trả về trong field "code" của error response
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError là lỗi đã được phân loại, handler map thẳng sang HTTP response
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

var (
	ErrUnauthorized = &AppError{Code: CodeUnauthorized, Message: "Authentication required", HTTPStatus: http.StatusUnauthorized}
	ErrForbidden    = &AppError{Code: CodeForbidden, Message: "Admin access required", HTTPStatus: http.StatusForbidden}
)

func NewValidationError(details interface{}) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    "Validation error",
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// NewFieldError là validation error cho một field
func NewFieldError(field, message string) *AppError {
	return NewValidationError(map[string]string{field: message})
}

func NewNotFound(message string, err error) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, HTTPStatus: http.StatusNotFound, Err: err}
}

func NewConflict(message string, err error) *AppError {
	return &AppError{Code: CodeConflict, Message: message, HTTPStatus: http.StatusConflict, Err: err}
}

func NewTooManyRequests(message string) *AppError {
	return &AppError{Code: CodeTooManyRequests, Message: message, HTTPStatus: http.StatusTooManyRequests}
}

func NewServiceUnavailable(message string, err error) *AppError {
	return &AppError{Code: CodeServiceUnavailable, Message: message, HTTPStatus: http.StatusServiceUnavailable, Err: err}
}

func NewInternal(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Internal server error", HTTPStatus: http.StatusInternalServerError, Err: err}
}

// ValidationDetails chuyển ozzo validation.Errors thành map field -> message.
// Nested errors (vd: struct con) được flatten thành "parent.child".
func ValidationDetails(err error) map[string]string {
	details := make(map[string]string)
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return details
	}
	flatten("", verrs, details)
	return details
}

func flatten(prefix string, verrs validation.Errors, out map[string]string) {
	for field, ferr := range verrs {
		key := field
		if prefix != "" {
			key = prefix + "." + field
		}
		var nested validation.Errors
		if errors.As(ferr, &nested) {
			flatten(key, nested, out)
			continue
		}
		out[key] = ferr.Error()
	}
}

// AsAppError phân loại error bất kỳ:
// AppError giữ nguyên, ozzo validation.Errors -> VALIDATION_ERROR, còn lại -> INTERNAL_ERROR
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return NewValidationError(ValidationDetails(verrs))
	}

	return NewInternal(err)
}
